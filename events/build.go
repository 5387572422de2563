package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"wikibrief/common"
	"wikibrief/config"
	"wikibrief/shared/kafka"
)

// BuildSinks creates the sinks named in cfg.Sinks. The returned close
// function releases the clients the sinks hold and is safe to call once.
func BuildSinks(ctx context.Context, cfg config.EventConfig, logger *slog.Logger) ([]Sink, func() error, error) {
	var (
		sinks   []Sink
		closers []func() error
	)
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}

	for _, name := range cfg.Sinks {
		switch name {
		case "log":
			sinks = append(sinks, NewLogSink(logger))
		case "redis":
			if cfg.RedisURL == "" {
				_ = closeAll()
				return nil, nil, fmt.Errorf("redis sink requires REDIS_URL")
			}
			opts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				_ = closeAll()
				return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
			}
			client := redis.NewClient(opts)
			closers = append(closers, client.Close)
			sinks = append(sinks, NewRedisSink(client, cfg.RedisStream))
		case "kafka":
			producer, err := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
			if err != nil {
				_ = closeAll()
				return nil, nil, fmt.Errorf("failed to create kafka producer: %w", err)
			}
			closers = append(closers, producer.Close)
			sinks = append(sinks, NewKafkaSink(producer))
		case "s3":
			if cfg.S3Bucket == "" {
				_ = closeAll()
				return nil, nil, fmt.Errorf("s3 sink requires S3_BUCKET")
			}
			store, err := common.NewS3(ctx, common.S3Config{
				Region:       cfg.S3Region,
				Profile:      cfg.S3Profile,
				UsePathStyle: cfg.S3UsePathStyle,
			})
			if err != nil {
				_ = closeAll()
				return nil, nil, fmt.Errorf("failed to init s3 client: %w", err)
			}
			sinks = append(sinks, NewS3Sink(store, cfg.S3Bucket, cfg.S3Prefix))
		default:
			_ = closeAll()
			return nil, nil, fmt.Errorf("unknown event sink %q", name)
		}
	}

	return sinks, closeAll, nil
}
