package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"wikibrief/shared/kafka"
	"wikibrief/types"
)

// LogSink writes events to the structured log.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a log sink.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Write(_ context.Context, ev types.LookupEvent) error {
	s.logger.Info("lookup event",
		"id", ev.ID,
		"query", ev.Query,
		"title", ev.Title,
		"outcome", ev.Outcome,
		"summary_degraded", ev.SummaryDegraded,
		"paragraphs_degraded", ev.ParagraphsDegraded,
		"paragraph_count", ev.ParagraphCount,
		"duration_ms", ev.DurationMS,
	)
	return nil
}

// redisStreamMaxLen caps the audit stream; trimming is approximate.
const redisStreamMaxLen = 100000

// RedisSink appends events to a Redis stream.
type RedisSink struct {
	client *redis.Client
	stream string
}

// NewRedisSink creates a sink writing to stream.
func NewRedisSink(client *redis.Client, stream string) *RedisSink {
	return &RedisSink{client: client, stream: stream}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Write(ctx context.Context, ev types.LookupEvent) error {
	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: redisStreamMaxLen,
		Approx: true,
		Values: eventToValues(ev),
	}).Err()
	if err != nil {
		return fmt.Errorf("redis xadd %s: %w", s.stream, err)
	}
	return nil
}

// eventToValues flattens an event into stream field/value pairs.
func eventToValues(ev types.LookupEvent) map[string]any {
	return map[string]any{
		"id":                  ev.ID,
		"query":               ev.Query,
		"title":               ev.Title,
		"outcome":             ev.Outcome,
		"summary_degraded":    strconv.FormatBool(ev.SummaryDegraded),
		"paragraphs_degraded": strconv.FormatBool(ev.ParagraphsDegraded),
		"paragraph_count":     strconv.Itoa(ev.ParagraphCount),
		"duration_ms":         strconv.FormatInt(ev.DurationMS, 10),
		"occurred_at":         ev.OccurredAt.Format(time.RFC3339Nano),
	}
}

// KafkaSink produces events to a Kafka topic, keyed by query.
type KafkaSink struct {
	producer *kafka.Producer
}

// NewKafkaSink creates a sink backed by producer.
func NewKafkaSink(producer *kafka.Producer) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Write(_ context.Context, ev types.LookupEvent) error {
	if _, _, err := s.producer.PublishJSON(ev.Query, ev); err != nil {
		return fmt.Errorf("kafka produce %s: %w", s.producer.Topic(), err)
	}
	return nil
}

// ObjectPutter stores one object; *common.S3 satisfies it.
type ObjectPutter interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
}

// S3Sink archives each event as a JSON object, partitioned by day.
type S3Sink struct {
	store  ObjectPutter
	bucket string
	prefix string
}

// NewS3Sink creates a sink writing under prefix in bucket. prefix is either
// empty or ends with a slash.
func NewS3Sink(store ObjectPutter, bucket, prefix string) *S3Sink {
	return &S3Sink{store: store, bucket: bucket, prefix: prefix}
}

func (s *S3Sink) Name() string { return "s3" }

func (s *S3Sink) Write(ctx context.Context, ev types.LookupEvent) error {
	b, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return err
	}
	key := s.objectKey(ev)
	if err := s.store.Put(ctx, s.bucket, key, bytes.NewReader(b), "application/json"); err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (s *S3Sink) objectKey(ev types.LookupEvent) string {
	return s.prefix + "lookups/" + ev.OccurredAt.UTC().Format("2006/01/02") + "/" + ev.ID + ".json"
}
