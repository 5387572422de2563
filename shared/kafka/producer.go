package kafka

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
)

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// Producer publishes JSON messages to a single topic
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSaramaConfig returns the producer settings used by the service.
func NewSaramaConfig() *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.Retry.Max = 0
	return saramaConfig
}

// NewProducer connects a synchronous producer to the brokers
func NewProducer(config ProducerConfig) (*Producer, error) {
	if len(config.Brokers) == 0 {
		return nil, fmt.Errorf("kafka producer: no brokers configured")
	}

	client, err := sarama.NewSyncProducer(config.Brokers, NewSaramaConfig())
	if err != nil {
		return nil, err
	}

	slog.Info("kafka producer connected", "brokers", config.Brokers, "topic", config.Topic)
	return NewProducerFromClient(client, config.Topic), nil
}

// NewProducerFromClient wraps an existing sarama producer, e.g. a mock in tests.
func NewProducerFromClient(client sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: client, topic: topic}
}

// PublishJSON marshals v and sends it keyed by key. It blocks until the
// broker acknowledges the message.
func (p *Producer) PublishJSON(key string, v any) (partition int32, offset int64, err error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to marshal message: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}
	return p.producer.SendMessage(msg)
}

// Topic returns the topic messages are sent to
func (p *Producer) Topic() string { return p.topic }

// Close gracefully shuts down the producer
func (p *Producer) Close() error {
	slog.Info("closing kafka producer")
	return p.producer.Close()
}
