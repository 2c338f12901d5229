package messaging

import (
	"context"
	"log/slog"

	"staybook/internal/pkg/config"

	"github.com/IBM/sarama"
)

// Publisher sends one record to a topic. Implementations must be safe for
// use by a single relay goroutine.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error
	Close() error
}

type KafkaProducer struct {
	sync sarama.SyncProducer
}

func NewSaramaConfig(cfg config.KafkaConfig) *sarama.Config {
	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Version = sarama.V2_8_0_0
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Idempotent = true
	sc.Producer.Return.Successes = true
	sc.Producer.Retry.Max = 5
	// Required by the idempotent producer.
	sc.Net.MaxOpenRequests = 1
	return sc
}

func NewKafkaProducer(cfg config.KafkaConfig) (*KafkaProducer, error) {
	sync, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}
	return NewKafkaProducerFrom(sync), nil
}

// NewKafkaProducerFrom wraps an existing producer, e.g. sarama/mocks in tests.
func NewKafkaProducerFrom(sync sarama.SyncProducer) *KafkaProducer {
	return &KafkaProducer{sync: sync}
}

func (p *KafkaProducer) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hs := make([]sarama.RecordHeader, 0, len(headers))
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}
	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(payload),
		Headers: hs,
	}
	_, _, err := p.sync.SendMessage(msg)
	return err
}

func (p *KafkaProducer) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}

// LogPublisher writes events to the log when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, topic, key string, payload []byte, headers map[string]string) error {
	p.logger.Info("event published", "topic", topic, "key", key, "event_type", headers["event-type"], "payload", string(payload))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
