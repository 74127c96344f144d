package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/khonsu303/estudio/internal/logging"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes activities as JSON keyed by user id, so one user's
// activities land on one partition in order.
type KafkaPublisher struct {
	w   messageWriter
	log logging.Logger
	now func() time.Time
}

func NewKafkaPublisher(brokers []string, topic string, log logging.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn(context.Background(), "activity delivery failed", "count", len(messages), "error", err)
			}
		},
	}
	return newKafkaPublisher(w, log)
}

func newKafkaPublisher(w messageWriter, log logging.Logger) *KafkaPublisher {
	return &KafkaPublisher{w: w, log: log, now: time.Now}
}

func (p *KafkaPublisher) Publish(ctx context.Context, a Activity) {
	if a.At.IsZero() {
		a.At = p.now().UTC()
	}

	value, err := json.Marshal(a)
	if err != nil {
		p.log.Warn(ctx, "activity encode failed", "type", a.Type, "error", err)
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{Key: []byte(a.UserID), Value: value})
	if err != nil {
		p.log.Warn(ctx, "activity publish failed", "type", a.Type, "error", err)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
