package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventPasswordReset is the event type published for reset requests.
const EventPasswordReset = "password_reset_requested"

// ResetEvent is the JSON payload published to Kafka. A mailer service
// consumes it and does the actual delivery.
type ResetEvent struct {
	Type      string    `json:"type"`
	Email     string    `json:"email"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes reset events keyed by recipient email.
type KafkaNotifier struct {
	w   messageWriter
	now func() time.Time
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &KafkaNotifier{w: w, now: time.Now}
}

func (n *KafkaNotifier) Send(ctx context.Context, link, recipient string) error {
	data, err := json.Marshal(ResetEvent{
		Type:      EventPasswordReset,
		Email:     recipient,
		Link:      link,
		CreatedAt: n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	if err := n.w.WriteMessages(ctx, kafka.Message{Key: []byte(recipient), Value: data}); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.w.Close()
}
