package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/storm-outlook-service/internal/config"
	"github.com/couchcryptid/storm-outlook-service/internal/domain"
)

// messageWriter is the subset of *kafkago.Writer the notifier uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Notifier publishes advisory notifications to a Kafka topic.
// It implements domain.Notifier.
type Notifier struct {
	writer messageWriter
	logger *slog.Logger
}

// NewNotifier creates a Kafka producer for the configured notify topic.
func NewNotifier(cfg *config.Config, logger *slog.Logger) *Notifier {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaNotifyTopic,
		Balancer:               &kafkago.LeastBytes{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Notifier{writer: w, logger: logger}
}

// Notify publishes n keyed by its advisory title, so repeats of one advisory
// land on the same partition.
func (n *Notifier) Notify(ctx context.Context, note domain.Notification) error {
	msg, err := serializeToMessage(note)
	if err != nil {
		return err
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	n.logger.Debug("notification published", "notification_id", note.ID)
	return nil
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}

// serializeToMessage marshals a Notification into a Kafka message.
func serializeToMessage(note domain.Notification) (kafkago.Message, error) {
	data, err := json.Marshal(note)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize notification: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(note.AdvisoryTitle),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "notification_id", Value: []byte(note.ID)},
			{Key: "notified_at", Value: []byte(note.NotifiedAt.Format(time.RFC3339))},
		},
	}, nil
}
