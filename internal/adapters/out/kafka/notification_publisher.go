// Package kafka publishes workflow notifications to a Kafka topic with
// franz-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"preclear/internal/core/ports"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is the subset of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// NotificationMessage is the JSON value of every published record.
type NotificationMessage struct {
	ID            string    `json:"id"`
	RecipientRole string    `json:"recipientRole"`
	ShipmentID    int64     `json:"shipmentId"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NotificationPublisher implements ports.Notifier. Records are keyed by
// shipment id so notifications about one shipment stay ordered.
type NotificationPublisher struct {
	producer Producer
	topic    string
}

// NewNotificationPublisher connects to the comma separated seed brokers.
func NewNotificationPublisher(brokers, topic string) (*NotificationPublisher, error) {
	if strings.TrimSpace(brokers) == "" {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("kafka notifications topic is not configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return NewNotificationPublisherWithProducer(client, topic), nil
}

func NewNotificationPublisherWithProducer(producer Producer, topic string) *NotificationPublisher {
	return &NotificationPublisher{producer: producer, topic: topic}
}

func (p *NotificationPublisher) Notify(ctx context.Context, n ports.Notification) error {
	value, err := json.Marshal(NotificationMessage{
		ID:            n.ID.String(),
		RecipientRole: string(n.RecipientRole),
		ShipmentID:    n.ShipmentID.Int64(),
		Message:       n.Message,
		OccurredAt:    n.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(n.ShipmentID.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "recipient-role", Value: []byte(n.RecipientRole)},
		},
		Timestamp: n.OccurredAt,
	}

	if err = p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID, err)
	}
	return nil
}

// Close flushes and releases the client.
func (p *NotificationPublisher) Close() {
	p.producer.Close()
}
