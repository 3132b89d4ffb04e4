package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"preclear/internal/adapters/out/kafka"
	"preclear/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeProducer) Close() { f.closed = true }

func TestNotificationPublisher_Notify(t *testing.T) {
	producer := &fakeProducer{}
	publisher := kafka.NewNotificationPublisherWithProducer(producer, "shipment.notifications")
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	n := ports.NewNotification(ports.RecipientShipper, 42, "shipment SHP-1 is now approved", at)

	require.NoError(t, publisher.Notify(t.Context(), n))

	require.Len(t, producer.records, 1)
	record := producer.records[0]
	assert.Equal(t, "shipment.notifications", record.Topic)
	assert.Equal(t, "42", string(record.Key))
	assert.Equal(t, at, record.Timestamp)
	require.Len(t, record.Headers, 1)
	assert.Equal(t, "shipper", string(record.Headers[0].Value))

	var msg kafka.NotificationMessage
	require.NoError(t, json.Unmarshal(record.Value, &msg))
	assert.Equal(t, n.ID.String(), msg.ID)
	assert.Equal(t, int64(42), msg.ShipmentID)
	assert.Equal(t, "shipper", msg.RecipientRole)
	assert.Equal(t, "shipment SHP-1 is now approved", msg.Message)
	assert.True(t, msg.OccurredAt.Equal(at))
}

func TestNotificationPublisher_PropagatesProduceError(t *testing.T) {
	producer := &fakeProducer{err: errors.New("leader not available")}
	publisher := kafka.NewNotificationPublisherWithProducer(producer, "t")

	err := publisher.Notify(t.Context(), ports.NewNotification(ports.RecipientBroker, 1, "m", time.Now()))

	assert.ErrorContains(t, err, "leader not available")
}

func TestNotificationPublisher_Close(t *testing.T) {
	producer := &fakeProducer{}
	kafka.NewNotificationPublisherWithProducer(producer, "t").Close()
	assert.True(t, producer.closed)
}

func TestNewNotificationPublisher_RequiresConfiguration(t *testing.T) {
	_, err := kafka.NewNotificationPublisher("", "topic")
	assert.Error(t, err)

	_, err = kafka.NewNotificationPublisher("localhost:9092", " ")
	assert.Error(t, err)
}
