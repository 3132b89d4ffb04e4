package ports

import (
	"context"
	"time"

	"preclear/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RecipientRole names the party a notification is addressed to.
type RecipientRole string

const (
	RecipientShipper RecipientRole = "shipper"
	RecipientBroker  RecipientRole = "broker"
)

// Notification is a fire-and-forget message about a shipment.
type Notification struct {
	ID            uuid.UUID
	RecipientRole RecipientRole
	ShipmentID    kernel.ID
	Message       string
	OccurredAt    time.Time
}

// NewNotification stamps a fresh id on the message.
func NewNotification(role RecipientRole, shipmentID kernel.ID, message string, now time.Time) Notification {
	return Notification{
		ID:            uuid.New(),
		RecipientRole: role,
		ShipmentID:    shipmentID,
		Message:       message,
		OccurredAt:    now,
	}
}

// Notifier delivers notifications. Callers treat failures as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// BrokerDirectory knows which brokers exist.
type BrokerDirectory interface {
	Brokers(ctx context.Context) ([]kernel.ID, error)
	Exists(ctx context.Context, id kernel.ID) (bool, error)
}

// DocumentChecker reports whether a shipment has every document approval requires.
type DocumentChecker interface {
	HasRequiredDocuments(ctx context.Context, shipmentID kernel.ID) (bool, error)
}
