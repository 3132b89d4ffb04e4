package notify

import (
	"context"
	"log/slog"

	"preclear/internal/core/ports"
)

// LogNotifier writes notifications to the log. It is used when no message
// broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (l *LogNotifier) Notify(ctx context.Context, n ports.Notification) error {
	l.logger.InfoContext(ctx, "Notification",
		"notification_id", n.ID.String(),
		"recipient_role", string(n.RecipientRole),
		"shipment_id", n.ShipmentID.Int64(),
		"message", n.Message,
		"occurred_at", n.OccurredAt,
	)
	return nil
}
