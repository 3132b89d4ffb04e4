package queries

import (
	"context"
	"database/sql"

	"preclear/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type ListAuditEntriesQueryHandler struct {
	db *gorm.DB
}

func NewListAuditEntriesQueryHandler(db *gorm.DB) ListAuditEntriesQueryHandler {
	return ListAuditEntriesQueryHandler{db: db}
}

// Handle returns entries newest first, by created_at then id.
func (h ListAuditEntriesQueryHandler) Handle(ctx context.Context, query ListAuditEntriesQuery) ([]AuditEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	column := "shipment_id"
	if query.Filter() == ByUser {
		column = "user_id"
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			shipment_id,
			action,
			description,
			created_at
		FROM audit_logs
		WHERE `+column+` = ?
		ORDER BY created_at DESC, id DESC
	`, query.ID().Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]AuditEntryView, 0)
	for rows.Next() {
		var (
			v                  AuditEntryView
			id                 int64
			userID, shipmentID sql.NullInt64
		)
		if err = rows.Scan(&id, &userID, &shipmentID, &v.Action, &v.Description, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.ID = kernel.ID(id)
		v.UserID = nullID(userID)
		v.ShipmentID = nullID(shipmentID)
		entries = append(entries, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
