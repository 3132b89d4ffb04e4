package queries

import (
	"context"
	"database/sql"

	"preclear/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type ListExceptionsQueryHandler struct {
	db *gorm.DB
}

func NewListExceptionsQueryHandler(db *gorm.DB) ListExceptionsQueryHandler {
	return ListExceptionsQueryHandler{db: db}
}

// Handle returns the exceptions newest first. An unknown shipment yields an
// empty list.
func (h ListExceptionsQueryHandler) Handle(ctx context.Context, query ListExceptionsQuery) ([]ExceptionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			shipment_id,
			code,
			message,
			severity,
			resolved,
			created_by,
			resolved_by,
			created_at,
			resolved_at
		FROM shipment_exceptions
		WHERE shipment_id = ? AND (NOT ? OR resolved = FALSE)
		ORDER BY created_at DESC, id DESC
	`, query.ShipmentID().Int64(), query.OpenOnly()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exceptions := make([]ExceptionView, 0)
	for rows.Next() {
		var (
			v                     ExceptionView
			id, shipmentID        int64
			createdBy, resolvedBy sql.NullInt64
		)
		err = rows.Scan(
			&id,
			&shipmentID,
			&v.Code,
			&v.Message,
			&v.Severity,
			&v.Resolved,
			&createdBy,
			&resolvedBy,
			&v.CreatedAt,
			&v.ResolvedAt,
		)
		if err != nil {
			return nil, err
		}
		v.ID = kernel.ID(id)
		v.ShipmentID = kernel.ID(shipmentID)
		v.CreatedBy = nullID(createdBy)
		v.ResolvedBy = nullID(resolvedBy)
		exceptions = append(exceptions, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return exceptions, nil
}
