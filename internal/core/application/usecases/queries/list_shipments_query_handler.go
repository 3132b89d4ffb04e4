package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListShipmentsQueryHandler reads shipment lists ordered by created_at DESC
// with id DESC as a tie-break.
type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

func (h ListShipmentsQueryHandler) Handle(ctx context.Context, query ListShipmentsQuery) ([]ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	column := "owner_id"
	if query.Filter() == ByBroker {
		column = "assigned_broker_id"
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+shipmentColumns+`
		FROM shipments
		WHERE `+column+` = ?
		ORDER BY created_at DESC, id DESC
	`, query.ID().Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]ShipmentView, 0)
	for rows.Next() {
		view, scanErr := scanShipment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		shipments = append(shipments, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
