package queries

import (
	"context"
	"database/sql"
	"errors"

	"preclear/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when no row matches.
func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+shipmentColumns+`
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().Int64()).Row()

	view, err := scanShipment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ShipmentView{}, errs.NewObjectNotFoundError("shipment", query.ShipmentID().Int64())
	}
	if err != nil {
		return ShipmentView{}, err
	}

	return view, nil
}
