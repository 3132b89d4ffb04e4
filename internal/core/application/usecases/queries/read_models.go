package queries

import (
	"database/sql"
	"time"

	"preclear/internal/core/domain/model/kernel"
)

// ShipmentView is the read model of one shipment row.
type ShipmentView struct {
	ID               kernel.ID
	Reference        string
	OwnerID          kernel.ID
	Name             string
	Mode             string
	Type             string
	Carrier          string
	Status           string
	AssignedBrokerID *kernel.ID
	ClearanceToken   *string
	TokenIssuedAt    *time.Time
	Notes            *string
	TotalValue       *float64
	TotalWeight      *float64
	Currency         *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ExceptionView is the read model of one compliance exception.
type ExceptionView struct {
	ID         kernel.ID
	ShipmentID kernel.ID
	Code       string
	Message    string
	Severity   string
	Resolved   bool
	CreatedBy  *kernel.ID
	ResolvedBy *kernel.ID
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// AuditEntryView is the read model of one audit record.
type AuditEntryView struct {
	ID          kernel.ID
	UserID      *kernel.ID
	ShipmentID  *kernel.ID
	Action      string
	Description *string
	CreatedAt   time.Time
}

const shipmentColumns = `
	id,
	reference,
	owner_id,
	name,
	mode,
	type,
	carrier,
	status,
	assigned_broker_id,
	clearance_token,
	token_issued_at,
	notes,
	total_value,
	total_weight,
	TRIM(currency),
	created_at,
	updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShipment(row rowScanner) (ShipmentView, error) {
	var (
		v        ShipmentView
		id       int64
		ownerID  int64
		brokerID sql.NullInt64
	)
	err := row.Scan(
		&id,
		&v.Reference,
		&ownerID,
		&v.Name,
		&v.Mode,
		&v.Type,
		&v.Carrier,
		&v.Status,
		&brokerID,
		&v.ClearanceToken,
		&v.TokenIssuedAt,
		&v.Notes,
		&v.TotalValue,
		&v.TotalWeight,
		&v.Currency,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return ShipmentView{}, err
	}
	v.ID = kernel.ID(id)
	v.OwnerID = kernel.ID(ownerID)
	v.AssignedBrokerID = nullID(brokerID)
	return v, nil
}

func nullID(v sql.NullInt64) *kernel.ID {
	if !v.Valid {
		return nil
	}
	id := kernel.ID(v.Int64)
	return &id
}
