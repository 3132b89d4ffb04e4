// Package shiprepo persists shipment aggregates with GORM.
package shiprepo

import (
	"time"

	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
)

// ShipmentDTO is the row layout of the shipments table.
type ShipmentDTO struct {
	ID               int64      `gorm:"primaryKey;autoIncrement"`
	Reference        string     `gorm:"type:text;not null;uniqueIndex:idx_shipments_reference"`
	OwnerID          int64      `gorm:"not null;index"`
	Name             string     `gorm:"type:text;not null"`
	Mode             string     `gorm:"type:text;not null"`
	Type             string     `gorm:"type:text;not null"`
	Carrier          string     `gorm:"type:text;not null"`
	Status           string     `gorm:"type:text;not null;index"`
	AssignedBrokerID *int64     `gorm:"index"`
	ClearanceToken   *string    `gorm:"type:text"`
	TokenIssuedAt    *time.Time `gorm:"type:timestamptz"`
	Notes            *string    `gorm:"type:text"`
	TotalValue       *float64   `gorm:"type:numeric(16,2)"`
	TotalWeight      *float64   `gorm:"type:numeric(16,3)"`
	Currency         *string    `gorm:"type:char(3)"`
	CreatedAt        time.Time  `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt        time.Time  `gorm:"not null;autoUpdateTime:false"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	var token *string
	if t := s.ClearanceToken(); t != nil {
		raw := t.String()
		token = &raw
	}

	summary := s.Details().Summary
	return ShipmentDTO{
		ID:               s.ID().Int64(),
		Reference:        s.Reference().String(),
		OwnerID:          s.OwnerID().Int64(),
		Name:             s.Name(),
		Mode:             string(s.Details().Mode),
		Type:             string(s.Details().Type),
		Carrier:          s.Details().Carrier,
		Status:           s.Status().String(),
		AssignedBrokerID: kernel.RawID(s.AssignedBrokerID()),
		ClearanceToken:   token,
		TokenIssuedAt:    s.TokenIssuedAt(),
		Notes:            optionalString(s.Notes()),
		TotalValue:       summary.TotalValue(),
		TotalWeight:      summary.TotalWeight(),
		Currency:         optionalString(summary.Currency()),
		CreatedAt:        s.CreatedAt(),
		UpdatedAt:        s.UpdatedAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	mode, err := shipment.ParseMode(dto.Mode)
	if err != nil {
		return nil, err
	}

	shipmentType, err := shipment.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	summary, err := shipment.NewSummary(dto.TotalValue, dto.TotalWeight, deref(dto.Currency))
	if err != nil {
		return nil, err
	}

	var token *kernel.ClearanceToken
	if dto.ClearanceToken != nil {
		t, tokenErr := kernel.ClearanceTokenFromString(*dto.ClearanceToken)
		if tokenErr != nil {
			return nil, tokenErr
		}
		token = &t
	}

	return shipment.RestoreShipment(shipment.Snapshot{
		ID:        kernel.ID(dto.ID),
		Reference: shipment.Reference(dto.Reference),
		OwnerID:   kernel.ID(dto.OwnerID),
		Name:      dto.Name,
		Details: shipment.Details{
			Mode:    mode,
			Type:    shipmentType,
			Carrier: dto.Carrier,
			Summary: summary,
		},
		Status:           status,
		AssignedBrokerID: kernel.OptionalID(dto.AssignedBrokerID),
		ClearanceToken:   token,
		TokenIssuedAt:    dto.TokenIssuedAt,
		Notes:            deref(dto.Notes),
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
