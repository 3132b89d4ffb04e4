// Package exceptionrepo persists compliance exceptions with GORM.
package exceptionrepo

import (
	"time"

	"preclear/internal/adapters/out/postgres/shiprepo"
	"preclear/internal/core/domain/model/exception"
	"preclear/internal/core/domain/model/kernel"
)

// ExceptionDTO is the row layout of the shipment_exceptions table.
type ExceptionDTO struct {
	ID         int64                 `gorm:"primaryKey;autoIncrement"`
	ShipmentID int64                 `gorm:"not null;index:idx_exceptions_shipment_resolved,priority:1"`
	Shipment   *shiprepo.ShipmentDTO `gorm:"foreignKey:ShipmentID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Code       string                `gorm:"type:text;not null"`
	Message    string                `gorm:"type:text;not null"`
	Severity   string                `gorm:"type:text;not null"`
	Resolved   bool                  `gorm:"not null;index:idx_exceptions_shipment_resolved,priority:2"`
	CreatedBy  *int64                `gorm:"index"`
	ResolvedBy *int64                `gorm:"index"`
	CreatedAt  time.Time             `gorm:"not null;autoCreateTime:false"`
	ResolvedAt *time.Time            `gorm:"type:timestamptz"`
}

func (ExceptionDTO) TableName() string {
	return "shipment_exceptions"
}

func fromDomain(e *exception.Exception) ExceptionDTO {
	return ExceptionDTO{
		ID:         e.ID().Int64(),
		ShipmentID: e.ShipmentID().Int64(),
		Code:       e.Code(),
		Message:    e.Message(),
		Severity:   e.Severity().String(),
		Resolved:   e.Resolved(),
		CreatedBy:  kernel.RawID(e.CreatedBy()),
		ResolvedBy: kernel.RawID(e.ResolvedBy()),
		CreatedAt:  e.CreatedAt(),
		ResolvedAt: e.ResolvedAt(),
	}
}

func toDomain(dto ExceptionDTO) (*exception.Exception, error) {
	return exception.RestoreException(exception.Snapshot{
		ID:         kernel.ID(dto.ID),
		ShipmentID: kernel.ID(dto.ShipmentID),
		Code:       dto.Code,
		Message:    dto.Message,
		Severity:   exception.Severity(dto.Severity),
		Resolved:   dto.Resolved,
		CreatedBy:  kernel.OptionalID(dto.CreatedBy),
		ResolvedBy: kernel.OptionalID(dto.ResolvedBy),
		CreatedAt:  dto.CreatedAt,
		ResolvedAt: dto.ResolvedAt,
	})
}
