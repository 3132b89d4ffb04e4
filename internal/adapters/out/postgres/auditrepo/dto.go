// Package auditrepo appends audit entries with GORM. It exposes no update or
// delete path; the schema additionally rejects both.
package auditrepo

import (
	"time"

	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/kernel"
)

// AuditLogDTO is the row layout of the audit_logs table.
type AuditLogDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      *int64    `gorm:"index:idx_audit_logs_user_created,priority:1"`
	ShipmentID  *int64    `gorm:"index:idx_audit_logs_shipment_created,priority:1"`
	Action      string    `gorm:"type:text;not null"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false;index:idx_audit_logs_user_created,priority:2;index:idx_audit_logs_shipment_created,priority:2"`
}

func (AuditLogDTO) TableName() string {
	return "audit_logs"
}

func fromDomain(e *audit.Entry) AuditLogDTO {
	var description *string
	if d := e.Description(); d != "" {
		description = &d
	}

	return AuditLogDTO{
		ID:          e.ID().Int64(),
		UserID:      kernel.RawID(e.UserID()),
		ShipmentID:  kernel.RawID(e.ShipmentID()),
		Action:      e.Action().String(),
		Description: description,
		CreatedAt:   e.CreatedAt(),
	}
}
