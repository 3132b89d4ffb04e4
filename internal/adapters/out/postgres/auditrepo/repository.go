package auditrepo

import (
	"context"

	"preclear/internal/core/domain/model/audit"
	"preclear/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditLogRepository implements ports.AuditLogRepository using GORM.
type GormAuditLogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormAuditLogRepository(db *gorm.DB, tracker aggregateTracker) *GormAuditLogRepository {
	return &GormAuditLogRepository{
		db:      db,
		tracker: tracker,
	}
}

// Append inserts entry and binds the generated id.
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := entry.BindID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}
