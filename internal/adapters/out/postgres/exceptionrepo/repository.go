package exceptionrepo

import (
	"context"
	"errors"

	"preclear/internal/adapters/out/postgres/pgerr"
	"preclear/internal/core/domain/model/exception"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityName = "exception"

// GormExceptionRepository implements ports.ExceptionRepository using GORM.
type GormExceptionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

func NewGormExceptionRepository(db *gorm.DB, tracker aggregateTracker) *GormExceptionRepository {
	return &GormExceptionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new exception and binds the generated id.
func (r *GormExceptionRepository) Add(ctx context.Context, e *exception.Exception) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, entityName, nil)
	}

	if err := e.BindID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(e.ID(), e)
	return nil
}

// Update writes the resolution columns. The descriptive columns are fixed at
// creation and never rewritten.
func (r *GormExceptionRepository) Update(ctx context.Context, e *exception.Exception) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	result := r.db.WithContext(ctx).
		Model(&ExceptionDTO{}).
		Where("id = ?", dto.ID).
		Select("resolved", "resolved_by", "resolved_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, entityName, dto.ID)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("exception", dto.ID)
	}

	r.tracker.TrackAggregate(e.ID(), e)
	return nil
}

// GetForUpdate retrieves an exception and locks its row.
func (r *GormExceptionRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*exception.Exception, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ExceptionDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("exception", id.Int64())
		}
		return nil, pgerr.Translate(err, entityName, id.Int64())
	}

	return toDomain(dto)
}

// ListUnresolved returns the open exceptions of a shipment, newest first.
func (r *GormExceptionRepository) ListUnresolved(ctx context.Context, shipmentID kernel.ID) ([]*exception.Exception, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ExceptionDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ? AND resolved = ?", shipmentID.Int64(), false).
		Order("created_at DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate(err, entityName, shipmentID.Int64())
	}

	result := make([]*exception.Exception, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}

	return result, nil
}
