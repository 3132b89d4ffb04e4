package shiprepo

import (
	"context"
	"errors"
	"fmt"

	"preclear/internal/adapters/out/postgres/pgerr"
	"preclear/internal/core/domain/model/kernel"
	"preclear/internal/core/domain/model/shipment"
	"preclear/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrReferenceCollision is reported when a generated reference already exists.
// It indicates a misconfigured deployment (for example two writers sharing one
// reference clock) rather than a client mistake.
var ErrReferenceCollision = errors.New("shipment reference collision")

const entityName = "shipment"

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new shipment and binds the generated id to the aggregate.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		err = pgerr.Translate(err, entityName, dto.Reference)
		if errors.Is(err, pgerr.ErrUniqueViolation) {
			return fmt.Errorf("%w: %s: %w", ErrReferenceCollision, dto.Reference, err)
		}
		return err
	}

	if err := aggregate.BindID(kernel.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every mutable column of an existing shipment.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "reference", "owner_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, entityName, dto.ID)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by id.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a shipment and locks its row with SELECT ... FOR UPDATE.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*shipment.Shipment, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormShipmentRepository) get(_ context.Context, db *gorm.DB, id kernel.ID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := db.Take(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.Int64())
		}
		return nil, pgerr.Translate(err, entityName, id.Int64())
	}

	return toDomain(dto)
}

// GetFirstAwaitingBroker locks the oldest under_review shipment without a
// broker. Rows locked by concurrent transactions are skipped.
func (r *GormShipmentRepository) GetFirstAwaitingBroker(ctx context.Context) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND assigned_broker_id IS NULL", shipment.UnderReview.String()).
		Order("created_at, id").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", "first awaiting broker")
		}
		return nil, pgerr.Translate(err, entityName, "first awaiting broker")
	}

	return toDomain(dto)
}

// CountActiveByBroker counts non-terminal shipments per broker.
func (r *GormShipmentRepository) CountActiveByBroker(ctx context.Context, brokerIDs []kernel.ID) (map[kernel.ID]int, error) {
	counts := make(map[kernel.ID]int, len(brokerIDs))
	if len(brokerIDs) == 0 {
		return counts, nil
	}

	raw := make([]int64, 0, len(brokerIDs))
	for _, id := range brokerIDs {
		counts[id] = 0
		raw = append(raw, id.Int64())
	}

	var rows []struct {
		AssignedBrokerID int64
		Active           int
	}
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Select("assigned_broker_id, COUNT(*) AS active").
		Where("assigned_broker_id IN ?", raw).
		Where("status NOT IN ?", []string{shipment.Completed.String(), shipment.Cancelled.String()}).
		Group("assigned_broker_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[kernel.ID(row.AssignedBrokerID)] = row.Active
	}

	return counts, nil
}
