package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository. Writes are only valid
// inside a transaction since the order row and its log rows go together.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order at version 1 together with its pending status changes.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("order", aggregate.Number(), err)
		}
		return err
	}
	if err := r.appendLog(ctx, dto.ID, aggregate.PendingChanges()); err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order only if the stored version is the one it was loaded at.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit("id", "number", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConflictErrorWithCause("order", aggregate.Number(),
			fmt.Errorf("expected version %d", expected))
	}
	if err := r.appendLog(ctx, dto.ID, aggregate.PendingChanges()); err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.first(ctx, r.db, "id", id)
}

// GetForUpdate takes a row lock (SELECT ... FOR UPDATE) held until commit or rollback.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), "id", id)
}

func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}
	return r.first(ctx, r.db, "number", number)
}

func (r *GormOrderRepository) first(ctx context.Context, db *gorm.DB, column string, value any) (*order.Order, error) {
	key := value
	if id, ok := value.(kernel.UUID); ok {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		key = id.Bytes()
	}

	var dto OrderDTO
	if err := db.WithContext(ctx).First(&dto, column+" = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", value)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) appendLog(ctx context.Context, orderID uuid.UUID, changes []order.StatusChange) error {
	if len(changes) == 0 {
		return nil
	}
	logs := changesToDTOs(orderID, changes)
	return r.db.WithContext(ctx).Create(&logs).Error
}
