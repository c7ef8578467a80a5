package riderrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormRiderRepository implements ports.RiderRepository.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{db: db, tracker: tracker}
}

func (r *GormRiderRepository) Add(ctx context.Context, profile *rider.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := profileFromDomain(profile)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("rider profile", profile.UserID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(profile.UserID(), profile)
	return nil
}

func (r *GormRiderRepository) Update(ctx context.Context, profile *rider.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := profileFromDomain(profile)
	result := r.db.WithContext(ctx).
		Model(&ProfileDTO{}).
		Where("user_id = ?", dto.UserID).
		Select("*").
		Omit("user_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rider profile", profile.UserID().String())
	}

	r.tracker.TrackAggregate(profile.UserID(), profile)
	return nil
}

func (r *GormRiderRepository) Get(ctx context.Context, userID kernel.UUID) (*rider.Profile, error) {
	return r.get(ctx, r.db, userID)
}

func (r *GormRiderRepository) GetForUpdate(ctx context.Context, userID kernel.UUID) (*rider.Profile, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *GormRiderRepository) get(ctx context.Context, db *gorm.DB, userID kernel.UUID) (*rider.Profile, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider profile", userID.String())
		}
		return nil, err
	}

	return profileToDomain(dto)
}

// GormEarningRepository implements ports.EarningRepository.
type GormEarningRepository struct {
	db *gorm.DB
}

func NewGormEarningRepository(db *gorm.DB) *GormEarningRepository {
	return &GormEarningRepository{db: db}
}

// Add inserts the earning. A second earning for the same order violates
// rider_earnings_order_id_key and is reported as a conflict.
func (r *GormEarningRepository) Add(ctx context.Context, earning *rider.Earning) error {
	dto := earningFromDomain(earning)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("rider earning", earning.OrderID().String(), err)
		}
		return err
	}
	earning.SetID(dto.ID)
	return nil
}

func (r *GormEarningRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&EarningDTO{}).Where("order_id = ?", orderID.Bytes()).Count(&count).Error
	return count > 0, err
}

// GormLocationRepository implements ports.LocationRepository.
type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) Add(ctx context.Context, ping rider.LocationPing) error {
	dto := locationFromDomain(ping)
	return r.db.WithContext(ctx).Create(&dto).Error
}
