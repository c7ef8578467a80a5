package paymentrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormTransactionRepository implements ports.TransactionRepository.
type GormTransactionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTransactionRepository(db *gorm.DB, tracker aggregateTracker) *GormTransactionRepository {
	return &GormTransactionRepository{db: db, tracker: tracker}
}

func (r *GormTransactionRepository) Add(ctx context.Context, tx *payment.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tx)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("transaction", tx.Reference(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(tx.ID(), tx)
	return nil
}

func (r *GormTransactionRepository) Update(ctx context.Context, tx *payment.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tx)
	result := r.db.WithContext(ctx).
		Model(&TransactionDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "order_id", "reference", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transaction", tx.Reference())
	}

	r.tracker.TrackAggregate(tx.ID(), tx)
	return nil
}

func (r *GormTransactionRepository) GetByReference(ctx context.Context, reference string) (*payment.Transaction, error) {
	return r.getByReference(ctx, r.db, reference)
}

func (r *GormTransactionRepository) GetByReferenceForUpdate(ctx context.Context, reference string) (*payment.Transaction, error) {
	return r.getByReference(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), reference)
}

func (r *GormTransactionRepository) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]*payment.Transaction, error) {
	var dtos []TransactionDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND created_at < ?", payment.Pending.String(), cutoff).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	txs := make([]*payment.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, nil
}

func (r *GormTransactionRepository) getByReference(ctx context.Context, db *gorm.DB, reference string) (*payment.Transaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errs.NewValueIsRequiredError("transaction reference")
	}

	var dto TransactionDTO
	if err := db.WithContext(ctx).First(&dto, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transaction", reference)
		}
		return nil, err
	}

	return toDomain(dto)
}
