package queries

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGetProofURLQueryIsNotConstructed = errors.New(
	"GetProofURLQuery must be created via NewGetProofURLQuery constructor",
)

type GetProofURLQuery struct {
	actor   identity.Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetProofURLQuery(actor identity.Actor, orderID kernel.UUID) (GetProofURLQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetProofURLQuery{}, err
	}
	return GetProofURLQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProofURLQuery) Validate() error {
	return q.guard.Validate(ErrGetProofURLQueryIsNotConstructed)
}

// GetProofURLQueryHandler presigns a download of the stored proof for
// dispatchers and the assigned rider.
type GetProofURLQueryHandler struct {
	db      *gorm.DB
	storage ports.ProofStorage
}

func NewGetProofURLQueryHandler(db *gorm.DB, storage ports.ProofStorage) GetProofURLQueryHandler {
	return GetProofURLQueryHandler{db: db, storage: storage}
}

type proofRow struct {
	Number   string
	RiderID  *uuid.UUID
	ProofKey string
}

func (h GetProofURLQueryHandler) Handle(ctx context.Context, query GetProofURLQuery) (ports.PresignedURL, error) {
	if err := query.Validate(); err != nil {
		return ports.PresignedURL{}, err
	}

	var rows []proofRow
	err := h.db.WithContext(ctx).Raw(
		`SELECT number, rider_id, proof_key FROM orders WHERE id = ?`, query.orderID.Bytes(),
	).Scan(&rows).Error
	if err != nil {
		return ports.PresignedURL{}, err
	}
	if len(rows) == 0 {
		return ports.PresignedURL{}, errs.NewObjectNotFoundError("order", query.orderID)
	}
	row := rows[0]

	riderID, err := kernel.OptionalUUID(row.RiderID)
	if err != nil {
		return ports.PresignedURL{}, err
	}
	if !query.actor.CanDispatch() && (riderID == nil || !query.actor.Is(*riderID)) {
		return ports.PresignedURL{}, errs.NewPermissionDeniedError("access proof of order " + row.Number)
	}
	if row.ProofKey == "" {
		return ports.PresignedURL{}, errs.NewObjectNotFoundError("proof of order", row.Number)
	}
	return h.storage.PresignDownload(ctx, row.ProofKey)
}
