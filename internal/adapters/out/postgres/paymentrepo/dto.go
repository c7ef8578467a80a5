// Package paymentrepo maps payment transactions to the transactions table.
package paymentrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TransactionDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;index"`
	Reference        string          `gorm:"uniqueIndex"`
	Amount           decimal.Decimal `gorm:"type:numeric(10,2)"`
	Currency         string
	Status           string
	GatewayReference string
	AuthorizationURL string
	AccessCode       string
	Channel          string
	PaidAt           *time.Time
	Metadata         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (TransactionDTO) TableName() string {
	return "transactions"
}

func fromDomain(t *payment.Transaction) TransactionDTO {
	var metadata datatypes.JSON
	if len(t.Metadata()) > 0 {
		metadata = datatypes.JSON(t.Metadata())
	}
	return TransactionDTO{
		ID:               t.ID().Bytes(),
		OrderID:          t.OrderID().Bytes(),
		Reference:        t.Reference(),
		Amount:           t.Amount(),
		Currency:         t.Currency(),
		Status:           t.Status().String(),
		GatewayReference: t.GatewayRef(),
		AuthorizationURL: t.AuthURL(),
		AccessCode:       t.AccessCode(),
		Channel:          t.Channel(),
		PaidAt:           t.PaidAt(),
		Metadata:         metadata,
		CreatedAt:        t.CreatedAt(),
		UpdatedAt:        t.UpdatedAt(),
	}
}

func toDomain(dto TransactionDTO) (*payment.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return payment.RestoreTransaction(payment.TransactionState{
		ID:         id,
		OrderID:    orderID,
		Reference:  dto.Reference,
		Amount:     dto.Amount,
		Currency:   dto.Currency,
		Status:     status,
		GatewayRef: dto.GatewayReference,
		AuthURL:    dto.AuthorizationURL,
		AccessCode: dto.AccessCode,
		Channel:    dto.Channel,
		PaidAt:     dto.PaidAt,
		Metadata:   []byte(dto.Metadata),
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
	})
}
