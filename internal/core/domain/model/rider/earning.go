package rider

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Earning is the credit recorded for one delivered order. At most one exists per order.
type Earning struct {
	id       int64
	riderID  kernel.UUID
	orderID  kernel.UUID
	amount   decimal.Decimal
	orderFee decimal.Decimal
	earnedAt time.Time
}

func NewEarning(riderID, orderID kernel.UUID, amount, orderFee decimal.Decimal, earnedAt time.Time) (*Earning, error) {
	if err := errors.Join(riderID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	if amount.IsNegative() || orderFee.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"earning", fmt.Errorf("amount %s and fee %s must not be negative", amount, orderFee))
	}
	return &Earning{
		riderID:  riderID,
		orderID:  orderID,
		amount:   amount,
		orderFee: orderFee,
		earnedAt: earnedAt.UTC(),
	}, nil
}

func RestoreEarning(id int64, riderID, orderID kernel.UUID, amount, orderFee decimal.Decimal, earnedAt time.Time) (*Earning, error) {
	e, err := NewEarning(riderID, orderID, amount, orderFee, earnedAt)
	if err != nil {
		return nil, err
	}
	e.id = id
	return e, nil
}

// ID is zero until the row has been inserted.
func (e *Earning) ID() int64 { return e.id }
func (e *Earning) RiderID() kernel.UUID { return e.riderID }
func (e *Earning) OrderID() kernel.UUID { return e.orderID }
func (e *Earning) Amount() decimal.Decimal { return e.amount }
func (e *Earning) OrderFee() decimal.Decimal { return e.orderFee }
func (e *Earning) EarnedAt() time.Time { return e.earnedAt }

func (e *Earning) SetID(id int64) {
	e.id = id
}
