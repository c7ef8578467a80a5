package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DefaultHistoryHours = 24
	MaxHistoryHours     = 168
)

var (
	ErrGetAvailableRidersQueryIsNotConstructed = errors.New(
		"GetAvailableRidersQuery must be created via NewGetAvailableRidersQuery constructor",
	)
	ErrGetRiderEarningsQueryIsNotConstructed = errors.New(
		"GetRiderEarningsQuery must be created via NewGetRiderEarningsQuery constructor",
	)
	ErrGetRiderLocationHistoryQueryIsNotConstructed = errors.New(
		"GetRiderLocationHistoryQuery must be created via NewGetRiderLocationHistoryQuery constructor",
	)
)

// GetAvailableRidersQuery lists ACTIVE riders that are taking orders. Dispatcher only.
type GetAvailableRidersQuery struct {
	actor identity.Actor
	guard guard.ConstructorGuard
}

func NewGetAvailableRidersQuery(actor identity.Actor) (GetAvailableRidersQuery, error) {
	if err := actor.RequireDispatcher("list available riders"); err != nil {
		return GetAvailableRidersQuery{}, err
	}
	return GetAvailableRidersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAvailableRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableRidersQueryIsNotConstructed)
}

type AvailableRiderView struct {
	ID                 kernel.UUID
	FullName           string
	Phone              string
	VehicleType        rider.VehicleType
	Rating             float64
	TotalDeliveries    int
	Latitude           *float64
	Longitude          *float64
	LastLocationUpdate *time.Time
	IsLocationFresh    bool
}

type GetRiderEarningsQuery struct {
	actor   identity.Actor
	riderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetRiderEarningsQuery fails with PermissionDenied when a rider asks for
// somebody else's earnings.
func NewGetRiderEarningsQuery(actor identity.Actor, riderID kernel.UUID) (GetRiderEarningsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderEarningsQuery{}, err
	}
	if err := actor.RequireSelfOrDispatcher("read rider earnings", riderID); err != nil {
		return GetRiderEarningsQuery{}, err
	}
	return GetRiderEarningsQuery{actor: actor, riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRiderEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderEarningsQueryIsNotConstructed)
}

func (q GetRiderEarningsQuery) RiderID() kernel.UUID { return q.riderID }

type EarningView struct {
	OrderID     kernel.UUID
	OrderNumber string
	Amount      decimal.Decimal
	OrderFee    decimal.Decimal
	EarnedAt    time.Time
}

type RiderEarningsView struct {
	RiderID              kernel.UUID
	TotalEarnings        decimal.Decimal
	TotalDeliveries      int
	SuccessfulDeliveries int
	FailedDeliveries     int
	SuccessRate          float64
	// Earnings are newest first.
	Earnings []EarningView
}

type GetRiderLocationHistoryQuery struct {
	actor   identity.Actor
	riderID kernel.UUID
	hours   int
	guard   guard.ConstructorGuard
}

// NewGetRiderLocationHistoryQuery uses DefaultHistoryHours when hours is zero.
func NewGetRiderLocationHistoryQuery(actor identity.Actor, riderID kernel.UUID, hours int) (GetRiderLocationHistoryQuery, error) {
	if hours == 0 {
		hours = DefaultHistoryHours
	}
	var hoursErr error
	if hours < 1 || hours > MaxHistoryHours {
		hoursErr = errs.NewValueIsOutOfRangeError("hours", hours, 1, MaxHistoryHours)
	}
	if err := errors.Join(riderID.Validate(), hoursErr); err != nil {
		return GetRiderLocationHistoryQuery{}, err
	}
	if err := actor.RequireSelfOrDispatcher("read location history", riderID); err != nil {
		return GetRiderLocationHistoryQuery{}, err
	}
	return GetRiderLocationHistoryQuery{actor: actor, riderID: riderID, hours: hours, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRiderLocationHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderLocationHistoryQueryIsNotConstructed)
}

func (q GetRiderLocationHistoryQuery) RiderID() kernel.UUID { return q.riderID }
func (q GetRiderLocationHistoryQuery) Hours() int { return q.hours }

type LocationView struct {
	Latitude   float64
	Longitude  float64
	AccuracyM  *float64
	SpeedKmh   *float64
	Heading    *float64
	OrderID    *kernel.UUID
	RecordedAt time.Time
}
