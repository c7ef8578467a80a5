package queries

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery is the customer-facing view of an order by its number.
// It needs no actor.
type GetOrderTrackingQuery struct {
	number string
	guard  guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(number string) (GetOrderTrackingQuery, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return GetOrderTrackingQuery{}, errs.NewValueIsRequiredError("order number")
	}
	return GetOrderTrackingQuery{number: number, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) Number() string { return q.number }

type TrackedRider struct {
	Name         string
	MaskedPhone  string
	VehicleType  rider.VehicleType
	VehicleModel string
	PlateNumber  string
	Rating       float64
	// Live is nil unless the order is on its way.
	Live *LiveLocation
}

type LiveLocation struct {
	Latitude   float64
	Longitude  float64
	UpdatedAt  time.Time
	IsFresh    bool
	DistanceKm *float64
	DistanceM  *int64
	ETA        *services.ETA
}

type OrderTrackingView struct {
	Number      string
	Status      order.Status
	Pickup      AddressView
	Delivery    AddressView
	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedAt    *time.Time
	DeliveredAt *time.Time
	Rider       *TrackedRider
}

// MaskPhone hides the middle of a phone number: everything but the last four
// characters is kept, then "****", then the last two characters.
func MaskPhone(phone string) string {
	r := []rune(phone)
	head := 0
	if len(r) > 4 {
		head = len(r) - 4
	}
	tail := 0
	if len(r) > 2 {
		tail = len(r) - 2
	}
	return string(r[:head]) + "****" + string(r[tail:])
}
