package queries

import (
	"errors"
	"math"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrQuoteDeliveryFeeQueryIsNotConstructed = errors.New(
	"QuoteDeliveryFeeQuery must be created via a NewQuoteDeliveryFee constructor",
)

// QuoteDeliveryFeeQuery prices a trip without touching storage.
type QuoteDeliveryFeeQuery struct {
	distanceKm float64
	guard      guard.ConstructorGuard
}

func NewQuoteDeliveryFeeByDistance(distanceKm float64) (QuoteDeliveryFeeQuery, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return QuoteDeliveryFeeQuery{}, errs.NewValueIsOutOfRangeError("distance", distanceKm, 0, "unbounded")
	}
	return QuoteDeliveryFeeQuery{distanceKm: kernel.Round(distanceKm, 2), guard: guard.NewConstructorGuard()}, nil
}

func NewQuoteDeliveryFeeBetween(pickup, delivery kernel.Coordinates) (QuoteDeliveryFeeQuery, error) {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return QuoteDeliveryFeeQuery{}, err
	}
	return QuoteDeliveryFeeQuery{distanceKm: pickup.DistanceKm(delivery), guard: guard.NewConstructorGuard()}, nil
}

func (q QuoteDeliveryFeeQuery) Validate() error {
	return q.guard.Validate(ErrQuoteDeliveryFeeQueryIsNotConstructed)
}

type Quote struct {
	DistanceKm float64
	Fee        decimal.Decimal
	RiderShare decimal.Decimal
}

type QuoteDeliveryFeeQueryHandler struct{}

func NewQuoteDeliveryFeeQueryHandler() QuoteDeliveryFeeQueryHandler {
	return QuoteDeliveryFeeQueryHandler{}
}

func (QuoteDeliveryFeeQueryHandler) Handle(query QuoteDeliveryFeeQuery) (Quote, error) {
	if err := query.Validate(); err != nil {
		return Quote{}, err
	}
	fee := services.DeliveryFee(query.distanceKm)
	return Quote{DistanceKm: query.distanceKm, Fee: fee, RiderShare: services.RiderShare(fee)}, nil
}
