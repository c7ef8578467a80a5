package services

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	BaseFee          = decimal.NewFromInt(500)
	PerKmFee         = decimal.NewFromInt(100)
	BaseDistanceKm   = decimal.NewFromInt(2)
	RiderShareFactor = decimal.RequireFromString("0.70")
)

// DeliveryFee is the base fee up to BaseDistanceKm plus PerKmFee for every
// kilometre beyond it. Negative and non-finite distances price as the base fee;
// callers that accept user input reject them first.
func DeliveryFee(distanceKm float64) decimal.Decimal {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return BaseFee
	}
	d := decimal.NewFromFloat(distanceKm)
	if d.LessThanOrEqual(BaseDistanceKm) {
		return BaseFee
	}
	return BaseFee.Add(d.Sub(BaseDistanceKm).Mul(PerKmFee)).Round(2)
}

// RiderShare is the rider's cut of a delivery fee, rounded to kobo.
func RiderShare(fee decimal.Decimal) decimal.Decimal {
	return fee.Mul(RiderShareFactor).Round(2)
}
