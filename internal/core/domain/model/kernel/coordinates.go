package kernel

import (
	"errors"
	"fmt"
	"math"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusKm is the mean radius used by the haversine formula.
	EarthRadiusKm = 6371.0
)

var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates")

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	if err := errors.Join(
		validateLatitude(latitude),
		validateLongitude(longitude),
	); err != nil {
		return Coordinates{}, err
	}
	return Coordinates{
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OptionalCoordinates builds coordinates only when both parts are present.
// A half-specified pair is rejected.
func OptionalCoordinates(latitude, longitude *float64) (*Coordinates, error) {
	if latitude == nil && longitude == nil {
		return nil, nil
	}
	if latitude == nil || longitude == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause(
			"coordinates", errors.New("latitude and longitude must be provided together"))
	}
	c, err := NewCoordinates(*latitude, *longitude)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (c Coordinates) Latitude() float64 {
	return c.latitude
}

func (c Coordinates) Longitude() float64 {
	return c.longitude
}

func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

func (c Coordinates) IsEqual(other Coordinates) bool {
	return c.latitude == other.latitude && c.longitude == other.longitude
}

// DistanceKm is the haversine great-circle distance in kilometers, rounded to 2 decimals.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	lat1 := toRadians(c.latitude)
	lat2 := toRadians(other.latitude)
	dLat := toRadians(other.latitude - c.latitude)
	dLng := toRadians(other.longitude - c.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	distance := EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return Round(distance, 2)
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.latitude, c.longitude)
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func validateLatitude(v float64) error {
	if math.IsNaN(v) || v < MinLatitude || v > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", v, MinLatitude, MaxLatitude)
	}
	return nil
}

func validateLongitude(v float64) error {
	if math.IsNaN(v) || v < MinLongitude || v > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", v, MinLongitude, MaxLongitude)
	}
	return nil
}
