package rider

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// LocationPing is one GPS report. Pings are append-only; the latest one is also
// copied onto the profile.
type LocationPing struct {
	RiderID     kernel.UUID
	Coordinates kernel.Coordinates
	AccuracyM   *float64
	SpeedKmh    *float64
	Heading     *float64
	OrderID     *kernel.UUID
	RecordedAt  time.Time
}

func NewLocationPing(riderID kernel.UUID, at kernel.Coordinates, recordedAt time.Time) (LocationPing, error) {
	if err := riderID.Validate(); err != nil {
		return LocationPing{}, err
	}
	if err := at.Validate(); err != nil {
		return LocationPing{}, err
	}
	return LocationPing{RiderID: riderID, Coordinates: at, RecordedAt: recordedAt.UTC()}, nil
}

// WithMotion sets the optional device readings. Heading is in degrees from north.
func (p LocationPing) WithMotion(accuracyM, speedKmh, heading *float64) (LocationPing, error) {
	if accuracyM != nil && *accuracyM < 0 {
		return p, errs.NewValueIsOutOfRangeError("accuracy", *accuracyM, 0, "unbounded")
	}
	if speedKmh != nil && *speedKmh < 0 {
		return p, errs.NewValueIsOutOfRangeError("speed", *speedKmh, 0, "unbounded")
	}
	if heading != nil && (*heading < 0 || *heading > 360) {
		return p, errs.NewValueIsOutOfRangeError("heading", *heading, 0, 360)
	}
	p.AccuracyM, p.SpeedKmh, p.Heading = accuracyM, speedKmh, heading
	return p, nil
}
