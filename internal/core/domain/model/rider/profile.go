package rider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	MinRating     = 0.0
	MaxRating     = 5.0
	DefaultRating = 5.0

	// LocationFreshness is how long a location ping counts as current.
	LocationFreshness = 5 * time.Minute
)

var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile or RestoreProfile")

// Vehicle groups the rider-managed vehicle details.
type Vehicle struct {
	Type          VehicleType
	Model         string
	PlateNumber   string
	LicenseNumber string
}

// Profile is the rider aggregate. It is keyed by the owning user's id.
type Profile struct {
	userID               kernel.UUID
	fullName             string
	phone                string
	vehicle              Vehicle
	status               Status
	rating               float64
	totalDeliveries      int
	successfulDeliveries int
	failedDeliveries     int
	totalEarnings        decimal.Decimal
	isAvailable          bool
	location             *kernel.Coordinates
	lastLocationUpdate   *time.Time
	guard                guard.ConstructorGuard
}

// NewProfile creates a PENDING, available profile rated 5.0.
func NewProfile(userID kernel.UUID, fullName, phone string, vehicle Vehicle) (*Profile, error) {
	p := &Profile{
		status:        Pending,
		rating:        DefaultRating,
		totalEarnings: decimal.Zero,
		isAvailable:   true,
		guard:         guard.NewConstructorGuard(),
	}
	if vehicle.Type == UnknownVehicle {
		vehicle.Type = Motorcycle
	}
	if err := errors.Join(
		p.setUserID(userID),
		p.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}
	p.fullName = strings.TrimSpace(fullName)
	p.phone = strings.TrimSpace(phone)
	return p, nil
}

// ProfileState is the persisted shape of a profile.
type ProfileState struct {
	UserID               kernel.UUID
	FullName             string
	Phone                string
	Vehicle              Vehicle
	Status               Status
	Rating               float64
	TotalDeliveries      int
	SuccessfulDeliveries int
	FailedDeliveries     int
	TotalEarnings        decimal.Decimal
	IsAvailable          bool
	Location             *kernel.Coordinates
	LastLocationUpdate   *time.Time
}

func RestoreProfile(state ProfileState) (*Profile, error) {
	p, err := NewProfile(state.UserID, state.FullName, state.Phone, state.Vehicle)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(
		state.Status.Validate(),
		validateRating(state.Rating),
		validateStats(state.TotalDeliveries, state.SuccessfulDeliveries, state.FailedDeliveries),
	); err != nil {
		return nil, err
	}
	if state.TotalEarnings.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("total earnings", fmt.Errorf("%s is negative", state.TotalEarnings))
	}
	p.status = state.Status
	p.rating = state.Rating
	p.totalDeliveries = state.TotalDeliveries
	p.successfulDeliveries = state.SuccessfulDeliveries
	p.failedDeliveries = state.FailedDeliveries
	p.totalEarnings = state.TotalEarnings
	p.isAvailable = state.IsAvailable
	p.location = state.Location
	p.lastLocationUpdate = state.LastLocationUpdate
	return p, nil
}

func (p *Profile) Validate() error {
	if p == nil {
		return ErrProfileIsNotConstructed
	}
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

func (p *Profile) UserID() kernel.UUID { return p.userID }
func (p *Profile) FullName() string { return p.fullName }
func (p *Profile) Phone() string { return p.phone }
func (p *Profile) Vehicle() Vehicle { return p.vehicle }
func (p *Profile) Status() Status { return p.status }
func (p *Profile) Rating() float64 { return p.rating }
func (p *Profile) TotalDeliveries() int { return p.totalDeliveries }
func (p *Profile) SuccessfulDeliveries() int { return p.successfulDeliveries }
func (p *Profile) FailedDeliveries() int { return p.failedDeliveries }
func (p *Profile) TotalEarnings() decimal.Decimal { return p.totalEarnings }
func (p *Profile) IsAvailable() bool { return p.isAvailable }
func (p *Profile) Location() *kernel.Coordinates { return p.location }
func (p *Profile) LastLocationUpdate() *time.Time { return p.lastLocationUpdate }

// CheckEligible fails with a validation error unless the rider can take a new order.
func (p *Profile) CheckEligible() error {
	if p.status != Active {
		return errs.NewValueIsInvalidErrorWithCause(
			"rider",
			fmt.Errorf("rider %s is not active (status %s)", p.userID, p.status),
		)
	}
	if !p.isAvailable {
		return errs.NewValueIsInvalidErrorWithCause(
			"rider",
			fmt.Errorf("rider %s is not available", p.userID),
		)
	}
	return nil
}

// RecordSuccessfulDelivery is applied by settlement exactly once per delivered order.
func (p *Profile) RecordSuccessfulDelivery(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("earning amount", fmt.Errorf("%s is negative", amount))
	}
	p.totalDeliveries++
	p.successfulDeliveries++
	p.totalEarnings = p.totalEarnings.Add(amount)
	return nil
}

func (p *Profile) RecordFailedDelivery() {
	p.totalDeliveries++
	p.failedDeliveries++
}

// SuccessRate is the share of successful deliveries in percent, two decimals.
func (p *Profile) SuccessRate() float64 {
	return SuccessRateOf(p.successfulDeliveries, p.totalDeliveries)
}

// SuccessRateOf is 0 when there are no deliveries.
func SuccessRateOf(successful, total int) float64 {
	if total == 0 {
		return 0
	}
	return kernel.Round(float64(successful)/float64(total)*100, 2)
}

func (p *Profile) SetAvailability(available bool) {
	p.isAvailable = available
}

func (p *Profile) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Profile) UpdateVehicle(vehicle Vehicle) error {
	return p.setVehicle(vehicle)
}

func (p *Profile) UpdateLocation(location kernel.Coordinates, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	ts := at.UTC()
	p.location = &location
	p.lastLocationUpdate = &ts
	return nil
}

// IsLocationFresh reports whether the last ping is younger than LocationFreshness.
func (p *Profile) IsLocationFresh(now time.Time) bool {
	return IsFresh(p.lastLocationUpdate, now)
}

// IsFresh is shared with read models that carry only the timestamp.
func IsFresh(lastUpdate *time.Time, now time.Time) bool {
	if lastUpdate == nil {
		return false
	}
	return now.Sub(*lastUpdate) < LocationFreshness
}

func (p *Profile) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.userID = id
	return nil
}

func (p *Profile) setVehicle(v Vehicle) error {
	if err := v.Type.Validate(); err != nil {
		return err
	}
	v.Model = strings.TrimSpace(v.Model)
	v.PlateNumber = strings.ToUpper(strings.TrimSpace(v.PlateNumber))
	v.LicenseNumber = strings.TrimSpace(v.LicenseNumber)
	p.vehicle = v
	return nil
}

func validateRating(r float64) error {
	if r < MinRating || r > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", r, MinRating, MaxRating)
	}
	return nil
}

func validateStats(total, successful, failed int) error {
	if total < 0 || successful < 0 || failed < 0 || total != successful+failed {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery stats",
			fmt.Errorf("total %d must equal successful %d plus failed %d", total, successful, failed),
		)
	}
	return nil
}
