package rider_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActiveProfile(t *testing.T) *rider.Profile {
	t.Helper()
	p, err := rider.NewProfile(kernel.NewUUID(), "Tunde Bakare", "+2348031112233", rider.Vehicle{Type: rider.Motorcycle, PlateNumber: "lag-123"})
	require.NoError(t, err)
	require.NoError(t, p.ChangeStatus(rider.Active))
	return p
}

func TestNewProfile_Defaults(t *testing.T) {
	p, err := rider.NewProfile(kernel.NewUUID(), "  Tunde Bakare ", "0803", rider.Vehicle{})

	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.Equal(t, rider.Pending, p.Status())
	assert.Equal(t, rider.Motorcycle, p.Vehicle().Type)
	assert.InDelta(t, 5.0, p.Rating(), 0)
	assert.True(t, p.IsAvailable())
	assert.True(t, p.TotalEarnings().IsZero())
	assert.Equal(t, "Tunde Bakare", p.FullName())
	assert.Nil(t, p.Location())
}

func TestNewProfile_NormalizesPlate(t *testing.T) {
	p := newActiveProfile(t)
	assert.Equal(t, "LAG-123", p.Vehicle().PlateNumber)
}

func TestProfile_CheckEligible(t *testing.T) {
	t.Run("active and available", func(t *testing.T) {
		require.NoError(t, newActiveProfile(t).CheckEligible())
	})

	for _, status := range []rider.Status{rider.Pending, rider.Inactive, rider.Suspended} {
		t.Run("status "+status.String(), func(t *testing.T) {
			p := newActiveProfile(t)
			require.NoError(t, p.ChangeStatus(status))

			err := p.CheckEligible()

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "is not active")
		})
	}

	t.Run("unavailable", func(t *testing.T) {
		p := newActiveProfile(t)
		p.SetAvailability(false)

		err := p.CheckEligible()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "is not available")
	})
}

func TestProfile_StatsInvariant(t *testing.T) {
	p := newActiveProfile(t)

	require.NoError(t, p.RecordSuccessfulDelivery(decimal.RequireFromString("840.00")))
	p.RecordFailedDelivery()
	require.NoError(t, p.RecordSuccessfulDelivery(decimal.RequireFromString("350.00")))

	assert.Equal(t, 3, p.TotalDeliveries())
	assert.Equal(t, 2, p.SuccessfulDeliveries())
	assert.Equal(t, 1, p.FailedDeliveries())
	assert.Equal(t, p.TotalDeliveries(), p.SuccessfulDeliveries()+p.FailedDeliveries())
	assert.True(t, decimal.RequireFromString("1190").Equal(p.TotalEarnings()))
	assert.InDelta(t, 66.67, p.SuccessRate(), 0)
}

func TestProfile_RecordSuccessfulDelivery_RejectsNegative(t *testing.T) {
	p := newActiveProfile(t)

	err := p.RecordSuccessfulDelivery(decimal.NewFromInt(-1))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, 0, p.TotalDeliveries())
}

func TestProfile_SuccessRateWithoutDeliveries(t *testing.T) {
	assert.InDelta(t, 0, newActiveProfile(t).SuccessRate(), 0)
}

func TestProfile_LocationFreshness(t *testing.T) {
	p := newActiveProfile(t)
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	loc, _ := kernel.NewCoordinates(6.45, 3.39)

	assert.False(t, p.IsLocationFresh(at))

	require.NoError(t, p.UpdateLocation(loc, at))
	assert.True(t, p.IsLocationFresh(at.Add(4*time.Minute+59*time.Second)))
	assert.False(t, p.IsLocationFresh(at.Add(5*time.Minute)))
	assert.True(t, p.Location().IsEqual(loc))

	require.Error(t, p.UpdateLocation(kernel.Coordinates{}, at))
}

func TestRestoreProfile(t *testing.T) {
	base := rider.ProfileState{
		UserID:               kernel.NewUUID(),
		FullName:             "Ngozi Eze",
		Vehicle:              rider.Vehicle{Type: rider.Van},
		Status:               rider.Active,
		Rating:               4.6,
		TotalDeliveries:      10,
		SuccessfulDeliveries: 9,
		FailedDeliveries:     1,
		TotalEarnings:        decimal.RequireFromString("6300.00"),
		IsAvailable:          false,
	}

	t.Run("valid state", func(t *testing.T) {
		p, err := rider.RestoreProfile(base)

		require.NoError(t, err)
		assert.Equal(t, rider.Active, p.Status())
		assert.False(t, p.IsAvailable())
		assert.Equal(t, 10, p.TotalDeliveries())
	})

	t.Run("broken stats invariant", func(t *testing.T) {
		state := base
		state.FailedDeliveries = 2

		_, err := rider.RestoreProfile(state)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "must equal")
	})

	t.Run("rating out of range", func(t *testing.T) {
		state := base
		state.Rating = 5.5

		_, err := rider.RestoreProfile(state)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestVehicleType(t *testing.T) {
	tests := []struct {
		in    string
		want  rider.VehicleType
		speed float64
	}{
		{"MOTORCYCLE", rider.Motorcycle, 25},
		{"bicycle", rider.Bicycle, 15},
		{"Car", rider.Car, 20},
		{"VAN", rider.Van, 18},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := rider.ParseVehicleType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.InDelta(t, tt.speed, v.AverageSpeedKmh(), 0)
		})
	}

	assert.InDelta(t, rider.DefaultSpeedKmh, rider.UnknownVehicle.AverageSpeedKmh(), 0)
	_, err := rider.ParseVehicleType("truck")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseStatus(t *testing.T) {
	s, err := rider.ParseStatus("suspended")
	require.NoError(t, err)
	assert.Equal(t, rider.Suspended, s)

	_, err = rider.ParseStatus("retired")
	require.Error(t, err)
}

func TestNewEarning(t *testing.T) {
	fee := decimal.RequireFromString("1200")
	e, err := rider.NewEarning(kernel.NewUUID(), kernel.NewUUID(), fee.Mul(decimal.RequireFromString("0.7")), fee, time.Now())

	require.NoError(t, err)
	assert.Equal(t, int64(0), e.ID())
	assert.Equal(t, "840", e.Amount().String())

	_, err = rider.NewEarning(kernel.UUID{}, kernel.NewUUID(), fee, fee, time.Now())
	require.Error(t, err)
}
