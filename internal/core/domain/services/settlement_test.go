package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliverTo(t *testing.T, o *order.Order, c services.Candidate, final order.Status) {
	t.Helper()
	id := c.User.ID()
	require.NoError(t, services.NewOrderDispatcher().Assign(o, c, nil, now))
	require.NoError(t, o.UpdateStatus(order.Accepted, &id, "", now.Add(time.Minute)))
	require.NoError(t, o.UpdateStatus(order.Picked, &id, "", now.Add(2*time.Minute)))
	require.NoError(t, o.UpdateStatus(final, &id, "", now.Add(3*time.Minute)))
}

func TestSettlement_Delivered(t *testing.T) {
	settlement := services.NewSettlement()

	t.Run("credits 70 percent of the fee", func(t *testing.T) {
		o := newOrder(t, 1200)
		c := newCandidate(t, "Tunde", "Bakare", rider.Active)
		deliverTo(t, o, c, order.InTransit)
		id := c.User.ID()
		require.NoError(t, o.UpdateStatus(order.Delivered, &id, "", now.Add(4*time.Minute)))

		earning, err := settlement.Settle(o, c.Profile, false, now.Add(4*time.Minute))

		require.NoError(t, err)
		require.NotNil(t, earning)
		assert.True(t, decimal.RequireFromString("840.00").Equal(earning.Amount()))
		assert.True(t, decimal.NewFromInt(1200).Equal(earning.OrderFee()))
		assert.True(t, earning.OrderID().IsEqual(o.ID()))
		assert.True(t, decimal.RequireFromString("840").Equal(c.Profile.TotalEarnings()))
		assert.Equal(t, 1, c.Profile.TotalDeliveries())
		assert.Equal(t, 1, c.Profile.SuccessfulDeliveries())
		assert.InDelta(t, 100.0, c.Profile.SuccessRate(), 0)
	})

	t.Run("already settled is a silent no-op", func(t *testing.T) {
		o := newOrder(t, 1200)
		c := newCandidate(t, "Tunde", "Bakare", rider.Active)
		deliverTo(t, o, c, order.InTransit)
		id := c.User.ID()
		require.NoError(t, o.UpdateStatus(order.Delivered, &id, "", now))

		earning, err := settlement.Settle(o, c.Profile, true, now)

		require.NoError(t, err)
		assert.Nil(t, earning)
		assert.Equal(t, 0, c.Profile.TotalDeliveries())
		assert.True(t, c.Profile.TotalEarnings().IsZero())
	})
}

func TestSettlement_Failed(t *testing.T) {
	o := newOrder(t, 1200)
	c := newCandidate(t, "Tunde", "Bakare", rider.Active)
	deliverTo(t, o, c, order.Failed)

	earning, err := services.NewSettlement().Settle(o, c.Profile, false, now)

	require.NoError(t, err)
	assert.Nil(t, earning)
	assert.Equal(t, 1, c.Profile.TotalDeliveries())
	assert.Equal(t, 1, c.Profile.FailedDeliveries())
	assert.Equal(t, c.Profile.TotalDeliveries(), c.Profile.SuccessfulDeliveries()+c.Profile.FailedDeliveries())
	assert.True(t, c.Profile.TotalEarnings().IsZero())
}

func TestSettlement_IgnoresNonTerminalStatuses(t *testing.T) {
	o := newOrder(t, 1200)
	c := newCandidate(t, "Tunde", "Bakare", rider.Active)
	require.NoError(t, services.NewOrderDispatcher().Assign(o, c, nil, now))

	earning, err := services.NewSettlement().Settle(o, c.Profile, false, now)

	require.NoError(t, err)
	assert.Nil(t, earning)
	assert.Equal(t, 0, c.Profile.TotalDeliveries())
}

func TestSettlement_RejectsForeignProfile(t *testing.T) {
	o := newOrder(t, 1200)
	c := newCandidate(t, "Tunde", "Bakare", rider.Active)
	deliverTo(t, o, c, order.Failed)
	stranger, err := rider.NewProfile(kernel.NewUUID(), "X", "1", rider.Vehicle{})
	require.NoError(t, err)

	_, err = services.NewSettlement().Settle(o, stranger, false, now)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, 0, stranger.TotalDeliveries())
}
