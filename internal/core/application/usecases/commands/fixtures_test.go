package commands_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)

func managerActor(t *testing.T) identity.Actor {
	t.Helper()
	a, err := identity.NewActor(kernel.NewUUID(), identity.Manager)
	require.NoError(t, err)
	return a
}

func riderActor(t *testing.T, id kernel.UUID) identity.Actor {
	t.Helper()
	a, err := identity.NewActor(id, identity.Rider)
	require.NoError(t, err)
	return a
}

func createdOrder(t *testing.T, fee int64) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer("Ada Obi", "+2348012345678", "ada@example.com")
	require.NoError(t, err)
	pickup, err := order.NewAddress("12 Allen Ave, Ikeja", nil)
	require.NoError(t, err)
	delivery, err := order.NewAddress("3 Admiralty Way, Lekki", nil)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(fixedNow), customer, pickup, delivery,
		order.Package{}, decimal.NewFromInt(fee), nil, fixedNow)
	require.NoError(t, err)
	o.MarkPersisted(1)
	return o
}

func assignedOrder(t *testing.T, fee int64, riderID kernel.UUID) *order.Order {
	t.Helper()
	o := createdOrder(t, fee)
	require.NoError(t, o.Assign(riderID, nil, "assigned", fixedNow))
	o.MarkPersisted(2)
	return o
}

func advance(t *testing.T, o *order.Order, statuses ...order.Status) {
	t.Helper()
	for _, s := range statuses {
		require.NoError(t, o.UpdateStatus(s, nil, "", fixedNow))
	}
}

// activeRider returns a RIDER user with an ACTIVE, available profile.
func activeRider(t *testing.T) (*identity.User, *rider.Profile) {
	t.Helper()
	id := kernel.NewUUID()
	u, err := identity.NewUser(id, "tunde@riders.example", "+2348011111111", "Tunde", "Bakare", identity.Rider, fixedNow)
	require.NoError(t, err)
	p, err := rider.NewProfile(id, u.FullName(), u.Phone(), rider.Vehicle{})
	require.NoError(t, err)
	require.NoError(t, p.ChangeStatus(rider.Active))
	return u, p
}
