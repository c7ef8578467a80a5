package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, fee int64) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer("Chidi Okafor", "+2348030000000", "")
	require.NoError(t, err)
	addr, err := order.NewAddress("5 Broad St, Lagos Island", nil)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.GenerateNumber(now), customer, addr, addr,
		order.Package{}, decimal.NewFromInt(fee), nil, now)
	require.NoError(t, err)
	return o
}

func newCandidate(t *testing.T, first, last string, status rider.Status) services.Candidate {
	t.Helper()
	id := kernel.NewUUID()
	u, err := identity.NewUser(id, first+"@riders.example", "+2348011111111", first, last, identity.Rider, now)
	require.NoError(t, err)
	p, err := rider.NewProfile(id, u.FullName(), u.Phone(), rider.Vehicle{})
	require.NoError(t, err)
	require.NoError(t, p.ChangeStatus(status))
	return services.Candidate{User: u, Profile: p}
}

func TestOrderDispatcher_Assign(t *testing.T) {
	dispatcher := services.NewOrderDispatcher()
	manager := kernel.NewUUID()

	t.Run("assigns an eligible rider", func(t *testing.T) {
		o := newOrder(t, 1000)
		c := newCandidate(t, "Tunde", "Bakare", rider.Active)

		require.NoError(t, dispatcher.Assign(o, c, &manager, now))

		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.IsAssignedTo(c.User.ID()))
		assert.True(t, c.Profile.IsAvailable(), "availability is rider-managed")
		changes := o.PendingChanges()
		assert.Equal(t, "Assigned to Tunde Bakare", changes[len(changes)-1].Notes)
	})

	t.Run("order state is checked first", func(t *testing.T) {
		o := newOrder(t, 1000)
		require.NoError(t, dispatcher.Assign(o, newCandidate(t, "A", "A", rider.Active), nil, now))

		err := dispatcher.Assign(o, newCandidate(t, "B", "B", rider.Suspended), nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "only CREATED orders can be assigned")
	})

	ineligible := []struct {
		name    string
		build   func() services.Candidate
		message string
	}{
		{"pending profile", func() services.Candidate { return newCandidate(t, "P", "P", rider.Pending) }, "not active"},
		{"suspended profile", func() services.Candidate { return newCandidate(t, "S", "S", rider.Suspended) }, "not active"},
		{"unavailable", func() services.Candidate {
			c := newCandidate(t, "U", "U", rider.Active)
			c.Profile.SetAvailability(false)
			return c
		}, "not available"},
		{"no profile", func() services.Candidate {
			c := newCandidate(t, "N", "N", rider.Active)
			c.Profile = nil
			return c
		}, "no rider profile"},
		{"not a rider", func() services.Candidate {
			u, _ := identity.NewUser(kernel.NewUUID(), "m@ops.example", "+2348022222222", "M", "M", identity.Manager, now)
			return services.Candidate{User: u}
		}, "not RIDER"},
	}
	for _, tt := range ineligible {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrder(t, 1000)

			err := dispatcher.Assign(o, tt.build(), nil, now)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, order.Created, o.Status())
			assert.Nil(t, o.Rider())
		})
	}
}

func TestOrderDispatcher_Reassign(t *testing.T) {
	dispatcher := services.NewOrderDispatcher()

	t.Run("logs previous and new rider", func(t *testing.T) {
		o := newOrder(t, 1000)
		first := newCandidate(t, "Tunde", "Bakare", rider.Active)
		second := newCandidate(t, "Ngozi", "Eze", rider.Active)
		require.NoError(t, dispatcher.Assign(o, first, nil, now))

		require.NoError(t, dispatcher.Reassign(o, &first, second, nil, now.Add(time.Minute)))

		assert.True(t, o.IsAssignedTo(second.User.ID()))
		changes := o.PendingChanges()
		assert.Equal(t, "Reassigned from Tunde Bakare to Ngozi Eze", changes[len(changes)-1].Notes)
	})

	t.Run("unassigned order", func(t *testing.T) {
		o := newOrder(t, 1000)
		c := newCandidate(t, "Ngozi", "Eze", rider.Active)

		require.NoError(t, dispatcher.Reassign(o, nil, c, nil, now))

		changes := o.PendingChanges()
		assert.Equal(t, "Reassigned from Unassigned to Ngozi Eze", changes[len(changes)-1].Notes)
	})

	t.Run("terminal order", func(t *testing.T) {
		o := newOrder(t, 1000)
		require.NoError(t, o.Cancel(nil, "", now))

		err := dispatcher.Reassign(o, nil, newCandidate(t, "A", "B", rider.Active), nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("ineligible new rider keeps old one", func(t *testing.T) {
		o := newOrder(t, 1000)
		first := newCandidate(t, "A", "A", rider.Active)
		require.NoError(t, dispatcher.Assign(o, first, nil, now))

		err := dispatcher.Reassign(o, &first, newCandidate(t, "B", "B", rider.Inactive), nil, now)

		require.Error(t, err)
		assert.True(t, o.IsAssignedTo(first.User.ID()))
	})
}
