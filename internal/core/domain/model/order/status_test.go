package order_test

import (
	"slices"
	"testing"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Created, order.Assigned, order.Accepted, order.Picked,
		order.InTransit, order.Delivered, order.Failed, order.Cancelled,
	}
}

func TestStatus_ValidateTransition_Table(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Created:   {order.Assigned, order.Cancelled},
		order.Assigned:  {order.Accepted, order.Cancelled},
		order.Accepted:  {order.Picked, order.Failed},
		order.Picked:    {order.InTransit, order.Failed},
		order.InTransit: {order.Delivered, order.Failed},
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			want := slices.Contains(allowed[from], to)
			err := from.ValidateTransition(to)
			if want {
				require.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			require.Error(t, err, "%s -> %s", from, to)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), from.String()+" -> "+to.String())
		}
	}
}

func TestStatus_TerminalStatesAllowNothing(t *testing.T) {
	for _, s := range []order.Status{order.Delivered, order.Failed, order.Cancelled} {
		assert.True(t, s.IsTerminal())
		assert.Empty(t, s.AllowedNext())
		for _, to := range allStatuses() {
			err := s.ValidateTransition(to)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "terminal")
		}
	}
}

func TestStatus_IsActive(t *testing.T) {
	active := []order.Status{order.Assigned, order.Accepted, order.Picked, order.InTransit}
	for _, s := range allStatuses() {
		assert.Equal(t, slices.Contains(active, s), s.IsActive(), s.String())
	}
}

func TestStatus_RejectsUnknownTarget(t *testing.T) {
	err := order.Created.ValidateTransition(order.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses() {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	in, err := order.ParseStatus("in_transit")
	require.NoError(t, err)
	assert.Equal(t, order.InTransit, in)

	_, err = order.ParseStatus("LOST")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = order.ParseStatus("UNKNOWN")
	require.Error(t, err)
}

func TestParsePaymentStatus(t *testing.T) {
	ps, err := order.ParsePaymentStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, ps)
	assert.Equal(t, "PAID", ps.String())

	_, err = order.ParsePaymentStatus("CHARGEBACK")
	require.Error(t, err)
}
