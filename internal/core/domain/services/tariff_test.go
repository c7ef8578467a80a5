package services_test

import (
	"math"
	"testing"

	"logistics/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{0, "500"},
		{1.0, "500"},
		{2.0, "500"},
		{2.004, "500.4"},
		{2.5, "550"},
		{5.0, "800"},
		{11.7, "1470"},
		{-3, "500"},
		{math.NaN(), "500"},
		{math.Inf(1), "500"},
		{math.Inf(-1), "500"},
	}

	for _, tt := range tests {
		got := services.DeliveryFee(tt.km)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "fee(%v) = %s, want %s", tt.km, got, tt.want)
	}
}

func TestRiderShare(t *testing.T) {
	assert.Equal(t, "840", services.RiderShare(decimal.NewFromInt(1200)).String())
	assert.Equal(t, "350", services.RiderShare(decimal.NewFromInt(500)).String())
	assert.Equal(t, "0.7", services.RiderShare(decimal.NewFromInt(1)).String())
	assert.Equal(t, "0.01", services.RiderShare(decimal.RequireFromString("0.015")).String())
}
