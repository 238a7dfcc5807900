package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPricingPolicy_TotalPrice(t *testing.T) {
	policy, err := NewPricingPolicy(DefaultServiceFee)
	require.NoError(t, err)

	cases := []struct {
		price    string
		quantity int
		want     string
	}{
		{"10", 3, "34.00"},
		{"15.50", 2, "35.00"},
		{"0", 0, "4.00"},
	}
	for _, tc := range cases {
		got := policy.TotalPrice(decimal.RequireFromString(tc.price), tc.quantity)
		require.Equal(t, tc.want, got.StringFixed(2))
	}
}

func TestNewPricingPolicy_RejectsNegativeFee(t *testing.T) {
	_, err := NewPricingPolicy(decimal.RequireFromString("-1"))
	require.ErrorIs(t, err, ErrNegativeServiceFee)
}
