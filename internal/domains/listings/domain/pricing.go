package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultServiceFee is charged on every order unless configured otherwise.
var DefaultServiceFee = decimal.RequireFromString("4.00")

var ErrNegativeServiceFee = errors.New("service fee must be greater or equal to zero")

// PricingPolicy computes order totals.
type PricingPolicy struct {
	serviceFee decimal.Decimal
}

func NewPricingPolicy(serviceFee decimal.Decimal) (PricingPolicy, error) {
	if serviceFee.IsNegative() {
		return PricingPolicy{}, ErrNegativeServiceFee
	}
	return PricingPolicy{serviceFee: serviceFee}, nil
}

func (p PricingPolicy) ServiceFee() decimal.Decimal {
	return p.serviceFee
}

// TotalPrice returns unitPrice*quantity plus the flat service fee.
func (p PricingPolicy) TotalPrice(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Add(p.serviceFee)
}
