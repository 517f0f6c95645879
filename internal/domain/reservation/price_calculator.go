package reservation

import (
	"github.com/shopspring/decimal"
)

var (
	LoyaltyDiscount = decimal.RequireFromString("0.10")
	PackDiscount    = decimal.RequireFromString("0.05")
)

type PriceCalculator interface {
	BasePrice(d Duration) (Money, error)
}

// TablePriceCalculator prices a booking by looking its length up in a fixed table.
type TablePriceCalculator struct {
	table map[int]decimal.Decimal
}

func NewTablePriceCalculator() *TablePriceCalculator {
	return &TablePriceCalculator{
		table: map[int]decimal.Decimal{
			Duration60:  decimal.NewFromInt(20),
			Duration90:  decimal.NewFromInt(30),
			Duration120: decimal.NewFromInt(40),
		},
	}
}

func (pc *TablePriceCalculator) BasePrice(d Duration) (Money, error) {
	price, ok := pc.table[d.Minutes()]
	if !ok {
		return Money{}, ErrInvalidDuration
	}
	return NewMoney(price), nil
}

// BasePriceFor is the table lookup on a raw minute count.
func BasePriceFor(minutes int) (Money, error) {
	d, err := NewDuration(minutes)
	if err != nil {
		return Money{}, err
	}
	return NewTablePriceCalculator().BasePrice(d)
}

// ApplyDiscount returns base * (1 - discount). Discount must lie in [0, 1].
func ApplyDiscount(base Money, discount decimal.Decimal) (Money, error) {
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(1)) {
		return Money{}, ErrInvalidDiscount
	}
	return NewMoney(base.Amount().Mul(decimal.NewFromInt(1).Sub(discount))), nil
}

// IndividualDiscount is the loyalty discount when the player qualifies, else zero.
func IndividualDiscount(loyaltyEligible bool) decimal.Decimal {
	if loyaltyEligible {
		return LoyaltyDiscount
	}
	return decimal.Zero
}
