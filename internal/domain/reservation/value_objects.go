package reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	Duration60  = 60
	Duration90  = 90
	Duration120 = 120
)

// Duration is a booking length in minutes. Only 60, 90 and 120 exist.
type Duration struct {
	minutes int
}

func NewDuration(minutes int) (Duration, error) {
	switch minutes {
	case Duration60, Duration90, Duration120:
		return Duration{minutes: minutes}, nil
	default:
		return Duration{}, ErrInvalidDuration
	}
}

func (d Duration) Minutes() int {
	return d.minutes
}

func (d Duration) ToTimeDuration() time.Duration {
	return time.Duration(d.minutes) * time.Minute
}

type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Audience is the per-kind sub-record of a reservation: who plays and which
// discount the sub-record carries. Kind always agrees with the head counts.
type Audience struct {
	kind     AudienceKind
	adults   int
	children int
	discount decimal.Decimal
}

// ResolveAudience derives the kind from head counts: both present is a family
// session, only adults is adult, only children is child.
func ResolveAudience(adults, children int) (Audience, error) {
	if adults < 0 || children < 0 {
		return Audience{}, ErrInvalidAudience
	}

	var kind AudienceKind
	switch {
	case adults > 0 && children > 0:
		kind = AudienceFamily
	case adults > 0:
		kind = AudienceAdult
	case children > 0:
		kind = AudienceChild
	default:
		return Audience{}, ErrInvalidAudience
	}

	return Audience{kind: kind, adults: adults, children: children, discount: decimal.Zero}, nil
}

func ReconstructAudience(kind AudienceKind, adults, children int, discount decimal.Decimal) (Audience, error) {
	a, err := ResolveAudience(adults, children)
	if err != nil {
		return Audience{}, err
	}
	if a.kind != kind {
		return Audience{}, ErrInvalidAudience
	}
	a.discount = discount
	return a, nil
}

func (a Audience) withDiscount(d decimal.Decimal) Audience {
	a.discount = d
	return a
}

func (a Audience) Kind() AudienceKind        { return a.kind }
func (a Audience) Adults() int               { return a.adults }
func (a Audience) Children() int             { return a.children }
func (a Audience) Discount() decimal.Decimal { return a.discount }

func (a Audience) HeadCount() int {
	return a.adults + a.children
}
