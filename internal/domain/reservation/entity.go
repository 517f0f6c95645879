package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDuration       = errors.New("duration must be 60, 90 or 120 minutes")
	ErrInvalidAudience       = errors.New("reservation needs at least one adult or child")
	ErrInvalidDiscount       = errors.New("discount must be between 0 and 1")
	ErrInvalidFundingRequest = errors.New("funding selection does not match the supplied pack")
	ErrPriceMismatch         = errors.New("stored price does not match duration and discount")
)

type Reservation struct {
	id            uuid.UUID
	playerID      uuid.UUID
	courtID       uuid.UUID
	start         time.Time
	duration      Duration
	price         Money
	discount      decimal.Decimal
	funding       Funding
	audience      Audience
	packID        *uuid.UUID
	sessionNumber int
}

type Params struct {
	PlayerID      uuid.UUID
	CourtID       uuid.UUID
	Start         time.Time
	Duration      Duration
	Discount      decimal.Decimal
	Funding       Funding
	Audience      Audience
	PackID        *uuid.UUID
	SessionNumber int
}

// NewReservation builds an unsaved reservation; storage assigns the id.
// The price is always derived from the duration and the discount.
func NewReservation(pc PriceCalculator, p Params) (*Reservation, error) {
	if !p.Funding.IsValid() {
		return nil, ErrInvalidFundingRequest
	}
	if (p.Funding == FundingSessionPack) != (p.PackID != nil) {
		return nil, ErrInvalidFundingRequest
	}

	base, err := pc.BasePrice(p.Duration)
	if err != nil {
		return nil, err
	}
	price, err := ApplyDiscount(base, p.Discount)
	if err != nil {
		return nil, err
	}

	return &Reservation{
		playerID:      p.PlayerID,
		courtID:       p.CourtID,
		start:         p.Start,
		duration:      p.Duration,
		price:         price,
		discount:      p.Discount,
		funding:       p.Funding,
		audience:      p.Audience.withDiscount(p.Discount),
		packID:        p.PackID,
		sessionNumber: p.SessionNumber,
	}, nil
}

// ReconstructReservation rebuilds a stored reservation and rejects rows whose
// price no longer matches the table.
func ReconstructReservation(id uuid.UUID, price Money, p Params) (*Reservation, error) {
	r, err := NewReservation(NewTablePriceCalculator(), p)
	if err != nil {
		return nil, err
	}
	if !r.price.Equal(price) {
		return nil, ErrPriceMismatch
	}
	r.id = id
	return r, nil
}

// WithID returns a copy carrying the storage-assigned id.
func (r *Reservation) WithID(id uuid.UUID) *Reservation {
	cp := *r
	cp.id = id
	return &cp
}

func (r *Reservation) End() time.Time {
	return r.start.Add(r.duration.ToTimeDuration())
}

func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.start.Before(end) && start.Before(r.End())
}

func (r *Reservation) IsPackBacked() bool {
	return r.funding == FundingSessionPack
}

func (r *Reservation) ID() uuid.UUID             { return r.id }
func (r *Reservation) PlayerID() uuid.UUID       { return r.playerID }
func (r *Reservation) CourtID() uuid.UUID        { return r.courtID }
func (r *Reservation) Start() time.Time          { return r.start }
func (r *Reservation) Duration() Duration        { return r.duration }
func (r *Reservation) Price() Money              { return r.price }
func (r *Reservation) Discount() decimal.Decimal { return r.discount }
func (r *Reservation) Funding() Funding          { return r.funding }
func (r *Reservation) Audience() Audience        { return r.audience }
func (r *Reservation) PackID() *uuid.UUID        { return r.packID }
func (r *Reservation) SessionNumber() int        { return r.sessionNumber }
