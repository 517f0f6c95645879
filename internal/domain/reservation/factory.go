package reservation

import (
	"time"

	"court-booking/internal/domain/pack"
	"court-booking/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// BuildRequest selects funding as data. Pack must be set exactly when
// Funding is FundingSessionPack.
type BuildRequest struct {
	PlayerID        uuid.UUID
	CourtID         uuid.UUID
	Start           time.Time
	DurationMinutes int
	Adults          int
	Children        int
	Funding         Funding
	Pack            *pack.SessionPack
	LoyaltyEligible bool
}

// Create builds an unsaved reservation. For pack funding it consumes one
// session from req.Pack, and only after every other check has passed.
func (f *Factory) Create(req BuildRequest) (*Reservation, error) {
	duration, err := NewDuration(req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	audience, err := ResolveAudience(req.Adults, req.Children)
	if err != nil {
		return nil, err
	}

	params := Params{
		PlayerID: req.PlayerID,
		CourtID:  req.CourtID,
		Start:    req.Start,
		Duration: duration,
		Funding:  req.Funding,
		Audience: audience,
	}

	switch req.Funding {
	case FundingIndividual:
		if req.Pack != nil {
			return nil, ErrInvalidFundingRequest
		}
		params.Discount = IndividualDiscount(req.LoyaltyEligible)
		return NewReservation(f.PriceCalculator, params)

	case FundingSessionPack:
		if req.Pack == nil {
			return nil, ErrInvalidFundingRequest
		}
		if !req.Pack.BelongsTo(req.PlayerID) {
			return nil, pack.ErrPackNotOwned
		}
		if err := req.Pack.CheckUsable(f.Clock.Now()); err != nil {
			return nil, err
		}
		packID := req.Pack.ID()
		params.Discount = PackDiscount
		params.PackID = &packID

		// A rejected build must leave the pack untouched.
		if _, err := NewReservation(f.PriceCalculator, params); err != nil {
			return nil, err
		}
		session, err := req.Pack.Consume(f.Clock.Now())
		if err != nil {
			return nil, err
		}
		params.SessionNumber = session
		return NewReservation(f.PriceCalculator, params)

	default:
		return nil, ErrInvalidFundingRequest
	}
}

type RescheduleRequest struct {
	CourtID         uuid.UUID
	Start           time.Time
	DurationMinutes int
	Adults          int
	Children        int
	LoyaltyEligible bool
}

// Reschedule builds the replacement for an existing reservation. Funding, pack
// and session number carry over; no further session is consumed.
func (f *Factory) Reschedule(existing *Reservation, req RescheduleRequest) (*Reservation, error) {
	duration, err := NewDuration(req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	audience, err := ResolveAudience(req.Adults, req.Children)
	if err != nil {
		return nil, err
	}

	var discount decimal.Decimal
	switch existing.Funding() {
	case FundingSessionPack:
		discount = PackDiscount
	default:
		discount = IndividualDiscount(req.LoyaltyEligible)
	}

	return NewReservation(f.PriceCalculator, Params{
		PlayerID:      existing.PlayerID(),
		CourtID:       req.CourtID,
		Start:         req.Start,
		Duration:      duration,
		Discount:      discount,
		Funding:       existing.Funding(),
		Audience:      audience,
		PackID:        existing.PackID(),
		SessionNumber: existing.SessionNumber(),
	})
}
