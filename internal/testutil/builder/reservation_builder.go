//go:build unit || integration

package builder

import (
	"time"

	"court-booking/internal/domain/pack"
	"court-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

// FixedNow is the reference instant fixtures are built around.
var FixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type ReservationBuilder struct {
	PlayerID        uuid.UUID
	CourtID         uuid.UUID
	Start           time.Time
	DurationMinutes int
	Adults          int
	Children        int
	Funding         reservation.Funding
	Pack            *pack.SessionPack
	LoyaltyEligible bool
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		PlayerID:        uuid.New(),
		CourtID:         uuid.New(),
		Start:           FixedNow.Add(48 * time.Hour),
		DurationMinutes: 60,
		Adults:          4,
		Children:        0,
		Funding:         reservation.FundingIndividual,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildRequest() reservation.BuildRequest {
	return reservation.BuildRequest{
		PlayerID:        b.PlayerID,
		CourtID:         b.CourtID,
		Start:           b.Start,
		DurationMinutes: b.DurationMinutes,
		Adults:          b.Adults,
		Children:        b.Children,
		Funding:         b.Funding,
		Pack:            b.Pack,
		LoyaltyEligible: b.LoyaltyEligible,
	}
}

func (b *ReservationBuilder) BuildDomain(f *reservation.Factory) (*reservation.Reservation, error) {
	return f.Create(b.BuildRequest())
}

// Fluent builder methods
func (b *ReservationBuilder) WithDuration(minutes int) *ReservationBuilder {
	b.DurationMinutes = minutes
	return b
}

func (b *ReservationBuilder) WithAudience(adults, children int) *ReservationBuilder {
	b.Adults = adults
	b.Children = children
	return b
}

func (b *ReservationBuilder) WithStart(start time.Time) *ReservationBuilder {
	b.Start = start
	return b
}

func (b *ReservationBuilder) WithPack(p *pack.SessionPack) *ReservationBuilder {
	b.Funding = reservation.FundingSessionPack
	b.Pack = p
	b.PlayerID = p.PlayerID()
	return b
}

func (b *ReservationBuilder) AsLoyal() *ReservationBuilder {
	b.LoyaltyEligible = true
	return b
}

type PackBuilder struct {
	ID        uuid.UUID
	PlayerID  uuid.UUID
	Remaining int
	OpenedAt  time.Time
	Validity  time.Duration
}

func NewPackBuilder() *PackBuilder {
	return &PackBuilder{
		ID:        uuid.New(),
		PlayerID:  uuid.New(),
		Remaining: pack.SessionAllotment,
		OpenedAt:  FixedNow.Add(-24 * time.Hour),
		Validity:  90 * 24 * time.Hour,
	}
}

func (b *PackBuilder) With(mutate func(*PackBuilder)) *PackBuilder {
	mutate(b)
	return b
}

func (b *PackBuilder) BuildDomain() (*pack.SessionPack, error) {
	return pack.Reconstruct(b.ID, b.PlayerID, b.Remaining, b.OpenedAt, b.OpenedAt.Add(b.Validity))
}

func (b *PackBuilder) MustBuildDomain() *pack.SessionPack {
	p, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return p
}

func (b *PackBuilder) WithRemaining(n int) *PackBuilder {
	b.Remaining = n
	return b
}

func (b *PackBuilder) ForPlayer(id uuid.UUID) *PackBuilder {
	b.PlayerID = id
	return b
}

// ExpiredBy makes the pack lapse d before FixedNow.
func (b *PackBuilder) ExpiredBy(d time.Duration) *PackBuilder {
	b.OpenedAt = FixedNow.Add(-b.Validity - d)
	return b
}
