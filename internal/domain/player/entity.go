package player

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LoyaltyYears is how long a player must have been registered to earn the
// loyalty discount on individually funded bookings.
const LoyaltyYears = 2

// Player is the booking engine's view of a club member: contact details,
// registration date for the loyalty rule, and whether the account is active.
type Player struct {
	id           uuid.UUID
	name         string
	email        Email
	birthDate    time.Time
	registeredAt time.Time
	active       bool
}

func NewPlayer(name string, email Email, birthDate, registeredAt time.Time) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Player{
		name:         name,
		email:        email,
		birthDate:    birthDate,
		registeredAt: registeredAt,
		active:       true,
	}, nil
}

func ReconstructPlayer(id uuid.UUID, name string, email Email, birthDate, registeredAt time.Time, active bool) *Player {
	return &Player{
		id:           id,
		name:         name,
		email:        email,
		birthDate:    birthDate,
		registeredAt: registeredAt,
		active:       active,
	}
}

// LoyaltyEligible reports whether the registration age exceeds two years at now.
func (p *Player) LoyaltyEligible(now time.Time) bool {
	return now.After(p.registeredAt.AddDate(LoyaltyYears, 0, 0))
}

// Edit replaces the contact details. The registration date never changes.
func (p *Player) Edit(name string, email Email) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.name = name
	p.email = email
	return nil
}

// Deactivate closes the account. Closed accounts cannot book, cancel or open
// packs; deactivating twice is harmless.
func (p *Player) Deactivate() {
	p.active = false
}

// WithID returns a copy carrying the storage-assigned id.
func (p *Player) WithID(id uuid.UUID) *Player {
	cp := *p
	cp.id = id
	return &cp
}

func (p *Player) ID() uuid.UUID           { return p.id }
func (p *Player) Name() string            { return p.name }
func (p *Player) Email() Email            { return p.email }
func (p *Player) BirthDate() time.Time    { return p.birthDate }
func (p *Player) RegisteredAt() time.Time { return p.registeredAt }
func (p *Player) IsActive() bool          { return p.active }
