package pack

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionAllotment is the number of sessions a freshly opened pack holds.
const SessionAllotment = 5

var (
	ErrPackExhausted   = errors.New("session pack has no sessions left")
	ErrPackExpired     = errors.New("session pack has expired")
	ErrPackNotOwned    = errors.New("session pack belongs to another player")
	ErrInvalidValidity = errors.New("pack validity must be positive")
	ErrInvalidPack     = errors.New("invalid session pack state")
)

type State string

const (
	StateActive    State = "active"
	StateExhausted State = "exhausted"
	StateExpired   State = "expired"
)

func (s State) String() string {
	return string(s)
}

type SessionPack struct {
	id        uuid.UUID
	playerID  uuid.UUID
	remaining int
	openedAt  time.Time
	expiresAt time.Time
}

// Open creates a pack for the player's first opt-in to pack funding. The
// expiration is fixed here and never moves afterwards.
func Open(playerID uuid.UUID, now time.Time, validity time.Duration) (*SessionPack, error) {
	if validity <= 0 {
		return nil, ErrInvalidValidity
	}
	return &SessionPack{
		playerID:  playerID,
		remaining: SessionAllotment,
		openedAt:  now,
		expiresAt: now.Add(validity),
	}, nil
}

func Reconstruct(id, playerID uuid.UUID, remaining int, openedAt, expiresAt time.Time) (*SessionPack, error) {
	if remaining < 0 || remaining > SessionAllotment {
		return nil, ErrInvalidPack
	}
	if expiresAt.Before(openedAt) {
		return nil, ErrInvalidPack
	}
	return &SessionPack{
		id:        id,
		playerID:  playerID,
		remaining: remaining,
		openedAt:  openedAt,
		expiresAt: expiresAt,
	}, nil
}

func (p *SessionPack) State(now time.Time) State {
	switch {
	case p.remaining == 0:
		return StateExhausted
	case now.After(p.expiresAt):
		return StateExpired
	default:
		return StateActive
	}
}

// CheckUsable reports why the pack cannot fund a booking at now, if it cannot.
func (p *SessionPack) CheckUsable(now time.Time) error {
	switch p.State(now) {
	case StateExhausted:
		return ErrPackExhausted
	case StateExpired:
		return ErrPackExpired
	default:
		return nil
	}
}

// Consume takes exactly one session and returns its 1-based number.
// Calling it twice takes two sessions.
func (p *SessionPack) Consume(now time.Time) (int, error) {
	if err := p.CheckUsable(now); err != nil {
		return 0, err
	}
	session := SessionAllotment - p.remaining + 1
	p.remaining--
	return session, nil
}

func (p *SessionPack) BelongsTo(playerID uuid.UUID) bool {
	return p.playerID == playerID
}

// WithID returns a copy carrying the storage-assigned id.
func (p *SessionPack) WithID(id uuid.UUID) *SessionPack {
	cp := *p
	cp.id = id
	return &cp
}

func (p *SessionPack) ID() uuid.UUID        { return p.id }
func (p *SessionPack) PlayerID() uuid.UUID  { return p.playerID }
func (p *SessionPack) Remaining() int       { return p.remaining }
func (p *SessionPack) OpenedAt() time.Time  { return p.openedAt }
func (p *SessionPack) ExpiresAt() time.Time { return p.expiresAt }
