//go:build unit || integration

package builder

import (
	"time"

	"court-booking/internal/domain/player"

	"github.com/google/uuid"
)

type PlayerBuilder struct {
	Name         string
	Email        string
	BirthDate    time.Time
	RegisteredAt time.Time
	Active       bool
}

func NewPlayerBuilder() *PlayerBuilder {
	return &PlayerBuilder{
		Name:         "Lucia Romero",
		Email:        "lucia@example.com",
		BirthDate:    time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		RegisteredAt: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
		Active:       true,
	}
}

func (b *PlayerBuilder) With(mutate func(*PlayerBuilder)) *PlayerBuilder {
	mutate(b)
	return b
}

func (b *PlayerBuilder) BuildDomain() (*player.Player, error) {
	email, err := player.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}
	p, err := player.NewPlayer(b.Name, email, b.BirthDate, b.RegisteredAt)
	if err != nil {
		return nil, err
	}
	if !b.Active {
		return player.ReconstructPlayer(p.ID(), p.Name(), p.Email(), p.BirthDate(), p.RegisteredAt(), false), nil
	}
	return p, nil
}

// MustBuildDomain panics on invalid input; for fixtures only.
func (b *PlayerBuilder) MustBuildDomain() *player.Player {
	p, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return p
}

// Fluent builder methods
func (b *PlayerBuilder) WithEmail(email string) *PlayerBuilder {
	b.Email = email
	return b
}

func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.Name = name
	return b
}

func (b *PlayerBuilder) RegisteredOn(t time.Time) *PlayerBuilder {
	b.RegisteredAt = t
	return b
}

func (b *PlayerBuilder) AsInactive() *PlayerBuilder {
	b.Active = false
	return b
}

// UniqueEmail avoids duplicate-key clashes when several fixtures share a store.
func (b *PlayerBuilder) UniqueEmail() *PlayerBuilder {
	b.Email = "player-" + uuid.NewString()[:8] + "@example.com"
	return b
}
