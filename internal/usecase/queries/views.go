package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID              uuid.UUID  `json:"id"`
	PlayerID        uuid.UUID  `json:"player_id"`
	CourtID         uuid.UUID  `json:"court_id"`
	Start           time.Time  `json:"start"`
	End             time.Time  `json:"end"`
	DurationMinutes int        `json:"duration_minutes"`
	PriceAmount     string     `json:"price"`
	DiscountRate    string     `json:"discount"`
	FundingKind     string     `json:"funding"`
	AudienceKind    string     `json:"audience"`
	Adults          int        `json:"adults"`
	Children        int        `json:"children"`
	PackID          *uuid.UUID `json:"pack_id,omitempty"`
	SessionNumber   int        `json:"session_number,omitempty"`
}

type CourtView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Available  bool      `json:"available"`
	Outdoor    bool      `json:"outdoor"`
	SizeName   string    `json:"size"`
	MaxPlayers int       `json:"max_players"`
}

type MaterialView struct {
	ID             uuid.UUID  `json:"id"`
	MaterialType   string     `json:"type"`
	OutdoorCapable bool       `json:"outdoor_capable"`
	StatusName     string     `json:"status"`
	CourtID        *uuid.UUID `json:"court_id,omitempty"`
}

type SessionPackView struct {
	ID        uuid.UUID `json:"id"`
	PlayerID  uuid.UUID `json:"player_id"`
	Remaining int       `json:"remaining"`
	OpenedAt  time.Time `json:"opened_at"`
	ExpiresAt time.Time `json:"expires_at"`
	StateName string    `json:"state"`
}

type PlayerView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	EmailAddress string    `json:"email"`
	BirthDate    time.Time `json:"birth_date"`
	RegisteredAt time.Time `json:"registered_at"`
	Active       bool      `json:"active"`
}
