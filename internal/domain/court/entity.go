package court

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyCourtName    = errors.New("court name cannot be empty")
	ErrCourtNameTooLong  = errors.New("court name is too long (max 100 characters)")
	ErrInvalidSize       = errors.New("invalid court size")
	ErrInvalidMaxPlayers = errors.New("max players must be positive")
	ErrCourtUnavailable  = errors.New("court is not available")
)

const (
	MaxCourtNameLength = 100
)

type Court struct {
	id         uuid.UUID
	name       string
	available  bool
	outdoor    bool
	size       Size
	maxPlayers int
}

func NewCourt(name string, available, outdoor bool, size Size, maxPlayers int) (*Court, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCourtName
	}
	if len(name) > MaxCourtNameLength {
		return nil, ErrCourtNameTooLong
	}
	if !size.IsValid() {
		return nil, ErrInvalidSize
	}
	if maxPlayers <= 0 {
		return nil, ErrInvalidMaxPlayers
	}

	return &Court{
		name:       name,
		available:  available,
		outdoor:    outdoor,
		size:       size,
		maxPlayers: maxPlayers,
	}, nil
}

func ReconstructCourt(id uuid.UUID, name string, available, outdoor bool, size Size, maxPlayers int) *Court {
	return &Court{
		id:         id,
		name:       name,
		available:  available,
		outdoor:    outdoor,
		size:       size,
		maxPlayers: maxPlayers,
	}
}

// WithID returns a copy carrying the storage-assigned id.
func (c *Court) WithID(id uuid.UUID) *Court {
	cp := *c
	cp.id = id
	return &cp
}

func (c *Court) CheckAvailable() error {
	if !c.available {
		return ErrCourtUnavailable
	}
	return nil
}

func (c *Court) ID() uuid.UUID   { return c.id }
func (c *Court) Name() string    { return c.name }
func (c *Court) Available() bool { return c.available }
func (c *Court) Outdoor() bool   { return c.outdoor }
func (c *Court) Size() Size      { return c.size }
func (c *Court) MaxPlayers() int { return c.maxPlayers }
