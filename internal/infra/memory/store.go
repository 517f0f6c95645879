package memory

import (
	"context"
	"maps"
	"sync"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/pack"
	"court-booking/internal/domain/player"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type state struct {
	players      map[uuid.UUID]player.Player
	courts       map[uuid.UUID]court.Court
	materials    map[uuid.UUID]court.Material
	reservations map[uuid.UUID]reservation.Reservation
	packs        map[uuid.UUID]pack.SessionPack
}

func newState() *state {
	return &state{
		players:      map[uuid.UUID]player.Player{},
		courts:       map[uuid.UUID]court.Court{},
		materials:    map[uuid.UUID]court.Material{},
		reservations: map[uuid.UUID]reservation.Reservation{},
		packs:        map[uuid.UUID]pack.SessionPack{},
	}
}

func (s *state) clone() *state {
	return &state{
		players:      maps.Clone(s.players),
		courts:       maps.Clone(s.courts),
		materials:    maps.Clone(s.materials),
		reservations: maps.Clone(s.reservations),
		packs:        maps.Clone(s.packs),
	}
}

// Store keeps entities by value, so callers only ever hold copies. Units of
// work run one at a time against a private clone that replaces the live
// state on success and is dropped on error.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state

	reads *repoSet
}

func NewStore() *Store {
	s := &Store{st: newState()}
	s.reads = newRepoSet(&storeAccess{store: s})
	return s
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx, newRepoSet(&txAccess{st: work})); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// Reads must not be used from inside Within; its writes wait for the
// running unit of work.
func (s *Store) Reads() shared.Repositories {
	return s.reads
}

type access interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

type storeAccess struct {
	store *Store
}

func (a *storeAccess) read(fn func(st *state)) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	fn(a.store.st)
}

func (a *storeAccess) write(fn func(st *state) error) error {
	a.store.txMu.Lock()
	defer a.store.txMu.Unlock()
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(a.store.st)
}

// txAccess is only reachable from the goroutine holding txMu.
type txAccess struct {
	st *state
}

func (a *txAccess) read(fn func(st *state)) {
	fn(a.st)
}

func (a *txAccess) write(fn func(st *state) error) error {
	return fn(a.st)
}

type repoSet struct {
	players      *PlayerRepository
	courts       *CourtRepository
	materials    *MaterialRepository
	reservations *ReservationRepository
	sessionPacks *SessionPackRepository
}

func newRepoSet(acc access) *repoSet {
	return &repoSet{
		players:      &PlayerRepository{acc: acc},
		courts:       &CourtRepository{acc: acc},
		materials:    &MaterialRepository{acc: acc},
		reservations: &ReservationRepository{acc: acc},
		sessionPacks: &SessionPackRepository{acc: acc},
	}
}

func (t *repoSet) Players() shared.PlayerRepository           { return t.players }
func (t *repoSet) Courts() shared.CourtRepository             { return t.courts }
func (t *repoSet) Materials() shared.MaterialRepository       { return t.materials }
func (t *repoSet) Reservations() shared.ReservationRepository { return t.reservations }
func (t *repoSet) SessionPacks() shared.SessionPackRepository { return t.sessionPacks }
