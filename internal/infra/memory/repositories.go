package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/pack"
	"court-booking/internal/domain/player"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra"

	"github.com/google/uuid"
)

type PlayerRepository struct {
	acc access
}

func (r *PlayerRepository) FindByID(_ context.Context, id uuid.UUID) (*player.Player, error) {
	var (
		p  player.Player
		ok bool
	)
	r.acc.read(func(st *state) { p, ok = st.players[id] })
	if !ok {
		return nil, infra.NotFound("player not found")
	}
	return &p, nil
}

func (r *PlayerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*player.Player, error) {
	return r.FindByID(ctx, id)
}

func (r *PlayerRepository) FindByEmail(_ context.Context, email string) (*player.Player, error) {
	var found *player.Player
	r.acc.read(func(st *state) {
		for _, p := range st.players {
			if p.Email().Value() == email {
				cp := p
				found = &cp
				return
			}
		}
	})
	if found == nil {
		return nil, infra.NotFound("player not found")
	}
	return found, nil
}

func (r *PlayerRepository) Create(_ context.Context, p *player.Player) (uuid.UUID, error) {
	id := uuid.New()
	err := r.acc.write(func(st *state) error {
		for _, existing := range st.players {
			if existing.Email().Value() == p.Email().Value() {
				return infra.NewRepoErr(infra.KindDuplicateKey, "player email already exists")
			}
		}
		st.players[id] = *p.WithID(id)
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PlayerRepository) ListActive(_ context.Context) ([]*player.Player, error) {
	var players []*player.Player
	r.acc.read(func(st *state) {
		for _, p := range st.players {
			if p.IsActive() {
				cp := p
				players = append(players, &cp)
			}
		}
	})
	slices.SortFunc(players, func(a, b *player.Player) int {
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return players, nil
}

// Save keeps the stored birth and registration dates, like the SQL update.
func (r *PlayerRepository) Save(_ context.Context, p *player.Player) error {
	return r.acc.write(func(st *state) error {
		stored, ok := st.players[p.ID()]
		if !ok {
			return infra.NotFound("player not found")
		}
		for id, existing := range st.players {
			if id != p.ID() && existing.Email().Value() == p.Email().Value() {
				return infra.NewRepoErr(infra.KindDuplicateKey, "player email already exists")
			}
		}
		st.players[p.ID()] = *player.ReconstructPlayer(p.ID(), p.Name(), p.Email(), stored.BirthDate(), stored.RegisteredAt(), p.IsActive())
		return nil
	})
}

type CourtRepository struct {
	acc access
}

func (r *CourtRepository) FindByID(_ context.Context, id uuid.UUID) (*court.Court, error) {
	var (
		c  court.Court
		ok bool
	)
	r.acc.read(func(st *state) { c, ok = st.courts[id] })
	if !ok {
		return nil, infra.NotFound("court not found")
	}
	return &c, nil
}

// Units of work are already serialized, so no extra locking is needed.
func (r *CourtRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	return r.FindByID(ctx, id)
}

func (r *CourtRepository) ListAvailable(_ context.Context, size *court.Size) ([]*court.Court, error) {
	return r.list(func(c court.Court) bool {
		return c.Available() && (size == nil || c.Size() == *size)
	}), nil
}

func (r *CourtRepository) ListUnavailable(_ context.Context) ([]*court.Court, error) {
	return r.list(func(c court.Court) bool { return !c.Available() }), nil
}

func (r *CourtRepository) ListAll(_ context.Context) ([]*court.Court, error) {
	return r.list(func(court.Court) bool { return true }), nil
}

func (r *CourtRepository) list(keep func(c court.Court) bool) []*court.Court {
	var courts []*court.Court
	r.acc.read(func(st *state) {
		for _, c := range st.courts {
			if keep(c) {
				cp := c
				courts = append(courts, &cp)
			}
		}
	})
	slices.SortFunc(courts, func(a, b *court.Court) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return courts
}

func (r *CourtRepository) Create(_ context.Context, c *court.Court) (uuid.UUID, error) {
	id := uuid.New()
	err := r.acc.write(func(st *state) error {
		for _, existing := range st.courts {
			if existing.Name() == c.Name() {
				return infra.NewRepoErr(infra.KindDuplicateKey, "court name already exists")
			}
		}
		st.courts[id] = *c.WithID(id)
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

type MaterialRepository struct {
	acc access
}

func (r *MaterialRepository) FindByID(_ context.Context, id uuid.UUID) (*court.Material, error) {
	var (
		m  court.Material
		ok bool
	)
	r.acc.read(func(st *state) { m, ok = st.materials[id] })
	if !ok {
		return nil, infra.NotFound("material not found")
	}
	return &m, nil
}

func (r *MaterialRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*court.Material, error) {
	return r.FindByID(ctx, id)
}

func (r *MaterialRepository) CountByTypeForCourt(_ context.Context, courtID uuid.UUID, t court.MaterialType) (int, error) {
	n := 0
	r.acc.read(func(st *state) {
		for _, m := range st.materials {
			if m.Type() == t && m.CourtID() != nil && *m.CourtID() == courtID {
				n++
			}
		}
	})
	return n, nil
}

func (r *MaterialRepository) ListByCourt(_ context.Context, courtID uuid.UUID) ([]*court.Material, error) {
	return r.filter(func(m *court.Material) bool {
		return m.CourtID() != nil && *m.CourtID() == courtID
	}), nil
}

func (r *MaterialRepository) ListUnassigned(_ context.Context) ([]*court.Material, error) {
	return r.filter(func(m *court.Material) bool {
		return m.CourtID() == nil && m.Status() == court.MaterialAvailable
	}), nil
}

// filter returns matching copies ordered by type, then id.
func (r *MaterialRepository) filter(keep func(*court.Material) bool) []*court.Material {
	var materials []*court.Material
	r.acc.read(func(st *state) {
		for _, m := range st.materials {
			cp := m
			if keep(&cp) {
				materials = append(materials, &cp)
			}
		}
	})
	slices.SortFunc(materials, func(a, b *court.Material) int {
		if c := strings.Compare(a.Type().String(), b.Type().String()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return materials
}

func (r *MaterialRepository) Create(_ context.Context, m *court.Material) (uuid.UUID, error) {
	id := uuid.New()
	err := r.acc.write(func(st *state) error {
		if m.CourtID() != nil {
			if _, ok := st.courts[*m.CourtID()]; !ok {
				return infra.NewRepoErr(infra.KindForeignKeyViolated, "referenced row does not exist")
			}
		}
		st.materials[id] = *m.WithID(id)
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *MaterialRepository) Save(_ context.Context, m *court.Material) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.materials[m.ID()]; !ok {
			return infra.NotFound("material not found")
		}
		if m.CourtID() != nil {
			if _, ok := st.courts[*m.CourtID()]; !ok {
				return infra.NewRepoErr(infra.KindForeignKeyViolated, "referenced row does not exist")
			}
		}
		st.materials[m.ID()] = *m
		return nil
	})
}

type ReservationRepository struct {
	acc access
}

func (r *ReservationRepository) Insert(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	id := uuid.New()
	err := r.acc.write(func(st *state) error {
		if _, ok := st.players[res.PlayerID()]; !ok {
			return infra.NewRepoErr(infra.KindForeignKeyViolated, "referenced row does not exist")
		}
		if _, ok := st.courts[res.CourtID()]; !ok {
			return infra.NewRepoErr(infra.KindForeignKeyViolated, "referenced row does not exist")
		}
		if res.PackID() != nil {
			if _, ok := st.packs[*res.PackID()]; !ok {
				return infra.NewRepoErr(infra.KindForeignKeyViolated, "referenced row does not exist")
			}
		}
		st.reservations[id] = *res.WithID(id)
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *ReservationRepository) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		res reservation.Reservation
		ok  bool
	)
	r.acc.read(func(st *state) { res, ok = st.reservations[id] })
	if !ok {
		return nil, infra.NotFound("reservation not found")
	}
	return &res, nil
}

func (r *ReservationRepository) FindByPlayerCourtTime(_ context.Context, playerID, courtID uuid.UUID, start time.Time) (*reservation.Reservation, error) {
	matches := r.filter(func(res *reservation.Reservation) bool {
		return res.PlayerID() == playerID && res.CourtID() == courtID && res.Start().Equal(start)
	})
	if len(matches) == 0 {
		return nil, infra.NotFound("reservation not found")
	}
	return matches[0], nil
}

func (r *ReservationRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.reservations[id]; !ok {
			return infra.NotFound("reservation not found")
		}
		delete(st.reservations, id)
		return nil
	})
}

func (r *ReservationRepository) ListFutureFrom(_ context.Context, now time.Time) ([]*reservation.Reservation, error) {
	return r.filter(func(res *reservation.Reservation) bool {
		return res.Start().After(now)
	}), nil
}

func (r *ReservationRepository) ListByCourtBetween(_ context.Context, courtID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error) {
	return r.filter(func(res *reservation.Reservation) bool {
		return res.CourtID() == courtID && !res.Start().Before(from) && res.Start().Before(to)
	}), nil
}

func (r *ReservationRepository) FindOverlapping(_ context.Context, courtID uuid.UUID, start, end time.Time) ([]*reservation.Reservation, error) {
	return r.filter(func(res *reservation.Reservation) bool {
		return res.CourtID() == courtID && res.Overlaps(start, end)
	}), nil
}

// filter returns matching copies ordered by start, then id.
func (r *ReservationRepository) filter(keep func(*reservation.Reservation) bool) []*reservation.Reservation {
	var out []*reservation.Reservation
	r.acc.read(func(st *state) {
		for _, res := range st.reservations {
			cp := res
			if keep(&cp) {
				out = append(out, &cp)
			}
		}
	})
	slices.SortFunc(out, func(a, b *reservation.Reservation) int {
		if c := a.Start().Compare(b.Start()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return out
}

type SessionPackRepository struct {
	acc access
}

func (r *SessionPackRepository) FindByID(_ context.Context, id uuid.UUID) (*pack.SessionPack, error) {
	var (
		p  pack.SessionPack
		ok bool
	)
	r.acc.read(func(st *state) { p, ok = st.packs[id] })
	if !ok {
		return nil, infra.NotFound("session pack not found")
	}
	return &p, nil
}

func (r *SessionPackRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*pack.SessionPack, error) {
	return r.FindByID(ctx, id)
}

func (r *SessionPackRepository) ListByPlayer(_ context.Context, playerID uuid.UUID) ([]*pack.SessionPack, error) {
	var packs []*pack.SessionPack
	r.acc.read(func(st *state) {
		for _, p := range st.packs {
			if p.PlayerID() == playerID {
				cp := p
				packs = append(packs, &cp)
			}
		}
	})
	slices.SortFunc(packs, func(a, b *pack.SessionPack) int {
		if c := a.OpenedAt().Compare(b.OpenedAt()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return packs, nil
}

func (r *SessionPackRepository) Create(_ context.Context, p *pack.SessionPack) (uuid.UUID, error) {
	id := uuid.New()
	err := r.acc.write(func(st *state) error {
		if _, ok := st.players[p.PlayerID()]; !ok {
			return infra.NewRepoErr(infra.KindForeignKeyViolated, "referenced row does not exist")
		}
		st.packs[id] = *p.WithID(id)
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *SessionPackRepository) Save(_ context.Context, p *pack.SessionPack) error {
	return r.acc.write(func(st *state) error {
		stored, ok := st.packs[p.ID()]
		if !ok || stored.Remaining() < p.Remaining() {
			return infra.NewRepoErr(infra.KindConflict, "session pack missing or already further consumed")
		}
		st.packs[p.ID()] = *p
		return nil
	})
}
