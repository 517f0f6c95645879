package shared

import (
	"context"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/pack"
	"court-booking/internal/domain/player"
	"court-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations. Rows locked inside fn stay
	// locked until fn returns.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: Repositories outside any transaction, for validation and queries
	Reads() Repositories
}

type Repositories interface {
	Players() PlayerRepository
	Courts() CourtRepository
	Materials() MaterialRepository
	Reservations() ReservationRepository
	SessionPacks() SessionPackRepository
}

type Tx interface {
	Repositories
}

// Repositories return infra.RepositoryError values; KindNotFound marks a
// missing row.

type PlayerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*player.Player, error)
	// FindByIDForUpdate locks the player row until the unit of work ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*player.Player, error)
	FindByEmail(ctx context.Context, email string) (*player.Player, error)
	// ListActive returns active players ordered by name.
	ListActive(ctx context.Context) ([]*player.Player, error)
	Create(ctx context.Context, p *player.Player) (uuid.UUID, error)
	// Save writes name, email and the active flag of an existing player.
	Save(ctx context.Context, p *player.Player) error
}

type CourtRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*court.Court, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*court.Court, error)
	// ListAvailable returns available courts, all sizes when size is nil.
	ListAvailable(ctx context.Context, size *court.Size) ([]*court.Court, error)
	ListUnavailable(ctx context.Context) ([]*court.Court, error)
	ListAll(ctx context.Context) ([]*court.Court, error)
	Create(ctx context.Context, c *court.Court) (uuid.UUID, error)
}

type MaterialRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*court.Material, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*court.Material, error)
	CountByTypeForCourt(ctx context.Context, courtID uuid.UUID, t court.MaterialType) (int, error)
	ListByCourt(ctx context.Context, courtID uuid.UUID) ([]*court.Material, error)
	// ListUnassigned returns available materials not attached to any court.
	ListUnassigned(ctx context.Context) ([]*court.Material, error)
	Create(ctx context.Context, m *court.Material) (uuid.UUID, error)
	Save(ctx context.Context, m *court.Material) error
}

type ReservationRepository interface {
	Insert(ctx context.Context, r *reservation.Reservation) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByPlayerCourtTime(ctx context.Context, playerID, courtID uuid.UUID, start time.Time) (*reservation.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListFutureFrom returns reservations starting after now, earliest first.
	ListFutureFrom(ctx context.Context, now time.Time) ([]*reservation.Reservation, error)
	// ListByCourtBetween returns reservations of a court starting in [from, to).
	ListByCourtBetween(ctx context.Context, courtID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error)
	FindOverlapping(ctx context.Context, courtID uuid.UUID, start, end time.Time) ([]*reservation.Reservation, error)
}

type SessionPackRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*pack.SessionPack, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*pack.SessionPack, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]*pack.SessionPack, error)
	Create(ctx context.Context, p *pack.SessionPack) (uuid.UUID, error)
	Save(ctx context.Context, p *pack.SessionPack) error
}
