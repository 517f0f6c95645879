package repository

import (
	"context"
	"log/slog"

	"court-booking/internal/domain/court"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const courtColumns = `id, name, available, outdoor, size, max_players`

type CourtRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewCourtRepository(db DBTX, logger *slog.Logger) *CourtRepository {
	return &CourtRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CourtRepository) FindByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	row := r.db.QueryRow(ctx, `SELECT `+courtColumns+` FROM courts WHERE id = $1`, id)
	return r.scan(row)
}

// FindByIDForUpdate locks the court row until the surrounding transaction ends.
func (r *CourtRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	row := r.db.QueryRow(ctx, `SELECT `+courtColumns+` FROM courts WHERE id = $1 FOR UPDATE`, id)
	return r.scan(row)
}

func (r *CourtRepository) ListAvailable(ctx context.Context, size *court.Size) ([]*court.Court, error) {
	var sizeArg *string
	if size != nil {
		s := size.String()
		sizeArg = &s
	}
	return r.list(ctx, "failed to list available courts",
		`SELECT `+courtColumns+` FROM courts
		 WHERE available AND ($1::text IS NULL OR size = $1::text)
		 ORDER BY name`,
		sizeArg,
	)
}

func (r *CourtRepository) ListUnavailable(ctx context.Context) ([]*court.Court, error) {
	return r.list(ctx, "failed to list unavailable courts",
		`SELECT `+courtColumns+` FROM courts WHERE NOT available ORDER BY name`)
}

func (r *CourtRepository) ListAll(ctx context.Context) ([]*court.Court, error) {
	return r.list(ctx, "failed to list courts", `SELECT `+courtColumns+` FROM courts ORDER BY name`)
}

func (r *CourtRepository) list(ctx context.Context, msg, sql string, args ...any) ([]*court.Court, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
	}
	defer rows.Close()

	var courts []*court.Court
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		courts = append(courts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate courts", err)
	}
	return courts, nil
}

func (r *CourtRepository) Create(ctx context.Context, c *court.Court) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO courts (name, available, outdoor, size, max_players)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		c.Name(), c.Available(), c.Outdoor(), c.Size().String(), c.MaxPlayers(),
	).Scan(&id)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "court name already exists", err)
		}
		return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create court", err)
	}
	return id, nil
}

func (r *CourtRepository) scan(row rowScanner) (*court.Court, error) {
	var (
		id         uuid.UUID
		name       string
		available  bool
		outdoor    bool
		size       string
		maxPlayers int
	)
	if err := row.Scan(&id, &name, &available, &outdoor, &size, &maxPlayers); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "court not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan court", err)
	}
	return court.ReconstructCourt(id, name, available, outdoor, court.Size(size), maxPlayers), nil
}
