package repository

import (
	"context"
	"log/slog"
	"time"

	"court-booking/internal/domain/pack"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const sessionPackColumns = `id, player_id, remaining, opened_at, expires_at`

type SessionPackRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewSessionPackRepository(db DBTX, logger *slog.Logger) *SessionPackRepository {
	return &SessionPackRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SessionPackRepository) FindByID(ctx context.Context, id uuid.UUID) (*pack.SessionPack, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sessionPackColumns+` FROM session_packs WHERE id = $1`, id)
	return r.scan(row)
}

// FindByIDForUpdate locks the pack row so two bookings cannot consume the
// same session.
func (r *SessionPackRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*pack.SessionPack, error) {
	row := r.db.QueryRow(ctx, `SELECT `+sessionPackColumns+` FROM session_packs WHERE id = $1 FOR UPDATE`, id)
	return r.scan(row)
}

func (r *SessionPackRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]*pack.SessionPack, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+sessionPackColumns+` FROM session_packs WHERE player_id = $1 ORDER BY opened_at, id`,
		playerID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list session packs", err)
	}
	defer rows.Close()

	var packs []*pack.SessionPack
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate session packs", err)
	}
	return packs, nil
}

func (r *SessionPackRepository) Create(ctx context.Context, p *pack.SessionPack) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO session_packs (player_id, remaining, opened_at, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		p.PlayerID(), p.Remaining(), p.OpenedAt(), p.ExpiresAt(),
	).Scan(&id)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, "session pack player does not exist", err)
		}
		return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create session pack", err)
	}
	return id, nil
}

// Save persists the remaining count. The guard keeps the count from ever
// growing back.
func (r *SessionPackRepository) Save(ctx context.Context, p *pack.SessionPack) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE session_packs SET remaining = $2 WHERE id = $1 AND remaining >= $2`,
		p.ID(), p.Remaining(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save session pack", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "session pack missing or already further consumed", nil)
	}
	return nil
}

func (r *SessionPackRepository) scan(row rowScanner) (*pack.SessionPack, error) {
	var (
		id        uuid.UUID
		playerID  uuid.UUID
		remaining int
		openedAt  time.Time
		expiresAt time.Time
	)
	if err := row.Scan(&id, &playerID, &remaining, &openedAt, &expiresAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "session pack not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan session pack", err)
	}
	p, err := pack.Reconstruct(id, playerID, remaining, openedAt, expiresAt)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored session pack is invalid", err)
	}
	return p, nil
}
