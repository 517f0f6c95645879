package repository

import (
	"context"
	"log/slog"
	"time"

	"court-booking/internal/domain/player"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const playerColumns = `id, name, email, birth_date, registered_at, active`

type PlayerRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewPlayerRepository(db DBTX, logger *slog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PlayerRepository) FindByID(ctx context.Context, id uuid.UUID) (*player.Player, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	return r.scan(row, "failed to find player by id")
}

func (r *PlayerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*player.Player, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1 FOR UPDATE`, id)
	return r.scan(row, "failed to lock player")
}

func (r *PlayerRepository) FindByEmail(ctx context.Context, email string) (*player.Player, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE email = $1`, email)
	return r.scan(row, "failed to find player by email")
}

func (r *PlayerRepository) Create(ctx context.Context, p *player.Player) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO players (name, email, birth_date, registered_at, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.Name(), p.Email().Value(), p.BirthDate(), p.RegisteredAt(), p.IsActive(),
	).Scan(&id)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "player email already exists", err)
		}
		return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create player", err)
	}
	return id, nil
}

func (r *PlayerRepository) ListActive(ctx context.Context) ([]*player.Player, error) {
	rows, err := r.db.Query(ctx, `SELECT `+playerColumns+` FROM players WHERE active ORDER BY name, id`)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list active players", err)
	}
	defer rows.Close()

	var players []*player.Player
	for rows.Next() {
		p, err := r.scan(rows, "failed to scan player")
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate players", err)
	}
	return players, nil
}

func (r *PlayerRepository) Save(ctx context.Context, p *player.Player) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE players SET name = $2, email = $3, active = $4 WHERE id = $1`,
		p.ID(), p.Name(), p.Email().Value(), p.IsActive(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "player email already exists", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save player", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("player not found")
	}
	return nil
}

func (r *PlayerRepository) scan(row rowScanner, msg string) (*player.Player, error) {
	var (
		id           uuid.UUID
		name         string
		email        string
		birthDate    time.Time
		registeredAt time.Time
		active       bool
	)
	if err := row.Scan(&id, &name, &email, &birthDate, &registeredAt, &active); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "player not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
	}

	e, err := player.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored player email is invalid", err)
	}
	return player.ReconstructPlayer(id, name, e, birthDate, registeredAt, active), nil
}
