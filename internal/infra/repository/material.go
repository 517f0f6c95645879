package repository

import (
	"context"
	"log/slog"

	"court-booking/internal/domain/court"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const materialColumns = `id, type, outdoor_capable, status, court_id`

type MaterialRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewMaterialRepository(db DBTX, logger *slog.Logger) *MaterialRepository {
	return &MaterialRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*court.Material, error) {
	row := r.db.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
	return r.scan(row)
}

func (r *MaterialRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*court.Material, error) {
	row := r.db.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
	return r.scan(row)
}

func (r *MaterialRepository) CountByTypeForCourt(ctx context.Context, courtID uuid.UUID, t court.MaterialType) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM materials WHERE court_id = $1 AND type = $2`,
		courtID, t.String(),
	).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to count court materials", err)
	}
	return n, nil
}

func (r *MaterialRepository) ListByCourt(ctx context.Context, courtID uuid.UUID) ([]*court.Material, error) {
	return r.list(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE court_id = $1 ORDER BY type, id`,
		courtID,
	)
}

func (r *MaterialRepository) ListUnassigned(ctx context.Context) ([]*court.Material, error) {
	return r.list(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE court_id IS NULL AND status = $1 ORDER BY type, id`,
		court.MaterialAvailable.String(),
	)
}

func (r *MaterialRepository) list(ctx context.Context, query string, args ...any) ([]*court.Material, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list materials", err)
	}
	defer rows.Close()

	var materials []*court.Material
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate materials", err)
	}
	return materials, nil
}

func (r *MaterialRepository) Create(ctx context.Context, m *court.Material) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO materials (type, outdoor_capable, status, court_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		m.Type().String(), m.OutdoorCapable(), m.Status().String(), pgconv.UUIDPtrToPgtype(m.CourtID()),
	).Scan(&id)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, "material court does not exist", err)
		}
		return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create material", err)
	}
	return id, nil
}

func (r *MaterialRepository) Save(ctx context.Context, m *court.Material) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE materials SET status = $2, court_id = $3 WHERE id = $1`,
		m.ID(), m.Status().String(), pgconv.UUIDPtrToPgtype(m.CourtID()),
	)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, "material court does not exist", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to save material", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("material not found")
	}
	return nil
}

func (r *MaterialRepository) scan(row rowScanner) (*court.Material, error) {
	var (
		id             uuid.UUID
		materialType   string
		outdoorCapable bool
		status         string
		courtID        pgtype.UUID
	)
	if err := row.Scan(&id, &materialType, &outdoorCapable, &status, &courtID); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "material not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan material", err)
	}
	return court.ReconstructMaterial(
		id,
		court.MaterialType(materialType),
		outdoorCapable,
		court.MaterialStatus(status),
		pgconv.UUIDPtrFromPgtype(courtID),
	), nil
}
