package repository

import (
	"context"
	"log/slog"
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, player_id, court_id, starts_at, duration_minutes, price::text, discount::text,
	funding, audience, adults, children, pack_id, session_number`

type ReservationRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewReservationRepository(db DBTX, logger *slog.Logger) *ReservationRepository {
	return &ReservationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	var sessionNumber pgtype.Int4
	if res.IsPackBacked() {
		sessionNumber = pgtype.Int4{Int32: int32(res.SessionNumber()), Valid: true} // #nosec G115 -- session numbers are 1..5
	}

	audience := res.Audience()
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO reservations (
			player_id, court_id, starts_at, duration_minutes, price, discount,
			funding, audience, adults, children, pack_id, session_number
		) VALUES ($1, $2, $3, $4, $5::text::numeric, $6::text::numeric, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		res.PlayerID(),
		res.CourtID(),
		res.Start(),
		res.Duration().Minutes(),
		pgconv.DecimalToText(res.Price().Amount()),
		pgconv.DecimalToText(res.Discount()),
		res.Funding().String(),
		audience.Kind().String(),
		audience.Adults(),
		audience.Children(),
		pgconv.UUIDPtrToPgtype(res.PackID()),
		sessionNumber,
	).Scan(&id)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, "reservation references a missing row", err)
		}
		return uuid.Nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to insert reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	return r.scan(row)
}

func (r *ReservationRepository) FindByPlayerCourtTime(ctx context.Context, playerID, courtID uuid.UUID, start time.Time) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE player_id = $1 AND court_id = $2 AND starts_at = $3
		 LIMIT 1`,
		playerID, courtID, start,
	)
	return r.scan(row)
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("reservation not found")
	}
	return nil
}

func (r *ReservationRepository) ListFutureFrom(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE starts_at > $1 ORDER BY starts_at, id`,
		now,
	)
}

func (r *ReservationRepository) ListByCourtBetween(ctx context.Context, courtID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE court_id = $1 AND starts_at >= $2 AND starts_at < $3
		 ORDER BY starts_at, id`,
		courtID, from, to,
	)
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, courtID uuid.UUID, start, end time.Time) ([]*reservation.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE court_id = $1
		   AND starts_at < $3
		   AND starts_at + make_interval(mins => duration_minutes) > $2
		 ORDER BY starts_at, id`,
		courtID, start, end,
	)
}

func (r *ReservationRepository) list(ctx context.Context, sql string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list reservations", err)
	}
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		res, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate reservations", err)
	}
	return out, nil
}

func (r *ReservationRepository) scan(row rowScanner) (*reservation.Reservation, error) {
	var (
		id              uuid.UUID
		playerID        uuid.UUID
		courtID         uuid.UUID
		start           time.Time
		durationMinutes int
		priceText       pgtype.Text
		discountText    pgtype.Text
		funding         string
		audienceKind    string
		adults          int
		children        int
		packID          pgtype.UUID
		sessionNumber   pgtype.Int4
	)
	err := row.Scan(
		&id, &playerID, &courtID, &start, &durationMinutes, &priceText, &discountText,
		&funding, &audienceKind, &adults, &children, &packID, &sessionNumber,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan reservation", err)
	}

	res, err := toReservation(id, playerID, courtID, start, durationMinutes, priceText, discountText,
		funding, audienceKind, adults, children, packID, sessionNumber)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "stored reservation is invalid", err)
	}
	return res, nil
}

func toReservation(
	id, playerID, courtID uuid.UUID,
	start time.Time,
	durationMinutes int,
	priceText, discountText pgtype.Text,
	funding, audienceKind string,
	adults, children int,
	packID pgtype.UUID,
	sessionNumber pgtype.Int4,
) (*reservation.Reservation, error) {
	price, err := pgconv.DecimalFromText(priceText)
	if err != nil {
		return nil, err
	}
	discount, err := pgconv.DecimalFromText(discountText)
	if err != nil {
		return nil, err
	}
	duration, err := reservation.NewDuration(durationMinutes)
	if err != nil {
		return nil, err
	}
	audience, err := reservation.ReconstructAudience(reservation.AudienceKind(audienceKind), adults, children, discount)
	if err != nil {
		return nil, err
	}

	session := 0
	if sessionNumber.Valid {
		session = int(sessionNumber.Int32)
	}

	return reservation.ReconstructReservation(id, reservation.NewMoney(price), reservation.Params{
		PlayerID:      playerID,
		CourtID:       courtID,
		Start:         start,
		Duration:      duration,
		Discount:      discount,
		Funding:       reservation.Funding(funding),
		Audience:      audience,
		PackID:        pgconv.UUIDPtrFromPgtype(packID),
		SessionNumber: session,
	})
}
