package queries

import (
	"context"
	"time"

	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByPlayerCourtTime(ctx context.Context, playerID, courtID uuid.UUID, start time.Time) (*ReservationView, error)
	// ListFuture returns every reservation starting after now, earliest first.
	ListFuture(ctx context.Context) ([]*ReservationView, error)
	// ListByCourtAndDay returns the court's reservations starting on the
	// calendar day of day.
	ListByCourtAndDay(ctx context.Context, courtID uuid.UUID, day time.Time) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReservationQueries(uow shared.UnitOfWork, clock clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{uow: uow, clock: clock}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	r, err := q.uow.Reads().Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrReservationNotFound)
	}
	return ToReservationView(r)
}

func (q *reservationQueriesImpl) FindByPlayerCourtTime(ctx context.Context, playerID, courtID uuid.UUID, start time.Time) (*ReservationView, error) {
	r, err := q.uow.Reads().Reservations().FindByPlayerCourtTime(ctx, playerID, courtID, start)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrReservationNotFound)
	}
	return ToReservationView(r)
}

func (q *reservationQueriesImpl) ListFuture(ctx context.Context) ([]*ReservationView, error) {
	list, err := q.uow.Reads().Reservations().ListFutureFrom(ctx, q.clock.Now())
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrReservationNotFound)
	}
	return toReservationViews(list)
}

func (q *reservationQueriesImpl) ListByCourtAndDay(ctx context.Context, courtID uuid.UUID, day time.Time) ([]*ReservationView, error) {
	if _, err := q.uow.Reads().Courts().FindByID(ctx, courtID); err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrCourtNotFound)
	}
	from := clock.StartOfDay(day)
	list, err := q.uow.Reads().Reservations().ListByCourtBetween(ctx, courtID, from, from.Add(24*time.Hour))
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrReservationNotFound)
	}
	return toReservationViews(list)
}
