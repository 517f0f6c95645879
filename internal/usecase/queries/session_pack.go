package queries

import (
	"context"

	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SessionPackQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SessionPackView, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]*SessionPackView, error)
}

type sessionPackQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSessionPackQueries(uow shared.UnitOfWork, clock clock.Clock) SessionPackQueries {
	return &sessionPackQueriesImpl{uow: uow, clock: clock}
}

func (q *sessionPackQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SessionPackView, error) {
	p, err := q.uow.Reads().SessionPacks().FindByID(ctx, id)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrPackNotFound)
	}
	return ToSessionPackView(p, q.clock.Now())
}

func (q *sessionPackQueriesImpl) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]*SessionPackView, error) {
	if _, err := q.uow.Reads().Players().FindByID(ctx, playerID); err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrPlayerNotFound)
	}
	list, err := q.uow.Reads().SessionPacks().ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrPackNotFound)
	}
	now := q.clock.Now()
	views := make([]*SessionPackView, 0, len(list))
	for _, p := range list {
		v, err := ToSessionPackView(p, now)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
