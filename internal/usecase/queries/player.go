package queries

import (
	"context"

	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type PlayerQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PlayerView, error)
	// ListActive returns the players who may still book, by name.
	ListActive(ctx context.Context) ([]*PlayerView, error)
}

type playerQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewPlayerQueries(uow shared.UnitOfWork) PlayerQueries {
	return &playerQueriesImpl{uow: uow}
}

func (q *playerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PlayerView, error) {
	p, err := q.uow.Reads().Players().FindByID(ctx, id)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrPlayerNotFound)
	}
	return ToPlayerView(p)
}

func (q *playerQueriesImpl) ListActive(ctx context.Context) ([]*PlayerView, error) {
	list, err := q.uow.Reads().Players().ListActive(ctx)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrPlayerNotFound)
	}
	views := make([]*PlayerView, 0, len(list))
	for _, p := range list {
		v, err := ToPlayerView(p)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
