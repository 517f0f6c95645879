package queries

import (
	"context"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/eligibility"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CourtQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CourtView, error)
	// ListAvailable filters available courts by size (any when nil) and by a
	// minimum player capacity (ignored when zero).
	ListAvailable(ctx context.Context, size *court.Size, minPlayers int) ([]*CourtView, error)
	// ListForAudience returns the available courts a party of the given make-up
	// may book.
	ListForAudience(ctx context.Context, adults, children int) ([]*CourtView, error)
	// ListUnavailable returns the courts closed for booking.
	ListUnavailable(ctx context.Context) ([]*CourtView, error)
	ListAll(ctx context.Context) ([]*CourtView, error)
	ListMaterials(ctx context.Context, courtID uuid.UUID) ([]*MaterialView, error)
	// ListAvailableMaterials returns the materials that can still be attached.
	ListAvailableMaterials(ctx context.Context) ([]*MaterialView, error)
}

type courtQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewCourtQueries(uow shared.UnitOfWork) CourtQueries {
	return &courtQueriesImpl{uow: uow}
}

func (q *courtQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CourtView, error) {
	c, err := q.uow.Reads().Courts().FindByID(ctx, id)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrCourtNotFound)
	}
	return ToCourtView(c)
}

func (q *courtQueriesImpl) ListAvailable(ctx context.Context, size *court.Size, minPlayers int) ([]*CourtView, error) {
	if size != nil && !size.IsValid() {
		return nil, court.ErrInvalidSize
	}
	list, err := q.uow.Reads().Courts().ListAvailable(ctx, size)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrCourtNotFound)
	}
	filtered := make([]*court.Court, 0, len(list))
	for _, c := range list {
		if c.MaxPlayers() >= minPlayers {
			filtered = append(filtered, c)
		}
	}
	return toCourtViews(filtered)
}

func (q *courtQueriesImpl) ListForAudience(ctx context.Context, adults, children int) ([]*CourtView, error) {
	audience, err := reservation.ResolveAudience(adults, children)
	if err != nil {
		return nil, err
	}

	var matched []*court.Court
	for _, size := range eligibility.CompatibleSizes(audience.Kind()) {
		list, err := q.uow.Reads().Courts().ListAvailable(ctx, &size)
		if err != nil {
			return nil, shared.MapRepoErr(err, errs.ErrCourtNotFound)
		}
		for _, c := range list {
			if c.MaxPlayers() >= audience.HeadCount() {
				matched = append(matched, c)
			}
		}
	}
	return toCourtViews(matched)
}

func (q *courtQueriesImpl) ListUnavailable(ctx context.Context) ([]*CourtView, error) {
	list, err := q.uow.Reads().Courts().ListUnavailable(ctx)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrCourtNotFound)
	}
	return toCourtViews(list)
}

func (q *courtQueriesImpl) ListAll(ctx context.Context) ([]*CourtView, error) {
	list, err := q.uow.Reads().Courts().ListAll(ctx)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrCourtNotFound)
	}
	return toCourtViews(list)
}

func (q *courtQueriesImpl) ListMaterials(ctx context.Context, courtID uuid.UUID) ([]*MaterialView, error) {
	if _, err := q.uow.Reads().Courts().FindByID(ctx, courtID); err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrCourtNotFound)
	}
	list, err := q.uow.Reads().Materials().ListByCourt(ctx, courtID)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrMaterialNotFound)
	}
	return toMaterialViews(list)
}

func (q *courtQueriesImpl) ListAvailableMaterials(ctx context.Context) ([]*MaterialView, error) {
	list, err := q.uow.Reads().Materials().ListUnassigned(ctx)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrMaterialNotFound)
	}
	return toMaterialViews(list)
}
