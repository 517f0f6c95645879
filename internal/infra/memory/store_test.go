//go:build unit

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/testutil/builder"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *Store
	factory *reservation.Factory
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewStore()
	s.factory = reservation.NewFactory(clock.NewMockClock(builder.FixedNow), reservation.NewTablePriceCalculator())
}

func (s *StoreTestSuite) seedPlayerAndCourt() (uuid.UUID, uuid.UUID) {
	playerID, err := s.store.Reads().Players().Create(s.ctx, builder.NewPlayerBuilder().UniqueEmail().MustBuildDomain())
	s.Require().NoError(err)
	courtID, err := s.store.Reads().Courts().Create(s.ctx, builder.NewCourtBuilder().UniqueName().MustBuildDomain())
	s.Require().NoError(err)
	return playerID, courtID
}

func (s *StoreTestSuite) newReservation(playerID, courtID uuid.UUID, start time.Time) *reservation.Reservation {
	res, err := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.PlayerID = playerID
		b.CourtID = courtID
	}).WithStart(start).BuildDomain(s.factory)
	s.Require().NoError(err)
	return res
}

func (s *StoreTestSuite) TestWithinRollsBackOnError() {
	playerID, courtID := s.seedPlayerAndCourt()
	boom := errors.New("boom")

	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reservations().Insert(ctx, s.newReservation(playerID, courtID, builder.FixedNow.Add(48*time.Hour))); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	listed, err := s.store.Reads().Reservations().ListFutureFrom(s.ctx, builder.FixedNow)
	s.Require().NoError(err)
	s.Empty(listed)
}

func (s *StoreTestSuite) TestWithinCommits() {
	playerID, courtID := s.seedPlayerAndCourt()

	var id uuid.UUID
	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		id, err = tx.Reservations().Insert(ctx, s.newReservation(playerID, courtID, builder.FixedNow.Add(48*time.Hour)))
		return err
	})
	s.Require().NoError(err)

	got, err := s.store.Reads().Reservations().FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(playerID, got.PlayerID())
}

func (s *StoreTestSuite) TestWithinHonoursCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	called := false
	err := s.store.Within(ctx, func(context.Context, shared.Tx) error {
		called = true
		return nil
	})
	s.ErrorIs(err, context.Canceled)
	s.False(called)
}

func (s *StoreTestSuite) TestDuplicateKeys() {
	_, err := s.store.Reads().Players().Create(s.ctx, builder.NewPlayerBuilder().WithEmail("dup@example.com").MustBuildDomain())
	s.Require().NoError(err)
	_, err = s.store.Reads().Players().Create(s.ctx, builder.NewPlayerBuilder().WithEmail("dup@example.com").MustBuildDomain())
	s.True(infra.IsKind(err, infra.KindDuplicateKey))

	_, err = s.store.Reads().Courts().Create(s.ctx, builder.NewCourtBuilder().WithName("Norte").MustBuildDomain())
	s.Require().NoError(err)
	_, err = s.store.Reads().Courts().Create(s.ctx, builder.NewCourtBuilder().WithName("Norte").MustBuildDomain())
	s.True(infra.IsKind(err, infra.KindDuplicateKey))
}

func (s *StoreTestSuite) TestReservationForeignKeys() {
	playerID, _ := s.seedPlayerAndCourt()

	_, err := s.store.Reads().Reservations().Insert(s.ctx, s.newReservation(playerID, uuid.New(), builder.FixedNow.Add(48*time.Hour)))
	s.True(infra.IsKind(err, infra.KindForeignKeyViolated))
}

func (s *StoreTestSuite) TestPackSaveRefusesToGrow() {
	playerID, _ := s.seedPlayerAndCourt()
	id, err := s.store.Reads().SessionPacks().Create(s.ctx, builder.NewPackBuilder().ForPlayer(playerID).WithRemaining(3).MustBuildDomain())
	s.Require().NoError(err)

	grown := builder.NewPackBuilder().ForPlayer(playerID).WithRemaining(4).With(func(b *builder.PackBuilder) { b.ID = id }).MustBuildDomain()
	err = s.store.Reads().SessionPacks().Save(s.ctx, grown)
	s.True(infra.IsKind(err, infra.KindConflict))

	shrunk := builder.NewPackBuilder().ForPlayer(playerID).WithRemaining(2).With(func(b *builder.PackBuilder) { b.ID = id }).MustBuildDomain()
	s.Require().NoError(s.store.Reads().SessionPacks().Save(s.ctx, shrunk))

	got, err := s.store.Reads().SessionPacks().FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(2, got.Remaining())
}

func (s *StoreTestSuite) TestReservationListsAreOrderedByStart() {
	playerID, courtID := s.seedPlayerAndCourt()
	late := builder.FixedNow.Add(72 * time.Hour)
	early := builder.FixedNow.Add(30 * time.Hour)
	past := builder.FixedNow.Add(-2 * time.Hour)

	for _, start := range []time.Time{late, past, early} {
		_, err := s.store.Reads().Reservations().Insert(s.ctx, s.newReservation(playerID, courtID, start))
		s.Require().NoError(err)
	}

	future, err := s.store.Reads().Reservations().ListFutureFrom(s.ctx, builder.FixedNow)
	s.Require().NoError(err)
	s.Require().Len(future, 2)
	s.Equal(early, future[0].Start())
	s.Equal(late, future[1].Start())

	overlapping, err := s.store.Reads().Reservations().FindOverlapping(s.ctx, courtID, early.Add(30*time.Minute), early.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Len(overlapping, 1)

	found, err := s.store.Reads().Reservations().FindByPlayerCourtTime(s.ctx, playerID, courtID, late)
	s.Require().NoError(err)
	s.Equal(late, found.Start())

	_, err = s.store.Reads().Reservations().FindByPlayerCourtTime(s.ctx, playerID, courtID, late.Add(time.Minute))
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *StoreTestSuite) TestMaterialAssignment() {
	_, courtID := s.seedPlayerAndCourt()

	free, err := s.store.Reads().Materials().Create(s.ctx, builder.NewMaterialBuilder().MustBuildDomain())
	s.Require().NoError(err)
	_, err = s.store.Reads().Materials().Create(s.ctx, builder.NewMaterialBuilder().WithStatus(court.MaterialDamaged).MustBuildDomain())
	s.Require().NoError(err)

	unassigned, err := s.store.Reads().Materials().ListUnassigned(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(unassigned, 1)
	s.Equal(free, unassigned[0].ID())

	c, err := s.store.Reads().Courts().FindByID(s.ctx, courtID)
	s.Require().NoError(err)
	m := unassigned[0]
	s.Require().NoError(m.AttachTo(c, 0))
	s.Require().NoError(s.store.Reads().Materials().Save(s.ctx, m))

	n, err := s.store.Reads().Materials().CountByTypeForCourt(s.ctx, courtID, m.Type())
	s.Require().NoError(err)
	s.Equal(1, n)

	unassigned, err = s.store.Reads().Materials().ListUnassigned(s.ctx)
	s.Require().NoError(err)
	s.Empty(unassigned)
}

func (s *StoreTestSuite) TestCallersHoldCopies() {
	playerID, _ := s.seedPlayerAndCourt()
	id, err := s.store.Reads().SessionPacks().Create(s.ctx, builder.NewPackBuilder().ForPlayer(playerID).MustBuildDomain())
	s.Require().NoError(err)

	p, err := s.store.Reads().SessionPacks().FindByID(s.ctx, id)
	s.Require().NoError(err)
	_, err = p.Consume(builder.FixedNow)
	s.Require().NoError(err)

	again, err := s.store.Reads().SessionPacks().FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(5, again.Remaining())
}

func (s *StoreTestSuite) TestPlayerSaveAndListActive() {
	registered := builder.FixedNow.AddDate(-3, 0, 0)
	id, err := s.store.Reads().Players().Create(s.ctx, builder.NewPlayerBuilder().WithName("Zoe").RegisteredOn(registered).UniqueEmail().MustBuildDomain())
	s.Require().NoError(err)
	_, err = s.store.Reads().Players().Create(s.ctx, builder.NewPlayerBuilder().WithName("Alba").WithEmail("alba@example.com").MustBuildDomain())
	s.Require().NoError(err)

	active, err := s.store.Reads().Players().ListActive(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(active, 2)
	s.Equal("Alba", active[0].Name())

	p, err := s.store.Reads().Players().FindByID(s.ctx, id)
	s.Require().NoError(err)
	p.Deactivate()
	s.Require().NoError(s.store.Reads().Players().Save(s.ctx, p))

	active, err = s.store.Reads().Players().ListActive(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal("Alba", active[0].Name())

	stored, err := s.store.Reads().Players().FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.False(stored.IsActive())
	s.Equal(registered, stored.RegisteredAt())

	taken := builder.NewPlayerBuilder().WithEmail("alba@example.com").MustBuildDomain().WithID(id)
	err = s.store.Reads().Players().Save(s.ctx, taken)
	s.True(infra.IsKind(err, infra.KindDuplicateKey))

	err = s.store.Reads().Players().Save(s.ctx, builder.NewPlayerBuilder().MustBuildDomain().WithID(uuid.New()))
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *StoreTestSuite) TestCourtListingsByAvailability() {
	_, err := s.store.Reads().Courts().Create(s.ctx, builder.NewCourtBuilder().WithName("B Abierta").MustBuildDomain())
	s.Require().NoError(err)
	_, err = s.store.Reads().Courts().Create(s.ctx, builder.NewCourtBuilder().WithName("A Cerrada").AsUnavailable().MustBuildDomain())
	s.Require().NoError(err)

	closed, err := s.store.Reads().Courts().ListUnavailable(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(closed, 1)
	s.Equal("A Cerrada", closed[0].Name())

	all, err := s.store.Reads().Courts().ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("A Cerrada", all[0].Name())
	s.Equal("B Abierta", all[1].Name())
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
