//go:build integration

package uow_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/eligibility"
	"court-booking/internal/domain/pack"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra"
	"court-booking/internal/infra/events"
	"court-booking/internal/infra/uow"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/testutil/builder"
	"court-booking/internal/testutil/pgtest"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

type PostgresUoWSuite struct {
	suite.Suite
	ctx   context.Context
	pool  *pgxpool.Pool
	uow   *uow.PostgresUoW
	clock *clock.MockClock
	sut   commands.ReservationCommands
}

func TestPostgresUoWSuite(t *testing.T) {
	suite.Run(t, new(PostgresUoWSuite))
}

func (s *PostgresUoWSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pool, _ = pgtest.NewDatabase(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.uow = uow.NewPostgresUoW(s.pool, logger)
	s.clock = clock.NewMockClock(builder.FixedNow)
	s.sut = commands.NewReservationCommands(
		s.uow,
		reservation.NewFactory(s.clock, reservation.NewTablePriceCalculator()),
		eligibility.NewValidator(s.clock, eligibility.Rules{}),
		events.NewLogPublisher(logger),
		s.clock,
		logger,
	)
}

func (s *PostgresUoWSuite) SetupTest() {
	pgtest.Reset(s.T(), s.pool)
}

func (s *PostgresUoWSuite) seed() (playerID, courtID uuid.UUID) {
	var err error
	playerID, err = s.uow.Reads().Players().Create(s.ctx, builder.NewPlayerBuilder().UniqueEmail().MustBuildDomain())
	s.Require().NoError(err)
	courtID, err = s.uow.Reads().Courts().Create(s.ctx, builder.NewCourtBuilder().UniqueName().MustBuildDomain())
	s.Require().NoError(err)
	return playerID, courtID
}

func (s *PostgresUoWSuite) seedPack(playerID uuid.UUID, remaining int) uuid.UUID {
	id, err := s.uow.Reads().SessionPacks().Create(s.ctx,
		builder.NewPackBuilder().ForPlayer(playerID).WithRemaining(remaining).MustBuildDomain())
	s.Require().NoError(err)
	return id
}

func (s *PostgresUoWSuite) TestRoundTripsAReservation() {
	playerID, courtID := s.seed()
	start := builder.FixedNow.Add(48 * time.Hour)

	view, err := s.sut.Create(s.ctx, commands.CreateReservationInput{
		PlayerID:        playerID,
		CourtID:         courtID,
		Start:           start,
		DurationMinutes: 90,
		Adults:          6,
		Funding:         reservation.FundingIndividual,
	})
	s.Require().NoError(err)

	stored, err := s.uow.Reads().Reservations().FindByID(s.ctx, view.ID)
	s.Require().NoError(err)
	s.True(stored.Start().Equal(start))
	s.Equal("30.00", stored.Price().String())
	s.Equal(reservation.AudienceAdult, stored.Audience().Kind())
	s.Equal(6, stored.Audience().Adults())

	byKey, err := s.uow.Reads().Reservations().FindByPlayerCourtTime(s.ctx, playerID, courtID, start)
	s.Require().NoError(err)
	s.Equal(view.ID, byKey.ID())

	day, err := s.uow.Reads().Reservations().ListByCourtBetween(s.ctx, courtID, clock.StartOfDay(start), clock.StartOfDay(start).Add(24*time.Hour))
	s.Require().NoError(err)
	s.Len(day, 1)
}

func (s *PostgresUoWSuite) TestPackBookingPersistsTheConsumedSession() {
	playerID, courtID := s.seed()
	packID := s.seedPack(playerID, 3)

	view, err := s.sut.Create(s.ctx, commands.CreateReservationInput{
		PlayerID:        playerID,
		CourtID:         courtID,
		Start:           builder.FixedNow.Add(48 * time.Hour),
		DurationMinutes: 60,
		Adults:          4,
		Funding:         reservation.FundingSessionPack,
		PackID:          &packID,
	})
	s.Require().NoError(err)
	s.Equal(3, view.SessionNumber)
	s.Equal("19.00", view.PriceAmount)

	p, err := s.uow.Reads().SessionPacks().FindByID(s.ctx, packID)
	s.Require().NoError(err)
	s.Equal(2, p.Remaining())
}

func (s *PostgresUoWSuite) TestFailedUnitOfWorkRollsBack() {
	playerID, courtID := s.seed()
	packID := s.seedPack(playerID, 5)
	boom := errors.New("boom")

	err := s.uow.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.SessionPacks().FindByIDForUpdate(ctx, packID)
		if err != nil {
			return err
		}
		if _, err := p.Consume(builder.FixedNow); err != nil {
			return err
		}
		if err := tx.SessionPacks().Save(ctx, p); err != nil {
			return err
		}
		if _, err := tx.Courts().FindByIDForUpdate(ctx, courtID); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	p, err := s.uow.Reads().SessionPacks().FindByID(s.ctx, packID)
	s.Require().NoError(err)
	s.Equal(5, p.Remaining())
}

func (s *PostgresUoWSuite) TestConcurrentBookingsCannotOverdrawAPack() {
	playerID, courtID := s.seed()
	packID := s.seedPack(playerID, 1)

	const attempts = 4
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []error
	)
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.sut.Create(s.ctx, commands.CreateReservationInput{
				PlayerID:        playerID,
				CourtID:         courtID,
				Start:           builder.FixedNow.Add(time.Duration(48+i) * time.Hour),
				DurationMinutes: 60,
				Adults:          2,
				Funding:         reservation.FundingSessionPack,
				PackID:          &packID,
			})
			mu.Lock()
			results = append(results, err)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, pack.ErrPackExhausted)
	}
	s.Equal(1, succeeded)

	p, err := s.uow.Reads().SessionPacks().FindByID(s.ctx, packID)
	s.Require().NoError(err)
	s.Equal(0, p.Remaining())
}

func (s *PostgresUoWSuite) TestConstraintViolationsMapToKinds() {
	playerID, courtID := s.seed()

	_, err := s.uow.Reads().Courts().Create(s.ctx, builder.NewCourtBuilder().WithName("Dup").MustBuildDomain())
	s.Require().NoError(err)
	_, err = s.uow.Reads().Courts().Create(s.ctx, builder.NewCourtBuilder().WithName("Dup").MustBuildDomain())
	s.True(infra.IsKind(err, infra.KindDuplicateKey))

	res, err := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
		b.PlayerID = playerID
		b.CourtID = uuid.New()
	}).BuildDomain(reservation.NewFactory(s.clock, reservation.NewTablePriceCalculator()))
	s.Require().NoError(err)
	_, err = s.uow.Reads().Reservations().Insert(s.ctx, res)
	s.True(infra.IsKind(err, infra.KindForeignKeyViolated))

	_, err = s.uow.Reads().Courts().FindByID(s.ctx, uuid.New())
	s.True(infra.IsKind(err, infra.KindNotFound))
	s.NotEqual(uuid.Nil, courtID)
}

func (s *PostgresUoWSuite) TestMaterialsFollowTheirCourt() {
	_, courtID := s.seed()
	materialID, err := s.uow.Reads().Materials().Create(s.ctx, builder.NewMaterialBuilder().WithType(court.MaterialCone).MustBuildDomain())
	s.Require().NoError(err)

	err = s.uow.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Courts().FindByIDForUpdate(ctx, courtID)
		if err != nil {
			return err
		}
		m, err := tx.Materials().FindByIDForUpdate(ctx, materialID)
		if err != nil {
			return err
		}
		if err := m.AttachTo(c, 0); err != nil {
			return err
		}
		return tx.Materials().Save(ctx, m)
	})
	s.Require().NoError(err)

	attached, err := s.uow.Reads().Materials().ListByCourt(s.ctx, courtID)
	s.Require().NoError(err)
	s.Require().Len(attached, 1)
	s.Equal(court.MaterialReserved, attached[0].Status())

	n, err := s.uow.Reads().Materials().CountByTypeForCourt(s.ctx, courtID, court.MaterialCone)
	s.Require().NoError(err)
	s.Equal(1, n)

	unassigned, err := s.uow.Reads().Materials().ListUnassigned(s.ctx)
	s.Require().NoError(err)
	s.Empty(unassigned)
}

func (s *PostgresUoWSuite) TestConcurrentBookingsCannotShareASlot() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	exclusive := commands.NewReservationCommands(
		s.uow,
		reservation.NewFactory(s.clock, reservation.NewTablePriceCalculator()),
		eligibility.NewValidator(s.clock, eligibility.Rules{EnforceSlotExclusivity: true}),
		events.NewLogPublisher(logger),
		s.clock,
		logger,
	)
	_, courtID := s.seed()
	start := builder.FixedNow.Add(48 * time.Hour)

	const attempts = 4
	players := make([]uuid.UUID, attempts)
	for i := range players {
		id, err := s.uow.Reads().Players().Create(s.ctx, builder.NewPlayerBuilder().UniqueEmail().MustBuildDomain())
		s.Require().NoError(err)
		players[i] = id
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []error
	)
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := exclusive.Create(s.ctx, commands.CreateReservationInput{
				PlayerID:        players[i],
				CourtID:         courtID,
				Start:           start.Add(time.Duration(i) * 15 * time.Minute),
				DurationMinutes: 60,
				Adults:          2,
				Funding:         reservation.FundingIndividual,
			})
			mu.Lock()
			results = append(results, err)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, eligibility.ErrSlotOverlap)
	}
	s.Equal(1, succeeded)

	day, err := s.uow.Reads().Reservations().ListByCourtBetween(s.ctx, courtID, start, start.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Len(day, 1)
}

func (s *PostgresUoWSuite) TestPlayerAndCourtListings() {
	playerID, _ := s.seed()
	_, err := s.uow.Reads().Courts().Create(s.ctx, builder.NewCourtBuilder().WithName("Cerrada").AsUnavailable().MustBuildDomain())
	s.Require().NoError(err)

	err = s.uow.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Players().FindByIDForUpdate(ctx, playerID)
		if err != nil {
			return err
		}
		p.Deactivate()
		return tx.Players().Save(ctx, p)
	})
	s.Require().NoError(err)

	stored, err := s.uow.Reads().Players().FindByID(s.ctx, playerID)
	s.Require().NoError(err)
	s.False(stored.IsActive())

	active, err := s.uow.Reads().Players().ListActive(s.ctx)
	s.Require().NoError(err)
	s.Empty(active)

	closed, err := s.uow.Reads().Courts().ListUnavailable(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(closed, 1)
	s.Equal("Cerrada", closed[0].Name())

	all, err := s.uow.Reads().Courts().ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}
