//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/eligibility"
	"court-booking/internal/infra/memory"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/testutil/builder"
	sharedmock "court-booking/internal/testutil/mock/shared"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CourtCommandsSuite struct {
	suite.Suite
	ctx       context.Context
	publisher *sharedmock.MockEventPublisher
	store     *memory.Store
	sut       commands.CourtCommands
}

func TestCourtCommandsSuite(t *testing.T) {
	suite.Run(t, new(CourtCommandsSuite))
}

func (s *CourtCommandsSuite) SetupTest() {
	s.ctx = context.Background()
	s.publisher = sharedmock.NewMockEventPublisher(gomock.NewController(s.T()))
	s.store = memory.NewStore()
	clk := clock.NewMockClock(builder.FixedNow)
	s.sut = commands.NewCourtCommands(
		s.store,
		eligibility.NewValidator(clk, eligibility.Rules{}),
		s.publisher,
		clk,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func (s *CourtCommandsSuite) createCourt(name string, outdoor bool) uuid.UUID {
	view, err := s.sut.CreateCourt(s.ctx, commands.CreateCourtInput{
		Name:       name,
		Available:  true,
		Outdoor:    outdoor,
		Size:       court.SizeAdult,
		MaxPlayers: 10,
	})
	s.Require().NoError(err)
	return view.ID
}

func (s *CourtCommandsSuite) createMaterial(t court.MaterialType, outdoorCapable bool) uuid.UUID {
	view, err := s.sut.CreateMaterial(s.ctx, commands.CreateMaterialInput{
		Type:           t,
		OutdoorCapable: outdoorCapable,
		Status:         court.MaterialAvailable,
	})
	s.Require().NoError(err)
	return view.ID
}

func (s *CourtCommandsSuite) TestCreateCourt() {
	view, err := s.sut.CreateCourt(s.ctx, commands.CreateCourtInput{
		Name:       "Pista Sur",
		Available:  true,
		Size:       court.SizeThreeVsThree,
		MaxPlayers: 6,
	})
	s.Require().NoError(err)
	s.Equal("three_vs_three", view.SizeName)
	s.Equal(6, view.MaxPlayers)

	_, err = s.sut.CreateCourt(s.ctx, commands.CreateCourtInput{
		Name:       "Pista Sur",
		Available:  true,
		Size:       court.SizeAdult,
		MaxPlayers: 10,
	})
	s.ErrorIs(err, errs.ErrDuplicateCourtName)

	_, err = s.sut.CreateCourt(s.ctx, commands.CreateCourtInput{Name: "Otra", Size: "mini", MaxPlayers: 4})
	s.ErrorIs(err, court.ErrInvalidSize)
}

func (s *CourtCommandsSuite) TestAttachMaterial() {
	courtID := s.createCourt("Interior", false)
	basket1 := s.createMaterial(court.MaterialBasket, false)
	basket2 := s.createMaterial(court.MaterialBasket, false)
	basket3 := s.createMaterial(court.MaterialBasket, true)

	var events []shared.Event
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e shared.Event) error {
			events = append(events, e)
			return nil
		}).Times(2)

	view, err := s.sut.AttachMaterial(s.ctx, courtID, basket1)
	s.Require().NoError(err)
	s.Equal("reserved", view.StatusName)
	s.Require().NotNil(view.CourtID)
	s.Equal(courtID, *view.CourtID)

	_, err = s.sut.AttachMaterial(s.ctx, courtID, basket2)
	s.Require().NoError(err)

	_, err = s.sut.AttachMaterial(s.ctx, courtID, basket3)
	s.ErrorIs(err, court.ErrCapacityExceeded)

	_, err = s.sut.AttachMaterial(s.ctx, courtID, basket1)
	s.ErrorIs(err, court.ErrMaterialUnavailable, "an attached material is no longer available")

	s.Len(events, 2)
	s.Equal(shared.EventMaterialAttached, events[0].Type)

	attached, err := s.store.Reads().Materials().ListByCourt(s.ctx, courtID)
	s.Require().NoError(err)
	s.Len(attached, 2)

	free, err := s.store.Reads().Materials().ListUnassigned(s.ctx)
	s.Require().NoError(err)
	s.Len(free, 1)
	s.Equal(basket3, free[0].ID())
}

func (s *CourtCommandsSuite) TestAttachMaterialRejections() {
	outdoor := s.createCourt("Exterior", true)
	indoorBall := s.createMaterial(court.MaterialBall, false)

	_, err := s.sut.AttachMaterial(s.ctx, outdoor, indoorBall)
	s.ErrorIs(err, court.ErrEnvironmentIncompatible)

	_, err = s.sut.AttachMaterial(s.ctx, uuid.New(), indoorBall)
	s.ErrorIs(err, errs.ErrCourtNotFound)

	_, err = s.sut.AttachMaterial(s.ctx, outdoor, uuid.New())
	s.ErrorIs(err, errs.ErrMaterialNotFound)

	m, err := s.store.Reads().Materials().FindByID(s.ctx, indoorBall)
	s.Require().NoError(err)
	s.Equal(court.MaterialAvailable, m.Status())
	s.Nil(m.CourtID())
}
