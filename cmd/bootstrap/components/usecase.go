package components

import (
	"log/slog"

	"court-booking/internal/domain/eligibility"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewTablePriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	reservation.NewFactory,
	func(clock clock.Clock, cfg config.Config) *eligibility.Validator {
		return eligibility.NewValidator(clock, eligibility.Rules{
			EnforceSlotExclusivity: cfg.Booking.EnforceSlotExclusivity,
		})
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewCourtCommands,
		commands.NewPlayerCommands,
		func(
			uow shared.UnitOfWork,
			cfg config.Config,
			publisher shared.EventPublisher,
			clock clock.Clock,
			logger *slog.Logger,
		) commands.SessionPackCommands {
			return commands.NewSessionPackCommands(uow, cfg.Booking.PackValidity, publisher, clock, logger)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewCourtQueries,
		queries.NewSessionPackQueries,
		queries.NewPlayerQueries,
	),
)
