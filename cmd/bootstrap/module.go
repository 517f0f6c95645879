package bootstrap

import (
	"court-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	components.PersistenceModule,
	components.EventsModule,
	components.UseCaseModule,
)
