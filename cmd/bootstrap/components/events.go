package components

import (
	"context"
	"log/slog"

	"court-booking/internal/infra/events"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher publishes to RabbitMQ when AMQP is enabled and only logs
// events otherwise.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventPublisher, error) {
	if !cfg.AMQP.Enabled {
		return events.NewLogPublisher(logger), nil
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
