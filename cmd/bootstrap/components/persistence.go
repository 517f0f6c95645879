package components

import (
	"context"
	"log/slog"

	"court-booking/internal/infra/cache"
	"court-booking/internal/infra/db"
	"court-booking/internal/infra/memory"
	"court-booking/internal/infra/migrate"
	"court-booking/internal/infra/uow"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewUnitOfWork,
		fx.Annotate(
			migrate.NewAtlasClient,
			fx.As(new(migrate.SchemaApplier)),
		),
		migrate.NewMigrator,
	),
)

// NewUnitOfWork picks the storage driver from config and puts the redis court
// cache in front of it when enabled.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	var base shared.UnitOfWork
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Info("using in-memory storage")
		base = memory.NewStore()
	default:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		base = uow.NewPostgresUoW(pool, logger)
	}

	if !cfg.Redis.Enabled {
		return base, nil
	}
	client := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.WrapUnitOfWork(base, client, cfg.Redis.CourtTTL, logger), nil
}
