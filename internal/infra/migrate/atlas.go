package migrate

import (
	"context"
	"log/slog"
	"path/filepath"

	"court-booking/internal/pkg/config"
	"court-booking/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

const SchemaFile = "001_initial_schema.sql"

// SchemaApplier is the part of the atlas client the migrator drives.
type SchemaApplier interface {
	SchemaApply(ctx context.Context, params *atlasexec.SchemaApplyParams) (*atlasexec.SchemaApply, error)
}

// Migrator brings the database in line with the declarative schema file.
type Migrator struct {
	applier SchemaApplier
	cfg     config.Config
	logger  *slog.Logger
}

func NewAtlasClient(cfg config.Config) (*atlasexec.Client, error) {
	client, err := atlasexec.NewClient(".", cfg.Storage.AtlasBin)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create atlas client")
	}
	return client, nil
}

func NewMigrator(applier SchemaApplier, cfg config.Config, logger *slog.Logger) *Migrator {
	return &Migrator{
		applier: applier,
		cfg:     cfg,
		logger:  logger,
	}
}

// Apply returns the statements atlas executed.
func (m *Migrator) Apply(ctx context.Context) ([]string, error) {
	params := m.Params()
	res, err := m.applier.SchemaApply(ctx, params)
	if err != nil {
		return nil, errs.Wrap(err, "schema apply failed")
	}
	m.logger.Info("schema applied", "schema", params.To, "statements", len(res.Changes.Applied))
	return res.Changes.Applied, nil
}

func (m *Migrator) Params() *atlasexec.SchemaApplyParams {
	return &atlasexec.SchemaApplyParams{
		URL:         m.cfg.DB.BuildDSN(),
		To:          "file://" + filepath.ToSlash(filepath.Join(m.cfg.Storage.MigrationsDir, SchemaFile)),
		DevURL:      m.cfg.Storage.DevURL,
		AutoApprove: true,
	}
}
