package commands

import (
	"context"
	"log/slog"
	"strconv"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/eligibility"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateCourtInput struct {
	Name       string
	Available  bool
	Outdoor    bool
	Size       court.Size
	MaxPlayers int
}

type CreateMaterialInput struct {
	Type           court.MaterialType
	OutdoorCapable bool
	Status         court.MaterialStatus
}

type CourtCommands interface {
	CreateCourt(ctx context.Context, in CreateCourtInput) (*queries.CourtView, error)
	CreateMaterial(ctx context.Context, in CreateMaterialInput) (*queries.MaterialView, error)
	AttachMaterial(ctx context.Context, courtID, materialID uuid.UUID) (*queries.MaterialView, error)
}

type courtCommandsImpl struct {
	uow       shared.UnitOfWork
	validator *eligibility.Validator
	publisher shared.EventPublisher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewCourtCommands(
	uow shared.UnitOfWork,
	validator *eligibility.Validator,
	publisher shared.EventPublisher,
	clock clock.Clock,
	logger *slog.Logger,
) CourtCommands {
	return &courtCommandsImpl{
		uow:       uow,
		validator: validator,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

func (c *courtCommandsImpl) CreateCourt(ctx context.Context, in CreateCourtInput) (*queries.CourtView, error) {
	ct, err := court.NewCourt(in.Name, in.Available, in.Outdoor, in.Size, in.MaxPlayers)
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		id, err = tx.Courts().Create(ctx, ct)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.ErrDuplicateCourtName
		}
		return nil, shared.MapRepoErr(err, errs.ErrCourtNotFound)
	}
	return queries.ToCourtView(ct.WithID(id))
}

func (c *courtCommandsImpl) CreateMaterial(ctx context.Context, in CreateMaterialInput) (*queries.MaterialView, error) {
	m, err := court.NewMaterial(in.Type, in.OutdoorCapable, in.Status)
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		id, err = tx.Materials().Create(ctx, m)
		return err
	})
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrMaterialNotFound)
	}
	return queries.ToMaterialView(m.WithID(id))
}

func (c *courtCommandsImpl) AttachMaterial(ctx context.Context, courtID, materialID uuid.UUID) (*queries.MaterialView, error) {
	var attached *court.Material
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ct, err := tx.Courts().FindByIDForUpdate(ctx, courtID)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrCourtNotFound)
		}
		m, err := tx.Materials().FindByIDForUpdate(ctx, materialID)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrMaterialNotFound)
		}
		count, err := tx.Materials().CountByTypeForCourt(ctx, courtID, m.Type())
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrMaterialNotFound)
		}
		if err := c.validator.CheckMaterialAttachment(ct, m, count); err != nil {
			return err
		}
		if err := m.AttachTo(ct, count); err != nil {
			return err
		}
		if err := tx.Materials().Save(ctx, m); err != nil {
			return shared.MapRepoErr(err, errs.ErrMaterialNotFound)
		}
		attached = m
		return nil
	})
	if err != nil {
		c.logger.Info("material attachment rejected",
			"court_id", courtID.String(),
			"material_id", materialID.String(),
			"error", err.Error())
		return nil, err
	}

	publishEvent(ctx, c.publisher, c.logger, shared.Event{
		Type:        shared.EventMaterialAttached,
		AggregateID: attached.ID(),
		OccurredAt:  c.clock.Now(),
		Attributes: map[string]string{
			"court_id":        courtID.String(),
			"material_type":   attached.Type().String(),
			"outdoor_capable": strconv.FormatBool(attached.OutdoorCapable()),
		},
	})
	return queries.ToMaterialView(attached)
}
