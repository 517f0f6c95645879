package commands

import (
	"context"
	"time"

	"court-booking/internal/domain/player"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterPlayerInput struct {
	Name      string
	Email     string
	BirthDate time.Time
}

type EditPlayerInput struct {
	Name  string
	Email string
}

type PlayerCommands interface {
	// Register enrols a player as of now.
	Register(ctx context.Context, in RegisterPlayerInput) (*queries.PlayerView, error)
	// Edit changes name and email; the registration date is kept.
	Edit(ctx context.Context, id uuid.UUID, in EditPlayerInput) (*queries.PlayerView, error)
	// Deactivate closes the account. Existing reservations stay in place.
	Deactivate(ctx context.Context, id uuid.UUID) (*queries.PlayerView, error)
}

type playerCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPlayerCommands(uow shared.UnitOfWork, clock clock.Clock) PlayerCommands {
	return &playerCommandsImpl{uow: uow, clock: clock}
}

func (c *playerCommandsImpl) Register(ctx context.Context, in RegisterPlayerInput) (*queries.PlayerView, error) {
	email, err := player.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	p, err := player.NewPlayer(in.Name, email, in.BirthDate, c.clock.Now())
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		id, err = tx.Players().Create(ctx, p)
		return err
	})
	if err != nil {
		return nil, mapPlayerWriteErr(err)
	}
	return queries.ToPlayerView(p.WithID(id))
}

func (c *playerCommandsImpl) Edit(ctx context.Context, id uuid.UUID, in EditPlayerInput) (*queries.PlayerView, error) {
	email, err := player.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	return c.update(ctx, id, func(p *player.Player) error {
		return p.Edit(in.Name, email)
	})
}

func (c *playerCommandsImpl) Deactivate(ctx context.Context, id uuid.UUID) (*queries.PlayerView, error) {
	return c.update(ctx, id, func(p *player.Player) error {
		p.Deactivate()
		return nil
	})
}

func (c *playerCommandsImpl) update(ctx context.Context, id uuid.UUID, change func(p *player.Player) error) (*queries.PlayerView, error) {
	var updated *player.Player
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Players().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := change(p); err != nil {
			return err
		}
		if err := tx.Players().Save(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, mapPlayerWriteErr(err)
	}
	return queries.ToPlayerView(updated)
}

func mapPlayerWriteErr(err error) error {
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return errs.ErrDuplicateEmail
	}
	if !infra.IsRepoErr(err) {
		return err
	}
	return shared.MapRepoErr(err, errs.ErrPlayerNotFound)
}
