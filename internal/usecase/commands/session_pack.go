package commands

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"court-booking/internal/domain/pack"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SessionPackCommands interface {
	// Open sells a fresh pack to a player who holds no active one.
	Open(ctx context.Context, playerID uuid.UUID) (*queries.SessionPackView, error)
}

type sessionPackCommandsImpl struct {
	uow       shared.UnitOfWork
	validity  time.Duration
	publisher shared.EventPublisher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewSessionPackCommands(
	uow shared.UnitOfWork,
	validity time.Duration,
	publisher shared.EventPublisher,
	clock clock.Clock,
	logger *slog.Logger,
) SessionPackCommands {
	return &sessionPackCommandsImpl{
		uow:       uow,
		validity:  validity,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

func (c *sessionPackCommandsImpl) Open(ctx context.Context, playerID uuid.UUID) (*queries.SessionPackView, error) {
	now := c.clock.Now()

	var opened *pack.SessionPack
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The player row lock serializes concurrent opens for the same player.
		p, err := tx.Players().FindByIDForUpdate(ctx, playerID)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrPlayerNotFound)
		}
		if !p.IsActive() {
			return errs.ErrPlayerInactive
		}
		held, err := tx.SessionPacks().ListByPlayer(ctx, playerID)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrPackNotFound)
		}
		for _, p := range held {
			if p.State(now) == pack.StateActive {
				return errs.ErrActivePackExists
			}
		}

		sp, err := pack.Open(playerID, now, c.validity)
		if err != nil {
			return err
		}
		id, err := tx.SessionPacks().Create(ctx, sp)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrPlayerNotFound)
		}
		opened = sp.WithID(id)
		return nil
	})
	if err != nil {
		c.logger.Info("session pack not opened", "player_id", playerID.String(), "error", err.Error())
		return nil, err
	}

	publishEvent(ctx, c.publisher, c.logger, shared.Event{
		Type:        shared.EventSessionPackOpened,
		AggregateID: opened.ID(),
		OccurredAt:  now,
		Attributes: map[string]string{
			"player_id":  playerID.String(),
			"sessions":   strconv.Itoa(opened.Remaining()),
			"expires_at": opened.ExpiresAt().Format(time.RFC3339),
		},
	})
	return queries.ToSessionPackView(opened, now)
}
