package commands

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/eligibility"
	"court-booking/internal/domain/pack"
	"court-booking/internal/domain/player"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	PlayerID        uuid.UUID
	CourtID         uuid.UUID
	Start           time.Time
	DurationMinutes int
	Adults          int
	Children        int
	Funding         reservation.Funding
	// PackID is required for session pack funding and must be nil otherwise.
	PackID *uuid.UUID
}

type ModifyReservationInput struct {
	CourtID         uuid.UUID
	Start           time.Time
	DurationMinutes int
	Adults          int
	Children        int
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error)
	// Modify replaces a reservation with a new slot, keeping its funding.
	Modify(ctx context.Context, id uuid.UUID, in ModifyReservationInput) (*queries.ReservationView, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	CancelAt(ctx context.Context, playerID, courtID uuid.UUID, start time.Time) error
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	factory   *reservation.Factory
	validator *eligibility.Validator
	publisher shared.EventPublisher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	validator *eligibility.Validator,
	publisher shared.EventPublisher,
	clock clock.Clock,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:       uow,
		factory:   factory,
		validator: validator,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error) {
	p, err := activePlayer(ctx, c.uow.Reads(), in.PlayerID)
	if err != nil {
		return nil, err
	}
	duration, err := reservation.NewDuration(in.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if (in.Funding == reservation.FundingSessionPack) != (in.PackID != nil) {
		return nil, reservation.ErrInvalidFundingRequest
	}

	var created *reservation.Reservation
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ct, err := c.findCourt(ctx, tx, in.CourtID)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrCourtNotFound)
		}
		if _, err := c.validator.ValidateBooking(eligibility.BookingCheck{
			Court:    ct,
			Start:    in.Start,
			Adults:   in.Adults,
			Children: in.Children,
		}); err != nil {
			return err
		}
		if err := c.checkSlot(ctx, tx, in.CourtID, in.Start, duration, uuid.Nil); err != nil {
			return err
		}

		var sp *pack.SessionPack
		if in.PackID != nil {
			sp, err = tx.SessionPacks().FindByIDForUpdate(ctx, *in.PackID)
			if err != nil {
				return shared.MapRepoErr(err, errs.ErrPackNotFound)
			}
		}

		res, err := c.factory.Create(reservation.BuildRequest{
			PlayerID:        in.PlayerID,
			CourtID:         in.CourtID,
			Start:           in.Start,
			DurationMinutes: in.DurationMinutes,
			Adults:          in.Adults,
			Children:        in.Children,
			Funding:         in.Funding,
			Pack:            sp,
			LoyaltyEligible: p.LoyaltyEligible(c.clock.Now()),
		})
		if err != nil {
			return err
		}

		if sp != nil {
			if err := tx.SessionPacks().Save(ctx, sp); err != nil {
				return shared.MapRepoErr(err, errs.ErrPackNotFound)
			}
		}
		id, err := tx.Reservations().Insert(ctx, res)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrReservationNotFound)
		}
		created = res.WithID(id)
		return nil
	})
	if err != nil {
		c.logger.Info("reservation rejected",
			"player_id", in.PlayerID.String(),
			"court_id", in.CourtID.String(),
			"error", err.Error())
		return nil, err
	}

	c.publish(ctx, shared.EventReservationCreated, created, nil)
	return queries.ToReservationView(created)
}

func (c *reservationCommandsImpl) Modify(ctx context.Context, id uuid.UUID, in ModifyReservationInput) (*queries.ReservationView, error) {
	duration, err := reservation.NewDuration(in.DurationMinutes)
	if err != nil {
		return nil, err
	}

	var replacement *reservation.Reservation
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrReservationNotFound)
		}
		if err := c.validator.CheckModificationWindow(existing.Start()); err != nil {
			return err
		}
		p, err := activePlayer(ctx, tx, existing.PlayerID())
		if err != nil {
			return err
		}

		ct, err := c.findCourt(ctx, tx, in.CourtID)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrCourtNotFound)
		}
		if _, err := c.validator.ValidateBooking(eligibility.BookingCheck{
			Court:    ct,
			Start:    in.Start,
			Adults:   in.Adults,
			Children: in.Children,
		}); err != nil {
			return err
		}
		if err := c.checkSlot(ctx, tx, in.CourtID, in.Start, duration, existing.ID()); err != nil {
			return err
		}

		next, err := c.factory.Reschedule(existing, reservation.RescheduleRequest{
			CourtID:         in.CourtID,
			Start:           in.Start,
			DurationMinutes: in.DurationMinutes,
			Adults:          in.Adults,
			Children:        in.Children,
			LoyaltyEligible: p.LoyaltyEligible(c.clock.Now()),
		})
		if err != nil {
			return err
		}

		if err := tx.Reservations().Delete(ctx, existing.ID()); err != nil {
			return shared.MapRepoErr(err, errs.ErrReservationNotFound)
		}
		newID, err := tx.Reservations().Insert(ctx, next)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrReservationNotFound)
		}
		replacement = next.WithID(newID)
		return nil
	})
	if err != nil {
		c.logger.Info("reservation change rejected", "reservation_id", id.String(), "error", err.Error())
		return nil, err
	}

	c.publish(ctx, shared.EventReservationModified, replacement, map[string]string{"replaces": id.String()})
	return queries.ToReservationView(replacement)
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	return c.cancel(ctx, func(ctx context.Context, tx shared.Tx) (*reservation.Reservation, error) {
		return tx.Reservations().FindByID(ctx, id)
	})
}

func (c *reservationCommandsImpl) CancelAt(ctx context.Context, playerID, courtID uuid.UUID, start time.Time) error {
	return c.cancel(ctx, func(ctx context.Context, tx shared.Tx) (*reservation.Reservation, error) {
		return tx.Reservations().FindByPlayerCourtTime(ctx, playerID, courtID, start)
	})
}

func (c *reservationCommandsImpl) cancel(
	ctx context.Context,
	find func(ctx context.Context, tx shared.Tx) (*reservation.Reservation, error),
) error {
	var cancelled *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := find(ctx, tx)
		if err != nil {
			return shared.MapRepoErr(err, errs.ErrReservationNotFound)
		}
		if err := c.validator.CheckModificationWindow(existing.Start()); err != nil {
			return err
		}
		if _, err := activePlayer(ctx, tx, existing.PlayerID()); err != nil {
			return err
		}
		if err := tx.Reservations().Delete(ctx, existing.ID()); err != nil {
			return shared.MapRepoErr(err, errs.ErrReservationNotFound)
		}
		cancelled = existing
		return nil
	})
	if err != nil {
		return err
	}

	c.publish(ctx, shared.EventReservationCancelled, cancelled, nil)
	return nil
}

// findCourt locks the court row while slot exclusivity is on, so overlap
// checks and inserts for one court run one transaction at a time.
func (c *reservationCommandsImpl) findCourt(ctx context.Context, tx shared.Tx, id uuid.UUID) (*court.Court, error) {
	if c.validator.Rules.EnforceSlotExclusivity {
		return tx.Courts().FindByIDForUpdate(ctx, id)
	}
	return tx.Courts().FindByID(ctx, id)
}

// checkSlot is a no-op unless slot exclusivity is switched on.
func (c *reservationCommandsImpl) checkSlot(
	ctx context.Context,
	tx shared.Tx,
	courtID uuid.UUID,
	start time.Time,
	duration reservation.Duration,
	ignoreID uuid.UUID,
) error {
	if !c.validator.Rules.EnforceSlotExclusivity {
		return nil
	}
	overlapping, err := tx.Reservations().FindOverlapping(ctx, courtID, start, start.Add(duration.ToTimeDuration()))
	if err != nil {
		return shared.MapRepoErr(err, errs.ErrReservationNotFound)
	}
	return c.validator.CheckSlotExclusivity(overlapping, ignoreID)
}

func (c *reservationCommandsImpl) publish(ctx context.Context, t shared.EventType, r *reservation.Reservation, extra map[string]string) {
	attrs := map[string]string{
		"player_id": r.PlayerID().String(),
		"court_id":  r.CourtID().String(),
		"start":     r.Start().Format(time.RFC3339),
		"price":     r.Price().String(),
		"funding":   r.Funding().String(),
	}
	if r.IsPackBacked() {
		attrs["session_number"] = strconv.Itoa(r.SessionNumber())
	}
	for k, v := range extra {
		attrs[k] = v
	}
	publishEvent(ctx, c.publisher, c.logger, shared.Event{
		Type:        t,
		AggregateID: r.ID(),
		OccurredAt:  c.clock.Now(),
		Attributes:  attrs,
	})
}

func activePlayer(ctx context.Context, repos shared.Repositories, id uuid.UUID) (*player.Player, error) {
	p, err := repos.Players().FindByID(ctx, id)
	if err != nil {
		return nil, shared.MapRepoErr(err, errs.ErrPlayerNotFound)
	}
	if !p.IsActive() {
		return nil, errs.ErrPlayerInactive
	}
	return p, nil
}

// publishEvent runs after commit; a broker failure is logged and does not
// undo the committed change.
func publishEvent(ctx context.Context, publisher shared.EventPublisher, logger *slog.Logger, event shared.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish event",
			"type", string(event.Type),
			"aggregate_id", event.AggregateID.String(),
			"error", err.Error())
	}
}
