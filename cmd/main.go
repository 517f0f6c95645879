package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"court-booking/cmd/bootstrap"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/reservation"
	"court-booking/internal/infra/migrate"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

type options struct {
	cmd           string
	timeout       time.Duration
	playerID      string
	courtID       string
	reservationID string
	packID        string
	start         string
	minutes       int
	adults        int
	children      int
	size          string
	status        string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("court-booking", flag.ContinueOnError)
	fs.StringVar(&o.cmd, "cmd", "", "migrate | courts | players | upcoming | book | cancel | open-pack | deactivate-player")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "overall deadline for the command")
	fs.StringVar(&o.playerID, "player", "", "player id")
	fs.StringVar(&o.courtID, "court", "", "court id")
	fs.StringVar(&o.reservationID, "reservation", "", "reservation id")
	fs.StringVar(&o.packID, "pack", "", "session pack id; books against the pack when set")
	fs.StringVar(&o.start, "start", "", "slot start, RFC3339")
	fs.IntVar(&o.minutes, "minutes", 60, "slot length: 60, 90 or 120")
	fs.IntVar(&o.adults, "adults", 0, "number of adults")
	fs.IntVar(&o.children, "children", 0, "number of children")
	fs.StringVar(&o.size, "size", "", "court size filter: child | adult | three_vs_three")
	fs.StringVar(&o.status, "status", "available", "court listing: available | unavailable | all")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.cmd == "" {
		return o, fmt.Errorf("-cmd is required")
	}
	return o, nil
}

// command returns the fx.Invoke target for the selected command. Only the
// dependencies it names get constructed.
func command(ctx context.Context, o options, out io.Writer) (any, error) {
	switch o.cmd {
	case "migrate":
		return func(m *migrate.Migrator) error {
			applied, err := m.Apply(ctx)
			if err != nil {
				return err
			}
			return writeJSON(out, map[string]any{"applied": applied})
		}, nil

	case "courts":
		switch o.status {
		case "available", "unavailable", "all":
		default:
			return nil, fmt.Errorf("invalid -status %q", o.status)
		}
		return func(q queries.CourtQueries) error {
			var (
				views []*queries.CourtView
				err   error
			)
			switch {
			case o.status == "unavailable":
				views, err = q.ListUnavailable(ctx)
			case o.status == "all":
				views, err = q.ListAll(ctx)
			case o.adults > 0 || o.children > 0:
				views, err = q.ListForAudience(ctx, o.adults, o.children)
			default:
				var size *court.Size
				if o.size != "" {
					s := court.Size(o.size)
					size = &s
				}
				views, err = q.ListAvailable(ctx, size, 0)
			}
			if err != nil {
				return err
			}
			return writeJSON(out, views)
		}, nil

	case "players":
		return func(q queries.PlayerQueries) error {
			views, err := q.ListActive(ctx)
			if err != nil {
				return err
			}
			return writeJSON(out, views)
		}, nil

	case "deactivate-player":
		playerID, err := uuid.Parse(o.playerID)
		if err != nil {
			return nil, fmt.Errorf("invalid -player: %w", err)
		}
		return func(c commands.PlayerCommands) error {
			view, err := c.Deactivate(ctx, playerID)
			if err != nil {
				return err
			}
			return writeJSON(out, view)
		}, nil

	case "upcoming":
		return func(q queries.ReservationQueries) error {
			views, err := q.ListFuture(ctx)
			if err != nil {
				return err
			}
			return writeJSON(out, views)
		}, nil

	case "book":
		in, err := bookingInput(o)
		if err != nil {
			return nil, err
		}
		return func(c commands.ReservationCommands) error {
			view, err := c.Create(ctx, in)
			if err != nil {
				return err
			}
			return writeJSON(out, view)
		}, nil

	case "cancel":
		id, err := uuid.Parse(o.reservationID)
		if err != nil {
			return nil, fmt.Errorf("invalid -reservation: %w", err)
		}
		return func(c commands.ReservationCommands) error {
			if err := c.Cancel(ctx, id); err != nil {
				return err
			}
			return writeJSON(out, map[string]string{"cancelled": id.String()})
		}, nil

	case "open-pack":
		playerID, err := uuid.Parse(o.playerID)
		if err != nil {
			return nil, fmt.Errorf("invalid -player: %w", err)
		}
		return func(c commands.SessionPackCommands) error {
			view, err := c.Open(ctx, playerID)
			if err != nil {
				return err
			}
			return writeJSON(out, view)
		}, nil

	default:
		return nil, fmt.Errorf("unknown command %q", o.cmd)
	}
}

func bookingInput(o options) (commands.CreateReservationInput, error) {
	playerID, err := uuid.Parse(o.playerID)
	if err != nil {
		return commands.CreateReservationInput{}, fmt.Errorf("invalid -player: %w", err)
	}
	courtID, err := uuid.Parse(o.courtID)
	if err != nil {
		return commands.CreateReservationInput{}, fmt.Errorf("invalid -court: %w", err)
	}
	start, err := time.Parse(time.RFC3339, o.start)
	if err != nil {
		return commands.CreateReservationInput{}, fmt.Errorf("invalid -start: %w", err)
	}

	in := commands.CreateReservationInput{
		PlayerID:        playerID,
		CourtID:         courtID,
		Start:           start,
		DurationMinutes: o.minutes,
		Adults:          o.adults,
		Children:        o.children,
		Funding:         reservation.FundingIndividual,
	}
	if o.packID != "" {
		packID, err := uuid.Parse(o.packID)
		if err != nil {
			return commands.CreateReservationInput{}, fmt.Errorf("invalid -pack: %w", err)
		}
		in.Funding = reservation.FundingSessionPack
		in.PackID = &packID
	}
	return in, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		slog.Error("invalid arguments", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	invoke, err := command(ctx, o, os.Stdout)
	if err != nil {
		slog.Error("invalid arguments", "error", err)
		os.Exit(2)
	}

	app := fx.New(
		bootstrap.Module,
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Invoke(invoke),
	)
	if err := app.Err(); err != nil {
		slog.Error("command failed", "cmd", o.cmd, "error", err)
		os.Exit(1)
	}

	if err := app.Stop(ctx); err != nil {
		slog.Error("failed to release resources", "error", err)
	}
}
