package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"court-booking/internal/infra/repository"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	reads  *repoSet
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) *PostgresUoW {
	return &PostgresUoW{
		pool:   pool,
		logger: logger,
		reads:  newRepoSet(pool, logger),
	}
}

// ReadCommitted plus explicit row locks: packs and courts are taken FOR UPDATE
// inside fn, which serializes consumption and attachment per row.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.Repositories {
	return u.reads
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(errs.Mark(err, errTransactionBegin), errs.ErrStorage)
		}

		// Fresh repositories per attempt; nothing cached survives a rollback.
		tx := newRepoSet(pgxTx, u.logger)

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(errs.Mark(err, errTransactionCommit), errs.ErrStorage)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				u.logger.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(errs.Mark(err, errMaxRetriesExceeded), errs.ErrStorage)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		u.logger.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask the high bit so the conversion stays positive.
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

// repoSet binds the repositories to one DBTX, either the pool or a pgx.Tx.
type repoSet struct {
	players      *repository.PlayerRepository
	courts       *repository.CourtRepository
	materials    *repository.MaterialRepository
	reservations *repository.ReservationRepository
	sessionPacks *repository.SessionPackRepository
}

func newRepoSet(db repository.DBTX, logger *slog.Logger) *repoSet {
	return &repoSet{
		players:      repository.NewPlayerRepository(db, logger),
		courts:       repository.NewCourtRepository(db, logger),
		materials:    repository.NewMaterialRepository(db, logger),
		reservations: repository.NewReservationRepository(db, logger),
		sessionPacks: repository.NewSessionPackRepository(db, logger),
	}
}

func (t *repoSet) Players() shared.PlayerRepository           { return t.players }
func (t *repoSet) Courts() shared.CourtRepository             { return t.courts }
func (t *repoSet) Materials() shared.MaterialRepository       { return t.materials }
func (t *repoSet) Reservations() shared.ReservationRepository { return t.reservations }
func (t *repoSet) SessionPacks() shared.SessionPackRepository { return t.sessionPacks }
