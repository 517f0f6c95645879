//go:build integration

package cache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/infra/cache"
	"court-booking/internal/infra/memory"
	"court-booking/internal/testutil/builder"
	"court-booking/internal/testutil/pgtest"
	"court-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedStore(t *testing.T) (*cache.UnitOfWork, *memory.Store, *redis.Client) {
	t.Helper()
	client := pgtest.NewRedisClient(t)
	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cache.WrapUnitOfWork(store, client, time.Minute, logger), store, client
}

func TestCourtCacheServesRepeatedReads(t *testing.T) {
	ctx := context.Background()
	uow, store, client := newCachedStore(t)

	id, err := store.Reads().Courts().Create(ctx, builder.NewCourtBuilder().WithName("Pista Norte").MustBuildDomain())
	require.NoError(t, err)

	first, err := uow.Reads().Courts().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Pista Norte", first.Name())

	n, err := client.Exists(ctx, "court:"+id.String()).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Replace the backing store; the cached entry must still answer.
	fresh := cache.WrapUnitOfWork(memory.NewStore(), client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cached, err := fresh.Reads().Courts().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.Name(), cached.Name())
	assert.Equal(t, first.Size(), cached.Size())
	assert.Equal(t, first.MaxPlayers(), cached.MaxPlayers())
}

func TestCourtCacheInvalidatesListsOnCreate(t *testing.T) {
	ctx := context.Background()
	uow, _, _ := newCachedStore(t)
	adult := court.SizeAdult

	_, err := uow.Reads().Courts().Create(ctx, builder.NewCourtBuilder().WithName("A").MustBuildDomain())
	require.NoError(t, err)

	listed, err := uow.Reads().Courts().ListAvailable(ctx, &adult)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = uow.Reads().Courts().Create(ctx, builder.NewCourtBuilder().WithName("B").MustBuildDomain())
	require.NoError(t, err)

	listed, err = uow.Reads().Courts().ListAvailable(ctx, &adult)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	all, err := uow.Reads().Courts().ListAvailable(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCourtCacheInvalidatesListsAfterCommittedCreate(t *testing.T) {
	ctx := context.Background()
	uow, _, _ := newCachedStore(t)

	_, err := uow.Reads().Courts().Create(ctx, builder.NewCourtBuilder().WithName("A").MustBuildDomain())
	require.NoError(t, err)
	listed, err := uow.Reads().Courts().ListAvailable(ctx, nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	err = uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Courts().Create(ctx, builder.NewCourtBuilder().WithName("B").MustBuildDomain())
		return err
	})
	require.NoError(t, err)

	listed, err = uow.Reads().Courts().ListAvailable(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	// A rolled back create leaves the cached list alone.
	err = uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Courts().Create(ctx, builder.NewCourtBuilder().WithName("C").MustBuildDomain()); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	listed, err = uow.Reads().Courts().ListAvailable(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestCourtCachePassesUnavailableListingsThrough(t *testing.T) {
	ctx := context.Background()
	uow, store, _ := newCachedStore(t)

	_, err := uow.Reads().Courts().Create(ctx, builder.NewCourtBuilder().WithName("Cerrada").AsUnavailable().MustBuildDomain())
	require.NoError(t, err)
	closed, err := uow.Reads().Courts().ListUnavailable(ctx)
	require.NoError(t, err)
	require.Len(t, closed, 1)

	_, err = store.Reads().Courts().Create(ctx, builder.NewCourtBuilder().WithName("Otra").AsUnavailable().MustBuildDomain())
	require.NoError(t, err)
	closed, err = uow.Reads().Courts().ListUnavailable(ctx)
	require.NoError(t, err)
	assert.Len(t, closed, 2)

	all, err := uow.Reads().Courts().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCourtCacheFallsThroughWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })
	uow := cache.WrapUnitOfWork(store, client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	id, err := uow.Reads().Courts().Create(ctx, builder.NewCourtBuilder().MustBuildDomain())
	require.NoError(t, err)

	got, err := uow.Reads().Courts().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID())
}
