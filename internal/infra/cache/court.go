package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	courtKeyPrefix     = "court:"
	availableKeyPrefix = "courts:available:"
	allSizesKey        = "all"
)

var allSizes = []court.Size{court.SizeChild, court.SizeAdult, court.SizeThreeVsThree}

type courtRecord struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Available  bool      `json:"available"`
	Outdoor    bool      `json:"outdoor"`
	Size       string    `json:"size"`
	MaxPlayers int       `json:"max_players"`
}

func toRecord(c *court.Court) courtRecord {
	return courtRecord{
		ID:         c.ID(),
		Name:       c.Name(),
		Available:  c.Available(),
		Outdoor:    c.Outdoor(),
		Size:       c.Size().String(),
		MaxPlayers: c.MaxPlayers(),
	}
}

func (r courtRecord) toDomain() *court.Court {
	return court.ReconstructCourt(r.ID, r.Name, r.Available, r.Outdoor, court.Size(r.Size), r.MaxPlayers)
}

// CourtRepository is a read-through cache in front of another court
// repository. Redis errors are logged and the call falls through.
type CourtRepository struct {
	next   shared.CourtRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCourtRepository(next shared.CourtRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CourtRepository {
	return &CourtRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CourtRepository) FindByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	key := courtKeyPrefix + id.String()

	var rec courtRecord
	if r.get(ctx, key, &rec) {
		return rec.toDomain(), nil
	}

	c, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, toRecord(c))
	return c, nil
}

// Locking reads always go to the backing store.
func (r *CourtRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	return r.next.FindByIDForUpdate(ctx, id)
}

func (r *CourtRepository) ListAvailable(ctx context.Context, size *court.Size) ([]*court.Court, error) {
	key := availableKey(size)

	var recs []courtRecord
	if r.get(ctx, key, &recs) {
		courts := make([]*court.Court, 0, len(recs))
		for _, rec := range recs {
			courts = append(courts, rec.toDomain())
		}
		return courts, nil
	}

	courts, err := r.next.ListAvailable(ctx, size)
	if err != nil {
		return nil, err
	}
	recs = make([]courtRecord, 0, len(courts))
	for _, c := range courts {
		recs = append(recs, toRecord(c))
	}
	r.set(ctx, key, recs)
	return courts, nil
}

// Unfiltered and unavailable listings are rare admin reads and skip the cache.
func (r *CourtRepository) ListUnavailable(ctx context.Context) ([]*court.Court, error) {
	return r.next.ListUnavailable(ctx)
}

func (r *CourtRepository) ListAll(ctx context.Context) ([]*court.Court, error) {
	return r.next.ListAll(ctx)
}

func (r *CourtRepository) Create(ctx context.Context, c *court.Court) (uuid.UUID, error) {
	id, err := r.next.Create(ctx, c)
	if err != nil {
		return uuid.Nil, err
	}
	r.invalidateLists(ctx)
	return id, nil
}

func (r *CourtRepository) invalidateLists(ctx context.Context) {
	keys := []string{availableKey(nil)}
	for _, s := range allSizes {
		keys = append(keys, availableKey(&s))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn("court cache invalidation failed", "error", err.Error())
	}
}

func (r *CourtRepository) get(ctx context.Context, key string, dest any) bool {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		r.logger.Warn("court cache read failed", "key", key, "error", err.Error())
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		r.logger.Warn("court cache entry is corrupt", "key", key, "error", err.Error())
		return false
	}
	return true
}

func (r *CourtRepository) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Warn("court cache encode failed", "key", key, "error", err.Error())
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("court cache write failed", "key", key, "error", err.Error())
	}
}

func availableKey(size *court.Size) string {
	if size == nil {
		return availableKeyPrefix + allSizesKey
	}
	return fmt.Sprintf("%s%s", availableKeyPrefix, size.String())
}

// Repositories swaps the court repository of a non-transactional set for the
// cached one.
type Repositories struct {
	shared.Repositories
	courts *CourtRepository
}

func WrapRepositories(base shared.Repositories, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Repositories {
	return &Repositories{
		Repositories: base,
		courts:       NewCourtRepository(base.Courts(), client, ttl, logger),
	}
}

func (r *Repositories) Courts() shared.CourtRepository {
	return r.courts
}

// UnitOfWork serves reads through the court cache. Transactions go straight
// to the wrapped unit of work so locked reads never hit the cache; a committed
// transaction that created a court drops the cached lists.
type UnitOfWork struct {
	next  shared.UnitOfWork
	reads *Repositories
}

func WrapUnitOfWork(next shared.UnitOfWork, client *redis.Client, ttl time.Duration, logger *slog.Logger) *UnitOfWork {
	return &UnitOfWork{
		next:  next,
		reads: WrapRepositories(next.Reads(), client, ttl, logger),
	}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var created bool
	err := u.next.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		tracked := &trackedTx{Tx: tx, courts: &trackedCourts{CourtRepository: tx.Courts()}}
		err := fn(ctx, tracked)
		created = tracked.courts.created
		return err
	})
	if err == nil && created {
		u.reads.courts.invalidateLists(ctx)
	}
	return err
}

func (u *UnitOfWork) Reads() shared.Repositories {
	return u.reads
}

type trackedTx struct {
	shared.Tx
	courts *trackedCourts
}

func (t *trackedTx) Courts() shared.CourtRepository {
	return t.courts
}

type trackedCourts struct {
	shared.CourtRepository
	created bool
}

func (r *trackedCourts) Create(ctx context.Context, c *court.Court) (uuid.UUID, error) {
	id, err := r.CourtRepository.Create(ctx, c)
	if err == nil {
		r.created = true
	}
	return id, err
}

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
