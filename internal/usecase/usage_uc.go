// File: internal/usecase/usage_uc.go
package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"learner-practice-portal/internal/domain"
	"learner-practice-portal/internal/domain/model"
	"learner-practice-portal/internal/domain/ports/repository"
	"learner-practice-portal/internal/infra/guard"
	"learner-practice-portal/internal/infra/metrics"
)

// Compile-time check
var _ UsageStore = (*usageUC)(nil)

// UsageStore reads and writes the per-user, per-day counter record.
// Every operation is total: GetUsage always returns a well-formed
// record, preferring remote truth over the local cache, and the local
// cache over computed defaults. Increment performs the whole
// read-compute-write under the per-(user, date) lock, so concurrent
// increments within one process never lose each other. Across
// processes the remote upsert stays last-write-wins, which can
// under-count usage but never grants extra quota.
type UsageStore interface {
	GetUsage(ctx context.Context, userID string, date ...string) *model.DailyUsage
	Increment(ctx context.Context, userID string, action model.ActionType) bool
	UpdateUsage(ctx context.Context, userID string, patch model.UsagePatch) bool
	ResetUsage(ctx context.Context, userID string) bool
}

type usageUC struct {
	remote  repository.DailyUsageRepository
	cache   repository.UsageCache
	guard   *guard.Guard
	catalog *PlanCatalog

	log *zerolog.Logger

	// Serializes operations per (userID, date) key so in-process
	// read-modify-write cycles do not interleave.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUsageUseCase(remote repository.DailyUsageRepository, cache repository.UsageCache, g *guard.Guard, catalog *PlanCatalog, logger *zerolog.Logger) *usageUC {
	return &usageUC{
		remote:  remote,
		cache:   cache,
		guard:   g,
		catalog: catalog,
		log:     logger,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (uc *usageUC) keyLock(userID, date string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	key := userID + ":" + date
	l, ok := uc.locks[key]
	if !ok {
		l = &sync.Mutex{}
		uc.locks[key] = l
	}
	return l
}

// GetUsage returns today's record for the user, or the record for the
// explicitly supplied date. Unauthenticated callers get defaults without
// any remote traffic.
func (uc *usageUC) GetUsage(ctx context.Context, userID string, date ...string) *model.DailyUsage {
	target := model.DateKey(time.Now())
	if len(date) > 0 && date[0] != "" {
		target = date[0]
	}
	def := model.NewDefaultDailyUsage(userID, target, uc.catalog.Free())
	if userID == "" {
		return def
	}

	l := uc.keyLock(userID, target)
	l.Lock()
	defer l.Unlock()
	return uc.getUsageLocked(ctx, userID, target, def)
}

// usageRead distinguishes the three read outcomes: found (u set), a
// definitive miss from a reachable backend (miss), and the zero value,
// which is the guard fallback meaning the remote path is unavailable.
type usageRead struct {
	u    *model.DailyUsage
	miss bool
}

func (uc *usageUC) getUsageLocked(ctx context.Context, userID, target string, def *model.DailyUsage) *model.DailyUsage {
	res := guard.Read(ctx, uc.guard, "usage.find", usageRead{},
		func(ctx context.Context) (usageRead, error) {
			u, err := uc.remote.Find(ctx, userID, target)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return usageRead{miss: true}, nil
				}
				return usageRead{}, err
			}
			return usageRead{u: u}, nil
		})

	if res.u != nil {
		// Remote is authoritative.
		return res.u
	}

	if res.miss {
		// First access for this day: materialize the record lazily. If
		// a concurrent creator won, the existing row stays (insert-if-
		// absent); either way the defaults describe today accurately.
		created := guard.Write(ctx, uc.guard, "usage.create", false,
			func(ctx context.Context) (bool, error) {
				if err := uc.remote.Create(ctx, def); err != nil {
					return false, err
				}
				return true, nil
			})
		if !created {
			uc.log.Debug().Str("user_id", userID).Str("date", target).
				Msg("daily usage record not created remotely, serving defaults")
		}
		return def
	}

	// Remote path unavailable: fall back to the local cache.
	cached, err := uc.cache.Get(ctx, userID, target)
	if err == nil {
		return cached
	}
	if !errors.Is(err, domain.ErrNotFound) {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("usage cache read failed")
	}
	if err := uc.cache.Put(ctx, def); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("usage cache write failed")
	}
	return def
}

// Increment adds one to the action's counter for today. The re-read and
// the write happen inside the same critical section, so two concurrent
// increments for the same user always observe each other's result.
func (uc *usageUC) Increment(ctx context.Context, userID string, action model.ActionType) bool {
	if userID == "" || !action.Valid() {
		return false
	}
	target := model.DateKey(time.Now())

	l := uc.keyLock(userID, target)
	l.Lock()
	defer l.Unlock()

	def := model.NewDefaultDailyUsage(userID, target, uc.catalog.Free())
	current := uc.getUsageLocked(ctx, userID, target, def)

	var patch model.UsagePatch
	switch action {
	case model.ActionScenario:
		n := current.ScenariosUsed + 1
		patch.ScenariosUsed = &n
	case model.ActionQuestion:
		n := current.QuestionsUsed + 1
		patch.QuestionsUsed = &n
	}
	return uc.saveLocked(ctx, current.Apply(patch))
}

// UpdateUsage merges the patch into today's record and writes it to the
// remote table, or to the local cache when the remote write fails.
// Returns whether the merged record landed anywhere.
func (uc *usageUC) UpdateUsage(ctx context.Context, userID string, patch model.UsagePatch) bool {
	if userID == "" {
		return false
	}
	target := model.DateKey(time.Now())

	l := uc.keyLock(userID, target)
	l.Lock()
	defer l.Unlock()

	def := model.NewDefaultDailyUsage(userID, target, uc.catalog.Free())
	current := uc.getUsageLocked(ctx, userID, target, def)
	merged := current.Apply(patch)

	return uc.saveLocked(ctx, merged)
}

// ResetUsage overwrites today's record with zero counters. Admin and
// testing use only.
func (uc *usageUC) ResetUsage(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}
	target := model.DateKey(time.Now())

	l := uc.keyLock(userID, target)
	l.Lock()
	defer l.Unlock()

	zero := model.NewDefaultDailyUsage(userID, target, uc.catalog.Free())
	ok := uc.saveLocked(ctx, zero)
	if ok {
		// Overwrite any locally cached counters so a later offline read
		// cannot resurrect the pre-reset values.
		if err := uc.cache.Put(ctx, zero); err != nil {
			uc.log.Debug().Err(err).Str("user_id", userID).Msg("usage cache reset skipped")
		}
	}
	return ok
}

func (uc *usageUC) saveLocked(ctx context.Context, u *model.DailyUsage) bool {
	ok := guard.Write(ctx, uc.guard, "usage.save", false,
		func(ctx context.Context) (bool, error) {
			if err := uc.remote.Save(ctx, u); err != nil {
				return false, err
			}
			return true, nil
		})
	if ok {
		metrics.IncUsageWrite("remote")
		return true
	}

	if err := uc.cache.Put(ctx, u); err != nil {
		metrics.IncUsageWrite("lost")
		uc.log.Error().Err(err).Str("user_id", u.UserID).Str("date", u.Date).
			Msg("usage write lost: remote and local stores both unavailable")
		return false
	}
	metrics.IncUsageWrite("local")
	return true
}
