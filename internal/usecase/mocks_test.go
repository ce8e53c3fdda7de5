// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"learner-practice-portal/internal/config"
	"learner-practice-portal/internal/domain"
	"learner-practice-portal/internal/domain/model"
	"learner-practice-portal/internal/infra/guard"
)

// errConnRefused simulates a backend that is not reachable at all.
var errConnRefused = &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}

func newTestGuard() *guard.Guard {
	nop := zerolog.Nop()
	return guard.New(guard.NewOfflineState(), config.GuardConfig{
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}, &nop)
}

// memUsageRepo is a small in-memory remote-table stand-in. Error fields
// let tests simulate per-method failures.
type memUsageRepo struct {
	mu    sync.RWMutex
	store map[string]*model.DailyUsage // key userID:date

	findErr   error
	createErr error
	saveErr   error
	deleteErr error
}

func newMemUsageRepo() *memUsageRepo {
	return &memUsageRepo{store: make(map[string]*model.DailyUsage)}
}

func usageMapKey(userID, date string) string { return userID + ":" + date }

func (m *memUsageRepo) Find(ctx context.Context, userID, date string) (*model.DailyUsage, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[usageMapKey(userID, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsageRepo) Create(ctx context.Context, u *model.DailyUsage) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := usageMapKey(u.UserID, u.Date)
	if _, exists := m.store[key]; exists {
		return nil // insert-if-absent: existing row wins
	}
	cp := *u
	m.store[key] = &cp
	return nil
}

func (m *memUsageRepo) Save(ctx context.Context, u *model.DailyUsage) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[usageMapKey(u.UserID, u.Date)] = &cp
	return nil
}

func (m *memUsageRepo) Delete(ctx context.Context, userID, date string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, usageMapKey(userID, date))
	return nil
}

// failAll flips every method into the given failure mode.
func (m *memUsageRepo) failAll(err error) {
	m.findErr, m.createErr, m.saveErr, m.deleteErr = err, err, err, err
}

// memUsageCache is the in-memory local cache stand-in.
type memUsageCache struct {
	mu    sync.RWMutex
	store map[string]*model.DailyUsage

	getErr error
	putErr error
}

func newMemUsageCache() *memUsageCache {
	return &memUsageCache{store: make(map[string]*model.DailyUsage)}
}

func (m *memUsageCache) Get(ctx context.Context, userID, date string) (*model.DailyUsage, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[usageMapKey(userID, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsageCache) Put(ctx context.Context, u *model.DailyUsage) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[usageMapKey(u.UserID, u.Date)] = &cp
	return nil
}

func (m *memUsageCache) Delete(ctx context.Context, userID, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, usageMapKey(userID, date))
	return nil
}

// memSubRepo holds subscription rows keyed by user.
type memSubRepo struct {
	mu   sync.RWMutex
	subs map[string][]*model.Subscription

	findErr error
}

func newMemSubRepo() *memSubRepo {
	return &memSubRepo{subs: make(map[string][]*model.Subscription)}
}

func (m *memSubRepo) FindActiveByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active []*model.Subscription
	for _, s := range m.subs[userID] {
		if s.Status == model.SubscriptionStatusActive {
			active = append(active, s)
		}
	}
	switch len(active) {
	case 0:
		return nil, domain.ErrNotFound
	case 1:
		cp := *active[0]
		return &cp, nil
	default:
		return nil, domain.ErrAmbiguous
	}
}

func (m *memSubRepo) Save(ctx context.Context, s *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	for i, existing := range m.subs[s.UserID] {
		if existing.ID == s.ID {
			m.subs[s.UserID][i] = &cp
			return nil
		}
	}
	m.subs[s.UserID] = append(m.subs[s.UserID], &cp)
	return nil
}

// newTestStack wires the full resolver stack over in-memory fakes.
func newTestStack() (*memSubRepo, *memUsageRepo, *memUsageCache, *guard.Guard, *entitlementUC) {
	nop := zerolog.Nop()
	subRepo := newMemSubRepo()
	usageRepo := newMemUsageRepo()
	cache := newMemUsageCache()
	g := newTestGuard()
	catalog := NewPlanCatalog()
	subUC := NewSubscriptionUseCase(subRepo, g, &nop)
	usageUC := NewUsageUseCase(usageRepo, cache, g, catalog, &nop)
	entUC := NewEntitlementUseCase(subUC, usageUC, catalog, &nop)
	return subRepo, usageRepo, cache, g, entUC
}
