// Package session owns one cart.Store per browser session and serialises
// every command sent to it.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/beer-catalog/internal/cart"
	"github.com/nikolayk812/beer-catalog/internal/logger"
	"github.com/nikolayk812/beer-catalog/internal/port"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/currency"
)

type Option func(*Registry)

// WithListener subscribes l to every store the registry creates.
func WithListener(l cart.Listener) Option {
	return func(r *Registry) {
		r.listeners = append(r.listeners, l)
	}
}

// WithIdleTTL makes Sweep forget sessions not used for longer than ttl.
func WithIdleTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		r.idleTTL = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

type Registry struct {
	repo      port.CartRepository
	currency  currency.Unit
	logg      *logger.Logger
	listeners []cart.Listener
	idleTTL   time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	loads    singleflight.Group
}

// entry is guarded by mu. An evicted entry is no longer in the registry map
// and must not be used.
type entry struct {
	mu       sync.Mutex
	store    *cart.Store
	lastUsed time.Time
	evicted  bool
}

func NewRegistry(repo port.CartRepository, cur currency.Unit, logg *logger.Logger, opts ...Option) *Registry {
	r := &Registry{
		repo:     repo,
		currency: cur,
		logg:     logg,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs fn against the store of sessionID while holding the session lock.
// The store is hydrated from the repository on first use. If fn changed the
// cart, the new contents are saved once fn returns; when saving fails the
// store is rolled back to its contents before fn. Empty carts are not kept
// in memory.
func (r *Registry) Do(ctx context.Context, sessionID uuid.UUID, fn func(*cart.Store) error) error {
	for {
		e, err := r.entry(ctx, sessionID)
		if err != nil {
			return err
		}

		e.mu.Lock()
		if e.evicted {
			e.mu.Unlock()
			continue
		}

		err = r.run(ctx, sessionID, e, fn)
		if e.store.IsEmpty() {
			r.evict(sessionID, e)
		}
		e.mu.Unlock()

		return err
	}
}

func (r *Registry) run(ctx context.Context, sessionID uuid.UUID, e *entry, fn func(*cart.Store) error) error {
	e.lastUsed = r.now()
	prev := e.store.Items()

	changed := false
	unsubscribe := e.store.Subscribe(func(cart.Event) { changed = true })
	fnErr := fn(e.store)
	unsubscribe()

	if !changed {
		return fnErr
	}

	if err := r.repo.SaveCart(ctx, e.store.Snapshot(sessionID.String())); err != nil {
		e.store.Restore(prev)
		r.logg.Error(r.logg.WithSessionID(ctx, sessionID.String()), "failed to persist cart", err)
		return fmt.Errorf("repo.SaveCart: %w", err)
	}

	return fnErr
}

// Forget drops the in-memory store of sessionID. The persisted snapshot is
// left untouched and is used to hydrate the next Do.
func (r *Registry) Forget(sessionID uuid.UUID) {
	r.mu.Lock()
	e, ok := r.sessions[sessionID]
	r.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	r.evict(sessionID, e)
}

// End forgets sessionID and deletes its persisted cart.
func (r *Registry) End(ctx context.Context, sessionID uuid.UUID) error {
	r.Forget(sessionID)

	if _, err := r.repo.DeleteCart(ctx, sessionID.String()); err != nil {
		return fmt.Errorf("repo.DeleteCart: %w", err)
	}
	return nil
}

// Sweep forgets sessions idle for longer than the configured TTL and returns
// how many were dropped. Sessions busy with a command are skipped.
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, e := range r.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastUsed.Before(cutoff) {
			e.evicted = true
			delete(r.sessions, id)
			dropped++
		}
		e.mu.Unlock()
	}
	return dropped
}

// RunJanitor calls Sweep every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 || r.idleTTL <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := r.Sweep(); dropped > 0 {
				r.logg.Debug(r.logg.WithField(ctx, "dropped", dropped), "idle sessions swept")
			}
		}
	}
}

// Len is the number of sessions held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// evict requires e.mu to be held.
func (r *Registry) evict(sessionID uuid.UUID, e *entry) {
	e.evicted = true

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessions[sessionID] == e {
		delete(r.sessions, sessionID)
	}
}

func (r *Registry) entry(ctx context.Context, sessionID uuid.UUID) (*entry, error) {
	r.mu.Lock()
	e, ok := r.sessions[sessionID]
	r.mu.Unlock()
	if ok {
		return e, nil
	}

	// the load is shared by every caller waiting on sessionID, so it must
	// not be cut short by the first caller's cancellation
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := r.loads.Do(sessionID.String(), func() (any, error) {
		return r.load(loadCtx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry), nil
}

func (r *Registry) load(ctx context.Context, sessionID uuid.UUID) (*entry, error) {
	r.mu.Lock()
	if e, ok := r.sessions[sessionID]; ok {
		r.mu.Unlock()
		return e, nil
	}
	r.mu.Unlock()

	snapshot, err := r.repo.GetCart(ctx, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("repo.GetCart: %w", err)
	}

	store := cart.New(r.currency)
	store.Restore(snapshot.Items)
	for _, l := range r.listeners {
		store.Subscribe(l)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[sessionID]; ok {
		return e, nil
	}
	e := &entry{store: store, lastUsed: r.now()}
	r.sessions[sessionID] = e

	r.logg.Debug(r.logg.WithFields(ctx, map[string]any{
		"session_id": sessionID.String(),
		"items":      store.Len(),
	}), "cart hydrated")

	return e, nil
}
