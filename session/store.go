package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/tracemap/internal"
	"github.com/theoremus-urban-solutions/tracemap/trace"
)

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Store keeps the live sessions over one shared dataset.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
	data     *trace.Dataset
	opts     Options
	log      *zap.Logger
	now      func() time.Time
}

// NewStore creates an empty store.
func NewStore(data *trace.Dataset, opts Options) *Store {
	return &Store{
		sessions: map[uuid.UUID]*entry{},
		data:     data,
		opts:     opts,
		log:      internal.OrNop(opts.Logger),
		now:      time.Now,
	}
}

// Create starts a new session, evicting idle sessions first and then the
// least recently used ones while the store is full.
func (st *Store) Create() *Session {
	s := New(uuid.New(), st.data, st.opts)

	st.mu.Lock()
	now := st.now()
	evicted := st.evictIdleLocked(now)
	for st.opts.MaxSessions > 0 && len(st.sessions) >= st.opts.MaxSessions {
		evicted = append(evicted, st.evictOldestLocked())
	}
	st.sessions[s.ID()] = &entry{session: s, lastSeen: now}
	n := len(st.sessions)
	st.mu.Unlock()

	st.opts.Metrics.SetSessions(n)
	st.logEvicted(evicted, n)
	st.log.Info("session created", zap.String("session", s.ID().String()), zap.Int("sessions", n))
	return s
}

// Get returns the session with the given id and marks it used. A session
// idle past the timeout is evicted and reported as not found.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.Lock()
	e, ok := st.sessions[id]
	if !ok {
		st.mu.Unlock()
		return nil, ErrNotFound
	}
	now := st.now()
	if st.expired(e, now) {
		delete(st.sessions, id)
		n := len(st.sessions)
		st.mu.Unlock()

		st.opts.Metrics.SetSessions(n)
		st.logEvicted([]uuid.UUID{id}, n)
		return nil, ErrNotFound
	}
	e.lastSeen = now
	st.mu.Unlock()
	return e.session, nil
}

// Delete removes a session.
func (st *Store) Delete(id uuid.UUID) error {
	st.mu.Lock()
	if _, ok := st.sessions[id]; !ok {
		st.mu.Unlock()
		return ErrNotFound
	}
	delete(st.sessions, id)
	n := len(st.sessions)
	st.mu.Unlock()

	st.opts.Metrics.SetSessions(n)
	st.log.Info("session deleted", zap.String("session", id.String()), zap.Int("sessions", n))
	return nil
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep evicts every idle session and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	evicted := st.evictIdleLocked(st.now())
	n := len(st.sessions)
	st.mu.Unlock()

	if len(evicted) > 0 {
		st.opts.Metrics.SetSessions(n)
		st.logEvicted(evicted, n)
	}
	return len(evicted)
}

// Run sweeps idle sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if st.opts.IdleTimeout <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

func (st *Store) expired(e *entry, now time.Time) bool {
	return st.opts.IdleTimeout > 0 && now.Sub(e.lastSeen) > st.opts.IdleTimeout
}

func (st *Store) evictIdleLocked(now time.Time) []uuid.UUID {
	var evicted []uuid.UUID
	for id, e := range st.sessions {
		if st.expired(e, now) {
			delete(st.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// evictOldestLocked removes the least recently used session. The store must
// not be empty.
func (st *Store) evictOldestLocked() uuid.UUID {
	var oldest uuid.UUID
	var seen time.Time
	first := true
	for id, e := range st.sessions {
		if first || e.lastSeen.Before(seen) {
			oldest, seen, first = id, e.lastSeen, false
		}
	}
	delete(st.sessions, oldest)
	return oldest
}

func (st *Store) logEvicted(ids []uuid.UUID, n int) {
	for _, id := range ids {
		st.log.Info("session evicted", zap.String("session", id.String()), zap.Int("sessions", n))
	}
}
