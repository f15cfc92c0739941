package server

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"jethabot/config"
	"jethabot/model"
)

const janitorInterval = time.Minute

// entry is one isolated conversation: its own gate, session and limiter
type entry struct {
	session *model.Session
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

func (e *entry) touch(now time.Time) {
	e.mu.Lock()
	e.lastSeen = now
	e.mu.Unlock()
}

func (e *entry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSeen
}

// Store keeps sessions in memory, keyed by session ID
type Store struct {
	connect model.Connector
	cfg     *config.Config
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]*entry
}

func NewStore(cfg *config.Config, connect model.Connector) *Store {
	return &Store{
		connect: connect,
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// newLimiter allows RequestsPerMinute provider-bound calls with a small burst
func (s *Store) newLimiter() *rate.Limiter {
	rpm := max(s.cfg.RequestsPerMinute, 1)
	burst := min(rpm, 5)
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), burst)
}

// create starts a session behind its own unvalidated gate
func (s *Store) create() *entry {
	gate := model.NewGate(s.connect, model.GateOptions{
		RequireKey:     s.cfg.RequiresKey(),
		Timeout:        s.cfg.RequestTimeout,
		ProbeMaxTokens: s.cfg.ProbeMaxTokens,
	})
	e := &entry{
		session:  model.NewSession(gate, model.SessionOptions{Timeout: s.cfg.RequestTimeout}),
		limiter:  s.newLimiter(),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.entries[e.session.ID] = e
	total := len(s.entries)
	s.mu.Unlock()

	config.Debugf("[Server] Session %s created (%d active)", e.session.ID, total)
	return e
}

// get returns the session and marks it as used
func (s *Store) get(id string) (*entry, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if ok {
		e.touch(s.now())
	}
	return e, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// EvictIdle drops sessions unused for longer than ttl. Sessions waiting on
// the provider are kept.
func (s *Store) EvictIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var evicted []*entry
	for id, e := range s.entries {
		if e.idleSince().After(cutoff) || e.session.Awaiting() {
			continue
		}
		delete(s.entries, id)
		evicted = append(evicted, e)
	}
	s.mu.Unlock()

	for _, e := range evicted {
		e.session.Gate().Reset()
		e.session.Clear()
		config.Debugf("[Server] Session %s evicted after %v idle", e.session.ID, ttl)
	}
	return len(evicted)
}

// StartJanitor evicts idle sessions until ctx is done
func (s *Store) StartJanitor(ctx context.Context, ttl time.Duration) {
	ticker := time.NewTicker(janitorInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.EvictIdle(ttl); n > 0 {
					config.Debugf("[Server] Janitor evicted %d sessions", n)
				}
			case <-ctx.Done():
				config.Debugf("[Server] Janitor stopped: %v", ctx.Err())
				return
			}
		}
	}()
}
