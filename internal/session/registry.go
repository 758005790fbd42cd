// Package session maps browser sessions to their own catalog controllers.
package session

import (
	"sync"
	"time"

	"product-catalog-manager/internal/catalog"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Factory builds the controller for a new session.
type Factory func() (*catalog.Controller, error)

// Session is one browser session's catalog. Do runs handlers one at a time,
// each to completion, so intents of the same session never interleave.
type Session struct {
	id       string
	mu       sync.Mutex
	ctrl     *catalog.Controller
	lastSeen time.Time
}

func (s *Session) ID() string { return s.id }

// Do runs fn with exclusive access to the session's controller.
func (s *Session) Do(fn func(*catalog.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ctrl)
}

// Registry holds live sessions. Sessions idle longer than the configured
// timeout are dropped the next time the registry is accessed.
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	factory     Factory
	idleTimeout time.Duration
	now         func() time.Time
	log         *zap.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(factory Factory, idleTimeout time.Duration, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		sessions:    make(map[string]*Session),
		factory:     factory,
		idleTimeout: idleTimeout,
		now:         time.Now,
		log:         log,
	}
}

// Acquire returns the live session for id, or starts a new one when id is
// empty, unknown or expired. created reports whether a new session began.
func (r *Registry) Acquire(id string) (sess *Session, created bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictLocked(now)

	if s, ok := r.sessions[id]; ok {
		s.lastSeen = now
		return s, false, nil
	}

	ctrl, err := r.factory()
	if err != nil {
		return nil, false, err
	}
	s := &Session{id: uuid.NewString(), ctrl: ctrl, lastSeen: now}
	r.sessions[s.id] = s
	r.log.Info("session started", zap.String("session_id", s.id), zap.Int("active_sessions", len(r.sessions)))
	return s, true, nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) evictLocked(now time.Time) {
	if r.idleTimeout <= 0 {
		return
	}
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.idleTimeout {
			delete(r.sessions, id)
			r.log.Info("session expired", zap.String("session_id", id))
		}
	}
}
