package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/preclinic/triage/internal/domain"
	"github.com/preclinic/triage/internal/engine"
)

var ErrSessionNotFound = errors.New("triage session not found")

// Session binds one engine instance to one conversation. The engine itself
// is single-threaded by contract; the session mutex serializes concurrent
// HTTP requests onto it. The turn counter timestamps evidence provenance.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	engine    *engine.Engine
	turn      int
	createdAt time.Time
	updatedAt time.Time
}

// do runs fn with exclusive access to the session's engine.
func (s *Session) do(fn func(e *engine.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
	s.updatedAt = time.Now()
}

// nextTurn hands out the ordinal index of the current exchange.
// Callers must hold the session lock (i.e. call from within do).
func (s *Session) nextTurn() int {
	t := s.turn
	s.turn++
	return t
}

// SessionService owns the in-memory session registry. Sessions share the
// knowledge base read-only; everything else is per-session and lost on
// restart. There is no cross-session persistence.
type SessionService struct {
	kb     *domain.KnowledgeBase
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewSessionService(kb *domain.KnowledgeBase, logger *zap.Logger) *SessionService {
	return &SessionService{
		kb:       kb,
		logger:   logger,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create starts a new session with a fresh engine.
func (s *SessionService) Create() *Session {
	sess := &Session{
		ID:        uuid.New(),
		engine:    engine.New(s.kb, s.logger),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("session created",
		zap.String("session_id", sess.ID.String()),
		zap.Bool("degraded", s.kb.Empty()))
	return sess
}

// Get returns the session for an ID or ErrSessionNotFound.
func (s *SessionService) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Restart discards all session state, evidence included, and hands the
// session a fresh engine. This is the only way evidence is ever cleared.
func (s *SessionService) Restart(id uuid.UUID) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.engine = engine.New(s.kb, s.logger)
	sess.turn = 0
	sess.updatedAt = time.Now()
	sess.mu.Unlock()

	s.logger.Info("session restarted", zap.String("session_id", id.String()))
	return nil
}

// Delete removes a session from the registry.
func (s *SessionService) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Degraded reports whether the shared knowledge base is empty.
func (s *SessionService) Degraded() bool {
	return s.kb.Empty()
}
