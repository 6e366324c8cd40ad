package services

import (
	"sync"

	"github.com/uru-nouairi/Marco-Aesthetics-PNG/internal/checkout"
)

// CoordinatorFactory builds the cart and checkout coordinator for one cashier.
type CoordinatorFactory func(cashier string) *checkout.Coordinator

// SessionService tracks the live cashier sessions. Each session owns exactly
// one cart and coordinator; carts are never shared across sessions and never
// survive the process.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*checkout.Coordinator
	factory  CoordinatorFactory
}

// NewSessionService creates a new SessionService.
func NewSessionService(factory CoordinatorFactory) *SessionService {
	return &SessionService{
		sessions: make(map[string]*checkout.Coordinator),
		factory:  factory,
	}
}

// Create opens a session for a cashier and returns its coordinator.
func (s *SessionService) Create(sessionID, cashier string) *checkout.Coordinator {
	s.mu.Lock()
	defer s.mu.Unlock()

	co := s.factory(cashier)
	s.sessions[sessionID] = co
	return co
}

// Get returns the coordinator for a session ID.
func (s *SessionService) Get(sessionID string) (*checkout.Coordinator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	co, ok := s.sessions[sessionID]
	return co, ok
}

// Drop discards a session and its cart.
func (s *SessionService) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}
