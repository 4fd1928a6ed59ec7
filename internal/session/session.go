package session

import (
	"errors"
	"sync"

	"github.com/casaflow/crm-cli-go/internal/domain"

	"go.uber.org/zap"
)

// Store is the durable half of the session.
type Store interface {
	Save(token string, agent *domain.Agent) error
	Load() (string, *domain.Agent)
	Clear() error
}

// Session is the in-memory session context. It has exactly two states:
// unauthenticated (no token) and authenticated (token and agent both
// set). Every transition writes through to the Store.
type Session struct {
	mu     sync.RWMutex
	store  Store
	logger *zap.Logger

	token string
	agent *domain.Agent
}

// New hydrates a session from the store. An unreadable store yields
// the unauthenticated state.
func New(store Store, logger *zap.Logger) *Session {
	token, agent := store.Load()
	return &Session{
		store:  store,
		logger: logger,
		token:  token,
		agent:  agent,
	}
}

// Login sets both halves of the session and persists them. A partial
// session (token without agent, or vice versa) is rejected.
func (s *Session) Login(token string, agent *domain.Agent) error {
	if token == "" || agent == nil {
		return errors.New("session: login requires both token and agent")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.agent = agent
	if err := s.store.Save(token, agent); err != nil {
		// In-memory state stays authoritative for this process; the
		// caller learns the session will not survive it.
		return err
	}

	s.logger.Info("logged in",
		zap.String("agent_id", agent.ID),
		zap.String("email", agent.Email),
	)
	return nil
}

// Logout clears both halves of the session, in memory and on disk.
// Logging out twice is a no-op.
func (s *Session) Logout() {
	s.clear("logged out")
}

// Invalidate is the 401 path: the backend no longer accepts the token,
// so the session ends regardless of what the user was doing. Safe to
// call repeatedly and from any request's post-response hook.
func (s *Session) Invalidate() {
	s.clear("session invalidated by server")
}

func (s *Session) clear(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasAuthenticated := s.token != ""
	s.token = ""
	s.agent = nil

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("session: failed to clear persisted session", zap.Error(err))
	}
	if wasAuthenticated {
		s.logger.Info(reason)
	}
}

// Token returns the current bearer token, empty when unauthenticated.
// Satisfies the api package's token source.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Agent returns the authenticated agent, nil when unauthenticated.
func (s *Session) Agent() *domain.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agent
}

// IsAuthenticated derives purely from token presence; it is never
// stored and cannot go stale.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}
