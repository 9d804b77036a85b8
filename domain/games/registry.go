package games

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"barkeep/domain/entities"
)

// SessionKey identifies the single allowed active session per channel and
// initiator.
type SessionKey struct {
	ChannelID int64
	UserID    int64
}

// Session is one live interactive game bound to a message. Expiry and
// explicit completion are mutually exclusive terminal outcomes; whichever
// takes the registry lock first wins.
type Session struct {
	ID        string
	Key       SessionKey
	Game      any
	StartedAt time.Time

	timer  *time.Timer
	closed bool
}

// Registry enforces the one-active-session-per-key rule and owns session
// expiry timers.
type Registry struct {
	mu     sync.Mutex
	byKey  map[SessionKey]*Session
	byID   map[string]*Session
	expire func(*Session)
}

// NewRegistry creates a registry. onExpire runs on the timer goroutine after
// a session expired and was already detached; it must not call back into the
// registry for that session.
func NewRegistry(onExpire func(*Session)) *Registry {
	return &Registry{
		byKey:  make(map[SessionKey]*Session),
		byID:   make(map[string]*Session),
		expire: onExpire,
	}
}

// Start registers a new session, failing with ErrSessionInProgress when the
// key already has one. The session expires after timeout unless closed first.
func (r *Registry) Start(key SessionKey, game any, timeout time.Duration) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[key]; ok {
		return nil, entities.ErrSessionInProgress
	}

	s := &Session{
		ID:        uuid.NewString(),
		Key:       key,
		Game:      game,
		StartedAt: time.Now(),
	}
	r.byKey[key] = s
	r.byID[s.ID] = s

	s.timer = time.AfterFunc(timeout, func() {
		r.expireSession(s)
	})
	return s, nil
}

// Get returns the active session for a key, or nil.
func (r *Registry) Get(key SessionKey) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byKey[key]
}

// GetByID returns the active session with the given id, or nil.
func (r *Registry) GetByID(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id]
}

// Touch resets the session's expiry timer, e.g. after each accepted input.
func (r *Registry) Touch(s *Session, timeout time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !s.closed {
		s.timer.Reset(timeout)
	}
}

// Close finishes a session explicitly. Returns false when the session
// already expired or was closed, in which case the caller must not settle it
// again.
func (r *Registry) Close(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.closed {
		return false
	}
	s.closed = true
	s.timer.Stop()
	r.detach(s)
	return true
}

// Active returns the number of live sessions.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}

func (r *Registry) expireSession(s *Session) {
	r.mu.Lock()
	if s.closed {
		r.mu.Unlock()
		return
	}
	s.closed = true
	r.detach(s)
	r.mu.Unlock()

	if r.expire != nil {
		r.expire(s)
	}
}

// detach removes the session from both indexes. Callers hold r.mu.
func (r *Registry) detach(s *Session) {
	if r.byKey[s.Key] == s {
		delete(r.byKey, s.Key)
	}
	delete(r.byID, s.ID)
}
