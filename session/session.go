package session

import "sync"

// State is the authentication state of a Session
type State int

const (
	// StatePending means bootstrap has not finished yet
	StatePending State = iota
	// StateAuthenticated means a verified token and identity are held
	StateAuthenticated
	// StateAnonymous means no token and no identity are held
	StateAnonymous
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Session is the client-held authentication state shared by every consumer.
// It is safe for concurrent use.
//
// Outside of StatePending, token and user are either both set or both empty.
// While pending, the token loaded from the store is held so that the verify
// request can carry it.
type Session struct {
	mu    sync.RWMutex
	state State
	token string
	user  *User

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a pending session
func New() *Session {
	return &Session{
		state: StatePending,
		done:  make(chan struct{}),
	}
}

// State returns the current state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the bearer token, or "" when none is held.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current identity, or nil when anonymous or pending.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a verified identity is held
func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Done is closed once the session leaves StatePending for the first time.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// begin holds a persisted token while verification is outstanding
func (s *Session) begin(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StatePending
	s.token = token
	s.user = nil
}

// set stores token and user together. An empty token or nil user clears both.
func (s *Session) set(token string, user *User) {
	if token == "" || user == nil {
		s.clear()
		return
	}

	u := *user
	s.mu.Lock()
	s.state = StateAuthenticated
	s.token = token
	s.user = &u
	s.mu.Unlock()

	s.markReady()
}

// replaceUser swaps the identity of an authenticated session, keeping the token
func (s *Session) replaceUser(user *User) bool {
	if user == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return false
	}
	u := *user
	s.user = &u
	return true
}

// clear drops token and user together
func (s *Session) clear() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.markReady()
}

func (s *Session) markReady() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
