// Package session tracks the authentication state pushed by the hosted
// auth service and exposes it as a single process-wide tri-state value.
package session

import (
	"log/slog"
	"sync"
	"time"
)

// Status is the tri-state authentication signal the view layer keys off.
type Status int

const (
	// Unknown means the initial session lookup has not resolved yet.
	Unknown Status = iota
	Active
	Inactive
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Session is the authenticated user's session as reported by the auth
// service.
type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Observer is called synchronously on every state transition.
type Observer func(status Status, session *Session)

// State holds the process-wide session state. Legal transitions are
// Unknown -> Active|Inactive, Active -> Inactive and Inactive -> Active;
// the state never returns to Unknown. Observers run synchronously, in
// registration order, before Set returns.
type State struct {
	mu        sync.Mutex
	status    Status
	session   *Session
	observers []Observer
}

// NewState returns a State in the Unknown status.
func NewState() *State {
	return &State{status: Unknown}
}

// OnChange registers an observer. Registration after transitions have
// happened does not replay past transitions.
func (s *State) OnChange(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Current returns the status and, when Active, the session.
func (s *State) Current() (Status, *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.session
}

// Set records the session reported by the auth service. A nil session
// means signed out. Observers are notified on every effective transition,
// including an Active -> Active token refresh that changes the session.
func (s *State) Set(session *Session) {
	s.mu.Lock()
	next := Inactive
	if session != nil {
		next = Active
	}
	changed := next != s.status || (next == Active && session != s.session)
	if !changed {
		s.mu.Unlock()
		return
	}
	from := s.status
	s.status = next
	s.session = session
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	slog.Debug("Session state transition", "from", from.String(), "to", next.String())
	for _, fn := range observers {
		fn(next, session)
	}
}
