// Package viewmodel holds the per-screen state machines of the client. Each
// model moves Idle -> Loading -> Loaded or Failed, keeps a user-facing
// message for failures and notifies observers after every change.
//
// Loads are not de-duplicated. When two run at once, whichever finishes last
// decides the state.
package viewmodel

import "sync"

type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// screen is the state shared by all models. Embedders guard their own fields
// with mu as well.
type screen struct {
	mu        sync.Mutex
	state     State
	message   string
	showAlert bool
	observers []func()
}

// OnChange registers fn to run after every state change. Observers run on the
// goroutine that caused the change, without any lock held.
func (s *screen) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Message is the text of the last failure, empty after a success.
func (s *screen) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// ShowAlert reports whether the last failure still waits to be shown.
func (s *screen) ShowAlert() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showAlert
}

// DismissAlert clears the alert flag, keeping the message.
func (s *screen) DismissAlert() {
	s.mu.Lock()
	s.showAlert = false
	s.mu.Unlock()
	s.notify()
}

func (s *screen) notify() {
	s.mu.Lock()
	observers := append([]func(){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

func (s *screen) begin() {
	s.mu.Lock()
	s.state = Loading
	s.mu.Unlock()
	s.notify()
}

// finish records the outcome of an operation; apply runs under the lock on
// success so embedders can publish their data in the same step.
func (s *screen) finish(msg string, apply func()) {
	s.mu.Lock()
	if msg != "" {
		s.state = Failed
		s.message = msg
		s.showAlert = true
	} else {
		s.state = Loaded
		s.message = ""
		s.showAlert = false
		if apply != nil {
			apply()
		}
	}
	s.mu.Unlock()
	s.notify()
}
