package orchestrator

import (
	"sync"
	"time"
)

// State is the notifier position in the per-operation feedback machine:
// Idle → Pending → {Success, Error} → Idle.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSuccess
	StateError
)

// String returns the state name as shown to API consumers.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Notice is one observable snapshot of the notifier.
type Notice struct {
	State   State
	Message string
}

// Default display durations for terminal notices. Success clears quickly;
// errors are held a little longer so the user can read the message.
const (
	DefaultSuccessHold = 2 * time.Second
	DefaultErrorHold   = 3 * time.Second
)

// Notifier is the single source of truth for in-flight operation feedback.
// Terminal notices (Success, Error) auto-dismiss back to Idle after their
// hold duration; the timers are feedback-only and never cancel the
// underlying remote operation. A newer notice supersedes any scheduled
// dismissal of an older one.
type Notifier struct {
	mu          sync.Mutex
	current     Notice
	gen         uint64
	successHold time.Duration
	errorHold   time.Duration
	listener    func(Notice)
}

// NewNotifier creates a notifier with the given hold durations; zero values
// fall back to the defaults.
func NewNotifier(successHold, errorHold time.Duration) *Notifier {
	if successHold <= 0 {
		successHold = DefaultSuccessHold
	}
	if errorHold <= 0 {
		errorHold = DefaultErrorHold
	}
	return &Notifier{
		successHold: successHold,
		errorHold:   errorHold,
	}
}

// Subscribe registers the single listener invoked on every notice change,
// including the auto-dismiss transition back to Idle. Later calls replace
// the listener.
func (n *Notifier) Subscribe(fn func(Notice)) {
	n.mu.Lock()
	n.listener = fn
	n.mu.Unlock()
}

// Current returns the latest notice.
func (n *Notifier) Current() Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Pending publishes an in-progress notice. It stays until a terminal notice
// replaces it; pending notices never time out on their own.
func (n *Notifier) Pending(message string) {
	n.publish(Notice{State: StatePending, Message: message}, 0)
}

// Success publishes a success notice, auto-dismissed after the success hold.
func (n *Notifier) Success(message string) {
	n.publish(Notice{State: StateSuccess, Message: message}, n.successHold)
}

// Fail publishes an error notice, auto-dismissed after the error hold.
func (n *Notifier) Fail(message string) {
	n.publish(Notice{State: StateError, Message: message}, n.errorHold)
}

// Info publishes a terminal notice with the error hold regardless of state.
// Used for standalone probes whose result the user should have time to read.
func (n *Notifier) Info(state State, message string) {
	n.publish(Notice{State: state, Message: message}, n.errorHold)
}

func (n *Notifier) publish(notice Notice, hold time.Duration) {
	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.current = notice
	fn := n.listener
	n.mu.Unlock()

	if fn != nil {
		fn(notice)
	}

	if hold > 0 {
		time.AfterFunc(hold, func() { n.reset(gen) })
	}
}

// reset returns to Idle unless a newer notice superseded gen in the
// meantime.
func (n *Notifier) reset(gen uint64) {
	n.mu.Lock()
	if n.gen != gen {
		n.mu.Unlock()
		return
	}
	n.gen++
	n.current = Notice{State: StateIdle}
	fn := n.listener
	cur := n.current
	n.mu.Unlock()

	if fn != nil {
		fn(cur)
	}
}
