package pipeline

import (
	"sync"
	"time"
)

// State is the pipeline's position in the microphone/speaker handover
// cycle. Exactly one instance exists per running pipeline, owned and
// mutated only by the [StateManager].
type State int

const (
	StateIdle State = iota
	StateListening
	StateProcessingSpeech
	StateGeneratingResponse
	StatePlayingTTS
	StateCooldown
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateProcessingSpeech:
		return "processingSpeech"
	case StateGeneratingResponse:
		return "generatingResponse"
	case StatePlayingTTS:
		return "playingTTS"
	case StateCooldown:
		return "cooldown"
	case StateError:
		return "error"
	}
	return "unknown"
}

// validTransitions is the fixed adjacency table; any state may additionally
// transition to StateError, and StateError only back to StateIdle.
var validTransitions = map[State][]State{
	StateIdle:               {StateListening, StateCooldown},
	StateListening:          {StateIdle, StateProcessingSpeech},
	StateProcessingSpeech:   {StateIdle, StateListening, StateGeneratingResponse},
	StateGeneratingResponse: {StatePlayingTTS, StateIdle, StateCooldown},
	StatePlayingTTS:         {StateCooldown, StateIdle},
	StateCooldown:           {StateIdle},
	StateError:              {StateIdle},
}

const defaultCooldownDuration = time.Second

// StateObserver is notified synchronously of every accepted transition,
// before Transition returns.
type StateObserver func(from, to State)

// StateManager is the single source of truth for which audio I/O operation
// is currently legal. Its main job is preventing the synthesized voice from
// re-triggering speech detection: after synthesis the microphone stays
// gated until the cooldown elapses.
type StateManager struct {
	mu sync.Mutex

	state            State
	strict           bool
	cooldownDuration time.Duration
	cooldownTimer    *time.Timer
	cooldownEntered  time.Time
	observer         StateObserver
}

type StateManagerOption func(*StateManager)

// WithStrictTransitions makes invalid transitions rejections instead of
// diagnostics. Callers must treat a rejected transition as a logic error to
// surface, not retry.
func WithStrictTransitions() StateManagerOption {
	return func(m *StateManager) { m.strict = true }
}

// WithCooldownDuration overrides how long the microphone stays gated after
// entering cooldown.
func WithCooldownDuration(d time.Duration) StateManagerOption {
	return func(m *StateManager) { m.cooldownDuration = d }
}

// WithStateObserver registers the manager's single observer callback.
func WithStateObserver(observer StateObserver) StateManagerOption {
	return func(m *StateManager) { m.observer = observer }
}

func NewStateManager(opts ...StateManagerOption) *StateManager {
	m := &StateManager{
		state:            StateIdle,
		cooldownDuration: defaultCooldownDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Transition attempts to move the pipeline to newState and reports whether
// the transition was accepted. Invalid pairs are rejected in strict mode
// and allowed anyway otherwise. Entering StateCooldown records the entry
// time and schedules an automatic return to StateIdle after the cooldown
// duration, unless a manual transition intervenes first.
func (m *StateManager) Transition(newState State) bool {
	m.mu.Lock()

	from := m.state
	if !m.isValidTransition(from, newState) && m.strict {
		m.mu.Unlock()
		return false
	}

	if m.cooldownTimer != nil {
		m.cooldownTimer.Stop()
		m.cooldownTimer = nil
	}

	m.state = newState
	if newState == StateCooldown {
		m.cooldownEntered = time.Now()
		m.cooldownTimer = time.AfterFunc(m.cooldownDuration, m.cooldownElapsed)
	}

	observer := m.observer
	m.mu.Unlock()

	if observer != nil {
		observer(from, newState)
	}
	return true
}

func (m *StateManager) isValidTransition(from, to State) bool {
	if to == StateError {
		return true
	}

	for _, valid := range validTransitions[from] {
		if to == valid {
			return true
		}
	}
	return false
}

func (m *StateManager) cooldownElapsed() {
	m.mu.Lock()
	if m.state != StateCooldown {
		m.mu.Unlock()
		return
	}
	from := m.state
	m.state = StateIdle
	m.cooldownTimer = nil
	observer := m.observer
	m.mu.Unlock()

	if observer != nil {
		observer(from, StateIdle)
	}
}

func (m *StateManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CanActivateMicrophone reports whether opening the microphone is legal.
// True only in idle/listening, and only once the cooldown after the last
// synthesis playback has elapsed. The gate holds even after the state has
// returned to idle.
func (m *StateManager) CanActivateMicrophone() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateIdle && m.state != StateListening {
		return false
	}

	if m.cooldownEntered.IsZero() {
		return true
	}
	return time.Since(m.cooldownEntered) >= m.cooldownDuration
}

// CanPlayTTS reports whether synthesized audio may be played right now.
func (m *StateManager) CanPlayTTS() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateGeneratingResponse
}

// Reset unconditionally forces idle and clears the cooldown timer and the
// last-synthesis timestamp. This is the error-recovery escape hatch and is
// callable from any state.
func (m *StateManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cooldownTimer != nil {
		m.cooldownTimer.Stop()
		m.cooldownTimer = nil
	}
	m.state = StateIdle
	m.cooldownEntered = time.Time{}
}
