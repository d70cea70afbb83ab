package anim

import (
	"log/slog"
	"time"
)

// Action runs one queued step. It must call done exactly when the step has
// finished; the manager starts the next step only then. Calls to done after
// the first, or from a step that is no longer current, are ignored.
type Action func(duration time.Duration, easing EasingFunc, done func())

type queuedStep struct {
	action   Action
	duration time.Duration
	easing   EasingFunc
}

// StepOption customizes a step added with AddAnimation.
type StepOption func(*queuedStep)

// WithDuration sets the duration handed to the step's action.
func WithDuration(d time.Duration) StepOption {
	return func(s *queuedStep) { s.duration = d }
}

// WithEasing sets the easing handed to the step's action.
func WithEasing(fn EasingFunc) StepOption {
	return func(s *queuedStep) { s.easing = orDefaultEasing(fn) }
}

// ManagerStats provides statistics about queue execution.
type ManagerStats struct {
	Started   int64
	Completed int64
	Dropped   int64
	Faulted   int64
	Pending   int
	Running   bool
}

// Manager runs queued steps one after another in FIFO order. At most one
// step is in flight at any time.
type Manager struct {
	logger *slog.Logger
	queue  []queuedStep

	running  bool
	current  uint64
	seq      uint64
	invoking bool
	resume   bool

	started   int64
	completed int64
	dropped   int64
	faulted   int64
}

// NewManager creates an idle manager. A nil logger uses slog.Default().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger: logger,
		queue:  make([]queuedStep, 0),
	}
}

// AddAnimation queues action with DefaultDuration and EaseInOutQuad unless
// overridden by opts.
func (m *Manager) AddAnimation(action Action, opts ...StepOption) {
	step := queuedStep{
		action:   action,
		duration: DefaultDuration,
		easing:   EaseInOutQuad,
	}
	for _, opt := range opts {
		opt(&step)
	}
	m.push(step)
}

// Enqueue appends a step to the tail of the queue. If the manager is idle the
// step starts immediately.
func (m *Manager) Enqueue(action Action, duration time.Duration, easing EasingFunc) {
	m.push(queuedStep{
		action:   action,
		duration: duration,
		easing:   orDefaultEasing(easing),
	})
}

func (m *Manager) push(step queuedStep) {
	if step.action == nil {
		panic("anim: cannot queue a nil action")
	}
	m.queue = append(m.queue, step)
	if !m.running {
		m.advance()
	}
}

// ResetQueue drops every step that has not started yet. A step already
// running is left alone; when it finishes the manager goes idle.
func (m *Manager) ResetQueue() {
	m.dropped += int64(len(m.queue))
	clear(m.queue)
	m.queue = m.queue[:0]
}

// Running reports whether a step is in flight.
func (m *Manager) Running() bool {
	return m.running
}

// Len returns the number of steps waiting to start.
func (m *Manager) Len() int {
	return len(m.queue)
}

// Stats returns statistics about queue execution.
func (m *Manager) Stats() ManagerStats {
	return ManagerStats{
		Started:   m.started,
		Completed: m.completed,
		Dropped:   m.dropped,
		Faulted:   m.faulted,
		Pending:   len(m.queue),
		Running:   m.running,
	}
}

// advance starts queued steps until one of them stays in flight or the queue
// runs dry. Steps that finish synchronously loop here instead of recursing.
func (m *Manager) advance() {
	m.invoking = true
	defer func() { m.invoking = false }()

	for {
		if len(m.queue) == 0 {
			m.running = false
			m.current = 0
			return
		}

		step := m.queue[0]
		m.queue[0] = queuedStep{}
		m.queue = m.queue[1:]

		m.seq++
		id := m.seq
		m.current = id
		m.running = true
		m.resume = false
		m.started++

		m.invoke(id, step)
		if !m.resume {
			return
		}
	}
}

func (m *Manager) invoke(id uint64, step queuedStep) {
	defer func() {
		if r := recover(); r != nil {
			m.faulted++
			m.logger.Error("animation step panicked", "step", id, "panic", r)
			m.complete(id)
		}
	}()
	step.action(step.duration, step.easing, func() { m.complete(id) })
}

func (m *Manager) complete(id uint64) {
	if id != m.current {
		return
	}
	m.current = 0
	m.completed++

	if m.invoking {
		m.resume = true
		return
	}
	m.advance()
}
