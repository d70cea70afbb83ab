package anim

import (
	"fmt"
	"log/slog"
	"time"
)

// DefaultDuration is used by the entry points that take no explicit duration.
const DefaultDuration = 1000 * time.Millisecond

// State is the lifecycle state of a PropertyAnimator.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateComplete
	// StateRetired marks an animator superseded by a newer animation of the
	// same property. It never wrote its end value or fired its event.
	StateRetired
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateRetired:
		return "retired"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// AnimationTask describes one interpolation of a property. End is written
// verbatim by the final tick, so chained animations start from the exact
// value the previous one was asked to reach.
type AnimationTask struct {
	Property Property
	Start    Vector3
	Delta    Vector3
	End      Vector3
	Duration time.Duration
	Easing   EasingFunc
}

// TaskTo builds a task moving p from start to end.
func TaskTo(p Property, start, end Vector3, duration time.Duration, easing EasingFunc) AnimationTask {
	return AnimationTask{
		Property: p,
		Start:    start,
		Delta:    end.Sub(start),
		End:      end,
		Duration: duration,
		Easing:   easing,
	}
}

// TaskBy builds a task moving p from start by delta.
func TaskBy(p Property, start, delta Vector3, duration time.Duration, easing EasingFunc) AnimationTask {
	return AnimationTask{
		Property: p,
		Start:    start,
		Delta:    delta,
		End:      start.Add(delta),
		Duration: duration,
		Easing:   easing,
	}
}

// PropertyAnimator drives one property of an entity from a start value to an
// end value across ticks.
type PropertyAnimator struct {
	src        TickSource
	entity     Entity
	task       AnimationTask
	generation uint64
	startTime  time.Duration
	state      State
	progress   float64

	then []func(*PropertyAnimator)
	done chan struct{}
}

// AnimateProperty starts moving p on entity from start by delta.
func AnimateProperty(src TickSource, entity Entity, p Property, start, delta Vector3, duration time.Duration, easing EasingFunc) (*PropertyAnimator, error) {
	return Animate(src, entity, TaskBy(p, start, delta, duration, easing))
}

// Animate starts the given task. The start time is read from src now and the
// first sample is taken on the next tick.
//
// Starting an animation on a property that is already animating supersedes
// the older animator: it retires on its next tick without writing or firing
// its completion event.
func Animate(src TickSource, entity Entity, task AnimationTask) (*PropertyAnimator, error) {
	if src == nil || entity == nil {
		panic("anim: Animate needs a tick source and an entity")
	}
	if _, ok := entity.Get(task.Property); !ok {
		return nil, fmt.Errorf("animate %s: %w", task.Property, ErrUnknownProperty)
	}
	task.Easing = orDefaultEasing(task.Easing)
	if task.Duration <= 0 {
		slog.Debug("non-positive animation duration, completing on first tick",
			"property", task.Property, "duration", task.Duration)
	}

	a := &PropertyAnimator{
		src:    src,
		entity: entity,
		task:   task,
		done:   make(chan struct{}),
	}
	a.generation = entity.Generations().Next(task.Property)
	a.startTime = src.Now()
	a.state = StateRunning
	src.RequestTick(a.step)
	return a, nil
}

func (a *PropertyAnimator) step(now time.Duration) {
	if a.state != StateRunning {
		return
	}
	if a.entity.Generations().Current(a.task.Property) != a.generation {
		a.finish(StateRetired)
		return
	}

	t := a.normalized(now)
	a.progress = t
	if t >= 1 {
		a.entity.Set(a.task.Property, a.task.End)
		a.finish(StateComplete)
		return
	}

	p := a.task.Easing(t)
	a.entity.Set(a.task.Property, a.task.Start.Add(a.task.Delta.Scale(p)))
	a.src.RequestTick(a.step)
}

func (a *PropertyAnimator) normalized(now time.Duration) float64 {
	if a.task.Duration <= 0 {
		return 1
	}
	t := float64(now-a.startTime) / float64(a.task.Duration)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (a *PropertyAnimator) finish(state State) {
	a.state = state
	if state == StateComplete {
		a.entity.Trigger(a.task.Property.CompleteEvent())
	}
	close(a.done)

	then := a.then
	a.then = nil
	for _, fn := range then {
		fn(a)
	}
}

// Then registers fn to run once when the animator stops running, whether it
// completed or was retired. If it already stopped, fn runs immediately.
func (a *PropertyAnimator) Then(fn func(*PropertyAnimator)) {
	if fn == nil {
		return
	}
	if a.state == StateComplete || a.state == StateRetired {
		fn(a)
		return
	}
	a.then = append(a.then, fn)
}

// Done returns a channel that is closed when the animator stops running.
func (a *PropertyAnimator) Done() <-chan struct{} {
	return a.done
}

// State returns the animator's lifecycle state.
func (a *PropertyAnimator) State() State {
	return a.state
}

// Progress returns the normalized time of the latest sample in [0,1].
func (a *PropertyAnimator) Progress() float64 {
	return a.progress
}

// Task returns the task being animated.
func (a *PropertyAnimator) Task() AnimationTask {
	return a.task
}

// Generation returns the property generation this animator owns.
func (a *PropertyAnimator) Generation() uint64 {
	return a.generation
}

// StartTime returns the tick-source time the animation started at.
func (a *PropertyAnimator) StartTime() time.Duration {
	return a.startTime
}
