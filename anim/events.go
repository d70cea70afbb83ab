package anim

import (
	"log/slog"
	"slices"
)

// Listener receives the owner of the hub an event fired on.
type Listener[T any] func(owner T)

type listener[T any] struct {
	fn      Listener[T]
	once    bool
	removed bool
}

// Subscription is the handle returned when registering a listener.
// The zero value is valid and Off is a no-op on it.
type Subscription struct {
	off func()
}

// Off detaches the listener. Calling Off more than once is harmless, and a
// listener detached while an event is being delivered is not invoked for the
// rest of that delivery.
func (s Subscription) Off() {
	if s.off != nil {
		s.off()
	}
}

// EventHub is a per-owner registry of named-event listeners.
type EventHub[T any] struct {
	owner     T
	logger    *slog.Logger
	listeners map[string][]*listener[T]
	faults    int
}

// NewEventHub creates a hub whose listeners receive owner. A nil logger
// falls back to slog.Default().
func NewEventHub[T any](owner T, logger *slog.Logger) *EventHub[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHub[T]{
		owner:     owner,
		logger:    logger,
		listeners: make(map[string][]*listener[T]),
	}
}

// On registers fn for every future trigger of name.
func (h *EventHub[T]) On(name string, fn Listener[T]) Subscription {
	return h.add(name, fn, false)
}

// Once registers fn for the next trigger of name only.
func (h *EventHub[T]) Once(name string, fn Listener[T]) Subscription {
	return h.add(name, fn, true)
}

func (h *EventHub[T]) add(name string, fn Listener[T], once bool) Subscription {
	if fn == nil {
		panic("anim: nil listener for event " + name)
	}
	l := &listener[T]{fn: fn, once: once}
	h.listeners[name] = append(h.listeners[name], l)
	return Subscription{off: func() { h.remove(name, l) }}
}

func (h *EventHub[T]) remove(name string, l *listener[T]) {
	if l.removed {
		return
	}
	l.removed = true

	list := slices.DeleteFunc(slices.Clone(h.listeners[name]), func(o *listener[T]) bool {
		return o == l
	})
	if len(list) == 0 {
		delete(h.listeners, name)
		return
	}
	h.listeners[name] = list
}

// Trigger invokes the listeners registered for name in registration order.
// Triggering a name nobody listens to is a no-op. Listeners added while the
// event is being delivered run from the next trigger on.
//
// A listener that panics is recovered and logged; the remaining listeners
// still run.
func (h *EventHub[T]) Trigger(name string) {
	snapshot := h.listeners[name]
	if len(snapshot) == 0 {
		return
	}

	for _, l := range snapshot {
		if l.removed {
			continue
		}
		if l.once {
			h.remove(name, l)
		}
		h.invoke(name, l.fn)
	}
}

func (h *EventHub[T]) invoke(name string, fn Listener[T]) {
	defer func() {
		if r := recover(); r != nil {
			h.faults++
			h.logger.Error("event listener panicked", "event", name, "panic", r)
		}
	}()
	fn(h.owner)
}

// Listeners returns the number of listeners registered for name.
func (h *EventHub[T]) Listeners(name string) int {
	return len(h.listeners[name])
}

// Names returns the event names that currently have listeners, sorted.
func (h *EventHub[T]) Names() []string {
	names := make([]string, 0, len(h.listeners))
	for name := range h.listeners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Faults returns how many listener panics have been recovered so far.
func (h *EventHub[T]) Faults() int {
	return h.faults
}
