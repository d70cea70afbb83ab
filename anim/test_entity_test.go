package anim_test

import (
	"time"

	"github.com/plus3/camanim/anim"
)

// testEntity records every write and event so tests can check ordering.
type testEntity struct {
	values map[anim.Property]anim.Vector3
	gens   *anim.Generations
	hub    *anim.EventHub[*testEntity]
	log    []string
	writes []anim.Vector3
}

func newTestEntity(position anim.Vector3) *testEntity {
	e := &testEntity{
		values: map[anim.Property]anim.Vector3{
			anim.PropertyPosition: position,
			anim.PropertyTarget:   {},
		},
		gens: anim.NewGenerations(),
	}
	e.hub = anim.NewEventHub(e, nil)
	return e
}

func (e *testEntity) Get(p anim.Property) (anim.Vector3, bool) {
	v, ok := e.values[p]
	return v, ok
}

func (e *testEntity) Set(p anim.Property, v anim.Vector3) {
	e.values[p] = v
	e.writes = append(e.writes, v)
	e.log = append(e.log, "write "+p.String())
}

func (e *testEntity) Generations() *anim.Generations {
	return e.gens
}

func (e *testEntity) Trigger(event string) {
	e.log = append(e.log, "event "+event)
	e.hub.Trigger(event)
}

func (e *testEntity) position() anim.Vector3 {
	return e.values[anim.PropertyPosition]
}

func (e *testEntity) count(entry string) int {
	n := 0
	for _, l := range e.log {
		if l == entry {
			n++
		}
	}
	return n
}

// replayTicker ignores the at-most-once contract and hands every callback it
// has ever seen the next timestamp, simulating stray ticks.
type replayTicker struct {
	now       time.Duration
	callbacks []anim.TickFunc
}

func (r *replayTicker) Now() time.Duration { return r.now }

func (r *replayTicker) RequestTick(fn anim.TickFunc) {
	r.callbacks = append(r.callbacks, fn)
}

func (r *replayTicker) tick(now time.Duration) {
	r.now = now
	for _, fn := range append([]anim.TickFunc(nil), r.callbacks...) {
		fn(now)
	}
}

func newManualTicker() (*anim.FrameTicker, *anim.ManualClock) {
	clock := anim.NewManualClock(0)
	return anim.NewFrameTicker(clock, nil), clock
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
