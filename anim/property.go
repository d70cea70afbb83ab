package anim

import (
	"errors"
	"strconv"
	"sync"

	"github.com/kamstrup/intmap"
)

// ErrUnknownProperty is returned when an entity does not own a property.
var ErrUnknownProperty = errors.New("unknown property")

// Property identifies one animatable vector property of an entity.
type Property uint32

const (
	PropertyPosition Property = iota + 1
	PropertyTarget
)

var (
	propertyMu    sync.RWMutex
	propertyNames = map[Property]string{
		PropertyPosition: "position",
		PropertyTarget:   "target",
	}
	propertyIds = map[string]Property{
		"position": PropertyPosition,
		"target":   PropertyTarget,
	}
)

// DefineProperty returns the Property registered under name, registering it
// first if needed.
func DefineProperty(name string) Property {
	propertyMu.Lock()
	defer propertyMu.Unlock()

	if p, ok := propertyIds[name]; ok {
		return p
	}
	p := Property(len(propertyIds) + 1)
	propertyIds[name] = p
	propertyNames[p] = name
	return p
}

func (p Property) String() string {
	propertyMu.RLock()
	defer propertyMu.RUnlock()

	if name, ok := propertyNames[p]; ok {
		return name
	}
	return "property(" + strconv.FormatUint(uint64(p), 10) + ")"
}

// CompleteEvent is the name of the event fired when an animation of p
// reaches its end value, e.g. "positionComplete".
func (p Property) CompleteEvent() string {
	return p.String() + "Complete"
}

// Entity owns the vector properties a PropertyAnimator writes.
type Entity interface {
	// Get returns the current value of p, or false if the entity has no such
	// property.
	Get(p Property) (Vector3, bool)
	// Set overwrites the value of p.
	Set(p Property, v Vector3)
	// Generations returns the per-property generation counters.
	Generations() *Generations
	// Trigger fires a named event on the entity's event hub.
	Trigger(event string)
}

// Generations tracks a monotonically increasing counter per property. Every
// new animation of a property bumps its counter, so older animators of the
// same property can tell they were superseded.
type Generations struct {
	counters *intmap.Map[Property, uint64]
}

// NewGenerations creates an empty counter set.
func NewGenerations() *Generations {
	return &Generations{
		counters: intmap.New[Property, uint64](4),
	}
}

// Next bumps the counter for p and returns the new value.
func (g *Generations) Next(p Property) uint64 {
	n, _ := g.counters.Get(p)
	n++
	g.counters.Put(p, n)
	return n
}

// Current returns the counter for p, zero if p was never animated.
func (g *Generations) Current(p Property) uint64 {
	n, _ := g.counters.Get(p)
	return n
}
