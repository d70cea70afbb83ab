// Package camera provides an animatable 3D camera built on the anim package.
//
// A Camera owns two vector properties, Position and Target, that readers such
// as renderers and debug overlays may load at any time. MoveTo and LookAt
// start property animations driven by the camera's tick source; completion is
// reported through the camera's event hub ("positionComplete",
// "targetComplete") and through the returned animator.
package camera

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/camanim/anim"
)

const (
	EventPositionComplete = "positionComplete"
	EventTargetComplete   = "targetComplete"
)

// Options configures a new Camera.
type Options struct {
	Position anim.Vector3
	Target   anim.Vector3
	// Up defaults to +Y when zero.
	Up anim.Vector3
	// Debug logs every property write at debug level.
	Debug  bool
	Logger *slog.Logger
}

// Camera is an entity with an animated position and look-at target.
//
// Position and Target are written only by the camera's animators; readers may
// observe values mid-interpolation.
type Camera struct {
	Position anim.Vector3
	Target   anim.Vector3
	Up       anim.Vector3
	Debug    bool

	src         anim.TickSource
	logger      *slog.Logger
	events      *anim.EventHub[*Camera]
	generations *anim.Generations
}

// New creates a camera whose animations are driven by src.
func New(src anim.TickSource, opts Options) *Camera {
	if src == nil {
		panic("camera: nil tick source")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	up := opts.Up
	if up == (anim.Vector3{}) {
		up = anim.Vec3(0, 1, 0)
	}

	c := &Camera{
		Position:    opts.Position,
		Target:      opts.Target,
		Up:          up,
		Debug:       opts.Debug,
		src:         src,
		logger:      logger,
		generations: anim.NewGenerations(),
	}
	c.events = anim.NewEventHub(c, logger)
	return c
}

// MoveTo animates Position from its current value to p. The final tick
// writes p exactly.
func (c *Camera) MoveTo(p anim.Vector3, duration time.Duration, easing anim.EasingFunc) *anim.PropertyAnimator {
	return c.animate(anim.TaskTo(anim.PropertyPosition, c.Position, p, duration, easing))
}

// LookAt animates Target from its current value to p.
func (c *Camera) LookAt(p anim.Vector3, duration time.Duration, easing anim.EasingFunc) *anim.PropertyAnimator {
	return c.animate(anim.TaskTo(anim.PropertyTarget, c.Target, p, duration, easing))
}

// MoveToDefault is MoveTo with anim.DefaultDuration and EaseInOutQuad.
func (c *Camera) MoveToDefault(p anim.Vector3) *anim.PropertyAnimator {
	return c.MoveTo(p, anim.DefaultDuration, anim.EaseInOutQuad)
}

// LookAtDefault is LookAt with anim.DefaultDuration and EaseInOutQuad.
func (c *Camera) LookAtDefault(p anim.Vector3) *anim.PropertyAnimator {
	return c.LookAt(p, anim.DefaultDuration, anim.EaseInOutQuad)
}

func (c *Camera) animate(task anim.AnimationTask) *anim.PropertyAnimator {
	a, err := anim.Animate(c.src, c, task)
	if err != nil {
		// both properties always exist on a camera
		panic(err)
	}
	return a
}

// On registers fn for every occurrence of event.
func (c *Camera) On(event string, fn anim.Listener[*Camera]) anim.Subscription {
	return c.events.On(event, fn)
}

// Once registers fn for the next occurrence of event.
func (c *Camera) Once(event string, fn anim.Listener[*Camera]) anim.Subscription {
	return c.events.Once(event, fn)
}

// Events exposes the camera's event hub.
func (c *Camera) Events() *anim.EventHub[*Camera] {
	return c.events
}

// Get implements anim.Entity.
func (c *Camera) Get(p anim.Property) (anim.Vector3, bool) {
	switch p {
	case anim.PropertyPosition:
		return c.Position, true
	case anim.PropertyTarget:
		return c.Target, true
	default:
		return anim.Vector3{}, false
	}
}

// Set implements anim.Entity.
func (c *Camera) Set(p anim.Property, v anim.Vector3) {
	switch p {
	case anim.PropertyPosition:
		c.Position = v
	case anim.PropertyTarget:
		c.Target = v
	default:
		return
	}
	if c.Debug {
		c.logger.Debug("camera property updated", "property", p.String(), "value", v.String())
	}
}

// Generations implements anim.Entity.
func (c *Camera) Generations() *anim.Generations {
	return c.generations
}

// Trigger implements anim.Entity.
func (c *Camera) Trigger(event string) {
	c.events.Trigger(event)
}

// ViewMatrix returns the right-handed look-at matrix for the current
// position and target.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position.Mgl(), c.Target.Mgl(), c.Up.Mgl())
}

// Forward returns the unit vector from Position towards Target, or the zero
// vector when they coincide.
func (c *Camera) Forward() anim.Vector3 {
	dir := c.Target.Sub(c.Position).Mgl()
	if dir.Len() == 0 {
		return anim.Vector3{}
	}
	return anim.FromMgl(dir.Normalize())
}

// Distance returns the distance between Position and Target.
func (c *Camera) Distance() float64 {
	return c.Target.Sub(c.Position).Mgl().Len()
}
