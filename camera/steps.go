package camera

import (
	"time"

	"github.com/plus3/camanim/anim"
)

// MoveStep returns a queue action that moves the camera to p and finishes
// when that animation stops.
func (c *Camera) MoveStep(p anim.Vector3) anim.Action {
	return func(duration time.Duration, easing anim.EasingFunc, done func()) {
		c.MoveTo(p, duration, easing).Then(func(*anim.PropertyAnimator) { done() })
	}
}

// LookStep returns a queue action that turns the camera towards p.
func (c *Camera) LookStep(p anim.Vector3) anim.Action {
	return func(duration time.Duration, easing anim.EasingFunc, done func()) {
		c.LookAt(p, duration, easing).Then(func(*anim.PropertyAnimator) { done() })
	}
}

// MoveAndLookStep returns a queue action animating position and target
// together. It finishes once both animations have stopped.
func (c *Camera) MoveAndLookStep(position, target anim.Vector3) anim.Action {
	return func(duration time.Duration, easing anim.EasingFunc, done func()) {
		remaining := 2
		join := func(*anim.PropertyAnimator) {
			remaining--
			if remaining == 0 {
				done()
			}
		}
		c.MoveTo(position, duration, easing).Then(join)
		c.LookAt(target, duration, easing).Then(join)
	}
}
