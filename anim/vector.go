// Package anim provides time-driven interpolation of 3D vector properties.
//
// An external tick source drives everything: a PropertyAnimator samples an
// easing function once per tick and writes the owning entity's property, an
// EventHub fans out completion events, and a Manager chains independent
// animation steps so that at most one runs at a time.
//
// None of the types in this package are safe for concurrent use. All
// operations must happen on the goroutine that delivers ticks.
package anim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 is a plain 3-component value.
type Vector3 struct {
	X, Y, Z float64
}

// Vec3 creates a Vector3 from its components
func Vec3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of v and o
func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the component-wise difference of v and o
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale multiplies every component by k
func (v Vector3) Scale(k float64) Vector3 { return Vector3{v.X * k, v.Y * k, v.Z * k} }

// Lerp returns v + (to-v)*p. p may leave [0,1] for overshooting curves.
func (v Vector3) Lerp(to Vector3, p float64) Vector3 {
	return v.Add(to.Sub(v).Scale(p))
}

// Mgl converts v into a mathgl vector.
func (v Vector3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// FromMgl converts a mathgl vector into a Vector3.
func FromMgl(m mgl64.Vec3) Vector3 {
	return Vector3{X: m[0], Y: m[1], Z: m[2]}
}

func (v Vector3) String() string {
	return fmt.Sprintf("{x=%.2f, y=%.2f, z=%.2f}", v.X, v.Y, v.Z)
}
