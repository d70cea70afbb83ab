package anim

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// EasingFunc remaps normalized elapsed time t in [0,1] to animation progress.
// Every function in this package returns exactly 0 for t=0 and exactly 1 for
// t=1. Interior values may leave [0,1] (see EaseOutBack).
type EasingFunc func(t float64) float64

// ErrUnknownEasing is returned by Easing for names it does not know.
var ErrUnknownEasing = errors.New("unknown easing")

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// EaseInQuad starts slow and accelerates: t².
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad starts fast and decelerates: t·(2−t).
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutQuad accelerates through the first half and decelerates through
// the second. It is the default easing for every animation entry point.
//
//	t < 0.5:  2t²
//	t >= 0.5: 1 − (−2t+2)²/2
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// EaseInCubic starts slower than EaseInQuad: t³.
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic decelerates harder than EaseOutQuad: 1 − (1−t)³.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutCubic is the cubic counterpart of EaseInOutQuad.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseOutExpo approaches the target exponentially: 1 − 2^(−10t).
func EaseOutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

const (
	backOvershoot = 1.70158
	backScale     = backOvershoot + 1
)

// EaseOutBack overshoots the target by roughly 10% before settling.
func EaseOutBack(t float64) float64 {
	// the polynomial is not exact at the boundaries in floating point
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	u := t - 1
	return 1 + backScale*u*u*u + backOvershoot*u*u
}

var easings = map[string]EasingFunc{
	"linear":         Linear,
	"easeinquad":     EaseInQuad,
	"easeoutquad":    EaseOutQuad,
	"easeinoutquad":  EaseInOutQuad,
	"easeincubic":    EaseInCubic,
	"easeoutcubic":   EaseOutCubic,
	"easeinoutcubic": EaseInOutCubic,
	"easeoutexpo":    EaseOutExpo,
	"easeoutback":    EaseOutBack,
}

var easingNames = []string{
	"easeInCubic",
	"easeInOutCubic",
	"easeInOutQuad",
	"easeInQuad",
	"easeOutBack",
	"easeOutCubic",
	"easeOutExpo",
	"easeOutQuad",
	"linear",
}

// Easing looks up an easing function by name, ignoring case.
// An empty name resolves to EaseInOutQuad.
func Easing(name string) (EasingFunc, error) {
	if name == "" {
		return EaseInOutQuad, nil
	}
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// EasingNames returns the names accepted by Easing in sorted order.
func EasingNames() []string {
	return slices.Clone(easingNames)
}

func orDefaultEasing(fn EasingFunc) EasingFunc {
	if fn == nil {
		return EaseInOutQuad
	}
	return fn
}
