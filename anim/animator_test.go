package anim_test

import (
	"math"
	"testing"
	"time"

	"github.com/plus3/camanim/anim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimateProperty(t *testing.T) {
	t.Run("moves from start to end and fires once", func(t *testing.T) {
		ticker, _ := newManualTicker()
		e := newTestEntity(anim.Vec3(0, 10, 30))
		fired := 0
		e.hub.On("positionComplete", func(*testEntity) { fired++ })

		start := e.position()
		a, err := anim.Animate(ticker, e, anim.TaskTo(anim.PropertyPosition, start, anim.Vec3(5, 5, 5), ms(1500), anim.EaseInOutQuad))
		require.NoError(t, err)
		assert.Equal(t, anim.StateRunning, a.State())

		ticker.Tick(0)
		assert.Equal(t, anim.Vec3(0, 10, 30), e.position())

		ticker.Tick(ms(750))
		assert.InDelta(t, 2.5, e.position().X, 1e-9)
		assert.InDelta(t, 7.5, e.position().Y, 1e-9)
		assert.InDelta(t, 17.5, e.position().Z, 1e-9)
		assert.Equal(t, 0, fired)

		ticker.Tick(ms(1499))
		assert.Equal(t, 0, fired)

		ticker.Tick(ms(1500))
		assert.Equal(t, anim.Vec3(5, 5, 5), e.position())
		assert.Equal(t, 1, fired)
		assert.Equal(t, anim.StateComplete, a.State())
		assert.Equal(t, 1.0, a.Progress())
		assert.Equal(t, 0, ticker.Pending())
	})

	t.Run("final write is exact regardless of easing", func(t *testing.T) {
		sloppy := func(t float64) float64 { return t * 0.999 }
		for name, easing := range map[string]anim.EasingFunc{
			"back":   anim.EaseOutBack,
			"sloppy": sloppy,
			"expo":   anim.EaseOutExpo,
		} {
			t.Run(name, func(t *testing.T) {
				ticker, _ := newManualTicker()
				start := anim.Vec3(0.1, 0.2, 0.3)
				e := newTestEntity(start)
				delta := anim.Vec3(0.7, -0.35, 1e-3)

				_, err := anim.AnimateProperty(ticker, e, anim.PropertyPosition, start, delta, ms(100), easing)
				require.NoError(t, err)
				for now := 0; now <= 120; now += 7 {
					ticker.Tick(ms(now))
				}

				assert.Equal(t, start.Add(delta), e.position())
			})
		}
	})

	t.Run("completion event follows the last write", func(t *testing.T) {
		ticker, _ := newManualTicker()
		e := newTestEntity(anim.Vector3{})

		_, err := anim.AnimateProperty(ticker, e, anim.PropertyPosition, anim.Vector3{}, anim.Vec3(1, 1, 1), ms(30), anim.Linear)
		require.NoError(t, err)
		for now := 0; now <= 40; now += 10 {
			ticker.Tick(ms(now))
		}

		require.NotEmpty(t, e.log)
		assert.Equal(t, "event positionComplete", e.log[len(e.log)-1])
		assert.Equal(t, "write position", e.log[len(e.log)-2])
		assert.Equal(t, 1, e.count("event positionComplete"))
	})

	t.Run("stray ticks after completion are ignored", func(t *testing.T) {
		ticker := &replayTicker{}
		e := newTestEntity(anim.Vector3{})

		_, err := anim.AnimateProperty(ticker, e, anim.PropertyPosition, anim.Vector3{}, anim.Vec3(2, 0, 0), ms(100), anim.Linear)
		require.NoError(t, err)
		ticker.tick(ms(50))
		ticker.tick(ms(100))
		writes := len(e.writes)

		ticker.tick(ms(150))
		ticker.tick(ms(200))

		assert.Equal(t, writes, len(e.writes))
		assert.Equal(t, 1, e.count("event positionComplete"))
		assert.Equal(t, anim.Vec3(2, 0, 0), e.position())
	})

	t.Run("zero duration completes on the first tick", func(t *testing.T) {
		for _, d := range []time.Duration{0, -ms(10)} {
			ticker, _ := newManualTicker()
			e := newTestEntity(anim.Vec3(1, 1, 1))

			a, err := anim.AnimateProperty(ticker, e, anim.PropertyPosition, anim.Vec3(1, 1, 1), anim.Vec3(1, 2, 3), d, nil)
			require.NoError(t, err)
			ticker.Tick(0)

			assert.Equal(t, anim.StateComplete, a.State())
			assert.Equal(t, anim.Vec3(2, 3, 4), e.position())
			assert.False(t, math.IsNaN(e.position().X))
			assert.Equal(t, 1, e.count("event positionComplete"))
		}
	})

	t.Run("progress depends on elapsed time, not tick count", func(t *testing.T) {
		smooth, _ := newManualTicker()
		jerky, _ := newManualTicker()
		a := newTestEntity(anim.Vector3{})
		b := newTestEntity(anim.Vector3{})

		_, err := anim.AnimateProperty(smooth, a, anim.PropertyPosition, anim.Vector3{}, anim.Vec3(10, 0, 0), ms(1000), anim.EaseInQuad)
		require.NoError(t, err)
		_, err = anim.AnimateProperty(jerky, b, anim.PropertyPosition, anim.Vector3{}, anim.Vec3(10, 0, 0), ms(1000), anim.EaseInQuad)
		require.NoError(t, err)

		for now := 0; now <= 600; now += 10 {
			smooth.Tick(ms(now))
		}
		jerky.Tick(ms(13))
		jerky.Tick(ms(600))

		assert.Equal(t, a.position(), b.position())
		assert.InDelta(t, 3.6, a.position().X, 1e-9)
	})

	t.Run("timestamps before the start clamp to zero progress", func(t *testing.T) {
		clock := anim.NewManualClock(ms(500))
		ticker := anim.NewFrameTicker(clock, nil)
		e := newTestEntity(anim.Vec3(1, 0, 0))

		_, err := anim.AnimateProperty(ticker, e, anim.PropertyPosition, anim.Vec3(1, 0, 0), anim.Vec3(1, 0, 0), ms(100), anim.Linear)
		require.NoError(t, err)
		ticker.Tick(ms(400))

		assert.Equal(t, anim.Vec3(1, 0, 0), e.position())
	})

	t.Run("unknown property", func(t *testing.T) {
		ticker, _ := newManualTicker()
		e := newTestEntity(anim.Vector3{})
		zoom := anim.DefineProperty("zoom")

		_, err := anim.AnimateProperty(ticker, e, zoom, anim.Vector3{}, anim.Vec3(1, 1, 1), ms(10), nil)

		assert.ErrorIs(t, err, anim.ErrUnknownProperty)
		assert.Equal(t, 0, ticker.Pending())
	})

	t.Run("nil collaborators panic", func(t *testing.T) {
		ticker, _ := newManualTicker()
		assert.Panics(t, func() {
			_, _ = anim.Animate(ticker, nil, anim.AnimationTask{Property: anim.PropertyPosition})
		})
	})
}

func TestAnimatorSupersede(t *testing.T) {
	ticker, _ := newManualTicker()
	e := newTestEntity(anim.Vector3{})
	fired := 0
	e.hub.On("positionComplete", func(*testEntity) { fired++ })

	first, err := anim.Animate(ticker, e, anim.TaskTo(anim.PropertyPosition, e.position(), anim.Vec3(10, 0, 0), ms(1000), anim.Linear))
	require.NoError(t, err)
	ticker.Tick(ms(500))
	assert.Equal(t, anim.Vec3(5, 0, 0), e.position())

	second, err := anim.Animate(ticker, e, anim.TaskTo(anim.PropertyPosition, e.position(), anim.Vec3(5, 10, 0), ms(1000), anim.Linear))
	require.NoError(t, err)
	assert.Equal(t, anim.Vec3(5, 0, 0), second.Task().Start)
	assert.Greater(t, second.Generation(), first.Generation())

	retired := false
	first.Then(func(a *anim.PropertyAnimator) { retired = a.State() == anim.StateRetired })

	ticker.Tick(ms(1000))
	assert.True(t, retired)
	assert.Equal(t, anim.StateRetired, first.State())
	assert.Equal(t, anim.Vec3(5, 5, 0), e.position())
	assert.Equal(t, 0, fired)

	ticker.Tick(ms(1500))
	assert.Equal(t, anim.Vec3(5, 10, 0), e.position())
	assert.Equal(t, 1, fired)
	assert.Equal(t, anim.StateComplete, second.State())
}

func TestAnimatorIndependentProperties(t *testing.T) {
	ticker, _ := newManualTicker()
	e := newTestEntity(anim.Vector3{})

	pos, err := anim.AnimateProperty(ticker, e, anim.PropertyPosition, anim.Vector3{}, anim.Vec3(1, 0, 0), ms(100), anim.Linear)
	require.NoError(t, err)
	tgt, err := anim.AnimateProperty(ticker, e, anim.PropertyTarget, anim.Vector3{}, anim.Vec3(0, 1, 0), ms(200), anim.Linear)
	require.NoError(t, err)

	ticker.Tick(ms(100))
	assert.Equal(t, anim.StateComplete, pos.State())
	assert.Equal(t, anim.StateRunning, tgt.State())

	ticker.Tick(ms(200))
	assert.Equal(t, anim.StateComplete, tgt.State())
	assert.Equal(t, 1, e.count("event positionComplete"))
	assert.Equal(t, 1, e.count("event targetComplete"))
}

func TestAnimatorContinuations(t *testing.T) {
	ticker, _ := newManualTicker()
	e := newTestEntity(anim.Vector3{})

	a, err := anim.AnimateProperty(ticker, e, anim.PropertyPosition, anim.Vector3{}, anim.Vec3(1, 0, 0), ms(10), anim.Linear)
	require.NoError(t, err)

	var order []string
	e.hub.On("positionComplete", func(*testEntity) { order = append(order, "event") })
	a.Then(func(*anim.PropertyAnimator) { order = append(order, "then") })

	select {
	case <-a.Done():
		t.Fatal("done closed before completion")
	default:
	}

	ticker.Tick(ms(10))

	select {
	case <-a.Done():
	default:
		t.Fatal("done not closed after completion")
	}
	assert.Equal(t, []string{"event", "then"}, order)

	late := false
	a.Then(func(*anim.PropertyAnimator) { late = true })
	assert.True(t, late)
}
