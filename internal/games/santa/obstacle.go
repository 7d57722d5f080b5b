package santa

import (
	"math/rand"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/stage"
)

// Obstacle is a moving ice block. Its state is only mutated by Update.
type Obstacle struct {
	spec    stage.ObstacleSpec
	pos     core.Vec
	size    core.Vec
	origin  core.Vec
	phase   float64
	speed   float64
	sign    float64
	radius  float64
	angular float64
	min     float64
	max     float64
}

func newObstacle(spec stage.ObstacleSpec, pos core.Vec, p Params, minSpeed, maxSpeed float64) *Obstacle {
	return &Obstacle{
		spec:    spec,
		pos:     pos,
		size:    p.ObstacleSize,
		origin:  pos,
		speed:   core.ClampF(spec.Speed*p.SpeedScale, minSpeed, maxSpeed),
		sign:    spec.Direction.Sign(),
		radius:  p.Radius,
		angular: p.AngularScale,
		min:     minSpeed,
		max:     maxSpeed,
	}
}

// Rect returns the obstacle's bounding box.
func (o *Obstacle) Rect() core.Rect {
	return core.RectAt(o.pos, o.size)
}

// Speed returns the current speed.
func (o *Obstacle) Speed() float64 {
	return o.speed
}

// Pattern returns the obstacle's motion pattern.
func (o *Obstacle) Pattern() stage.Pattern {
	return o.spec.Pattern
}

// Update applies drift, advances the motion pattern by dt and clamps the
// result into field.
func (o *Obstacle) Update(dt float64, field core.Rect, drift DriftPolicy, rng *rand.Rand) {
	if drift.Enabled && rng.Float64() < drift.Probability {
		o.speed = core.ClampF(o.speed*drift.Factor, o.min, o.max)
	}

	switch o.spec.Pattern {
	case stage.PatternCircular:
		o.phase = advancePhase(o.phase, o.speed, o.angular, o.sign, dt)
		o.pos = circularPosition(o.origin, o.phase, o.radius)
	case stage.PatternTriangular:
		o.phase = advancePhase(o.phase, o.speed, o.angular, o.sign, dt)
		o.pos = triangularPosition(o.origin, o.phase, o.radius)
	case stage.PatternRectangular:
		o.phase = advancePhase(o.phase, o.speed, o.angular, o.sign, dt)
		o.pos = rectangularPosition(o.origin, o.phase, o.radius)
	default:
		if o.spec.Direction.Horizontal() {
			o.pos.X, o.sign = linearStep(o.pos.X-field.X, o.sign, o.speed, dt, field.W-o.size.X)
			o.pos.X += field.X
		} else {
			o.pos.Y, o.sign = linearStep(o.pos.Y-field.Y, o.sign, o.speed, dt, field.H-o.size.Y)
			o.pos.Y += field.Y
		}
	}

	o.pos = clampInto(o.pos, o.size, field)
}
