package santa

import (
	"math"

	"github.com/vovakirdan/santa-delivery/internal/core"
)

// linearStep moves a coordinate along one axis. When the new position
// reaches 0 or max it is set to that bound and the direction sign flips.
func linearStep(pos, sign, speed, dt, max float64) (float64, float64) {
	next := pos + sign*speed*dt
	switch {
	case next <= 0:
		return 0, 1
	case next >= max:
		return max, -1
	}
	return next, sign
}

// advancePhase advances a pattern phase. sign is the direction sign of the
// obstacle's initial direction.
func advancePhase(phase, speed, angularScale, sign, dt float64) float64 {
	return phase + speed*angularScale*sign*dt
}

// circularPosition places an obstacle on a circle around origin.
func circularPosition(origin core.Vec, phase, radius float64) core.Vec {
	return core.Vec{
		X: origin.X + radius*math.Cos(phase),
		Y: origin.Y + radius*math.Sin(phase),
	}
}

// triangularPosition swings horizontally while bouncing below origin.
func triangularPosition(origin core.Vec, phase, radius float64) core.Vec {
	return core.Vec{
		X: origin.X + radius*math.Cos(phase),
		Y: origin.Y + radius*math.Abs(math.Sin(2*phase)),
	}
}

// rectangularPosition walks the edges of a square of side 2*radius centered
// on origin. Each unit of phase covers one edge, in order right, down, left, up.
func rectangularPosition(origin core.Vec, phase, radius float64) core.Vec {
	fl := math.Floor(phase)
	frac := phase - fl
	quarter := ((int(fl) % 4) + 4) % 4
	side := 2 * radius
	left, top := origin.X-radius, origin.Y-radius

	switch quarter {
	case 0:
		return core.Vec{X: left + frac*side, Y: top}
	case 1:
		return core.Vec{X: left + side, Y: top + frac*side}
	case 2:
		return core.Vec{X: left + side - frac*side, Y: top + side}
	default:
		return core.Vec{X: left, Y: top + side - frac*side}
	}
}

// clampInto keeps a box of the given size inside field.
func clampInto(pos, size core.Vec, field core.Rect) core.Vec {
	return core.Vec{
		X: core.ClampF(pos.X, field.X, field.Right()-size.X),
		Y: core.ClampF(pos.Y, field.Y, field.Bottom()-size.Y),
	}
}
