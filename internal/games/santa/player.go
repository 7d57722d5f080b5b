package santa

import (
	"github.com/vovakirdan/santa-delivery/internal/core"
)

// Player is Santa. A tap starts an ascent; how the ascent ends depends on
// the AscendPolicy.
type Player struct {
	pos       core.Vec
	size      core.Vec
	velocity  float64
	ascending bool
	speed     float64
	policy    AscendPolicy
	duration  float64
	remaining float64
}

func newPlayer(p Params) *Player {
	return &Player{
		pos:      p.Spawn,
		size:     p.PlayerSize,
		speed:    p.VerticalSpeed,
		policy:   p.Ascend,
		duration: p.AscendDuration.Seconds(),
	}
}

// OnTapped starts (or re-arms) an ascent.
func (pl *Player) OnTapped() {
	pl.ascending = true
	pl.velocity = -pl.speed
	if pl.policy == AscendTimed {
		pl.remaining = pl.duration
	}
}

// Update moves the player by dt and clamps it into field. Reaching the top
// edge ends the ascent.
func (pl *Player) Update(dt float64, field core.Rect) {
	if pl.ascending {
		step := dt
		if pl.policy == AscendTimed && pl.remaining < step {
			step = pl.remaining
		}
		pl.pos.Y += pl.velocity * step

		if pl.policy == AscendTimed {
			pl.remaining -= step
			if pl.remaining <= 0 {
				pl.stop()
			}
		}
	}

	pl.pos = clampInto(pl.pos, pl.size, field)
	if pl.pos.Y <= field.Y {
		pl.stop()
	}
}

func (pl *Player) stop() {
	pl.ascending = false
	pl.velocity = 0
	pl.remaining = 0
}

// Rect returns the player's bounding box.
func (pl *Player) Rect() core.Rect {
	return core.RectAt(pl.pos, pl.size)
}

// Ascending reports whether the player is currently moving up.
func (pl *Player) Ascending() bool {
	return pl.ascending
}
