package santa

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/santa-delivery/internal/core"
	"github.com/vovakirdan/santa-delivery/internal/stage"
)

func TestObstaclesStayInsideField(t *testing.T) {
	p := DefaultParams()
	p.Drift = DriftPolicy{Enabled: true, Probability: 0.2, Factor: 1.5}
	rng := rand.New(rand.NewSource(7))

	starts := []core.Vec{
		{X: 0, Y: 0},
		{X: p.Field.W - p.ObstacleSize.X, Y: p.Field.H - p.ObstacleSize.Y},
		{X: 10, Y: 700},
		{X: 200, Y: 300},
	}
	dirs := []stage.Direction{stage.DirLeft, stage.DirRight, stage.DirUp, stage.DirDown}

	for _, pattern := range stage.Patterns {
		for _, dir := range dirs {
			for _, start := range starts {
				spec := stage.ObstacleSpec{Direction: dir, Speed: 450, Pattern: pattern}
				o := newObstacle(spec, start, p, p.MinSpeed, p.MaxSpeed)

				for i := 0; i < 2000; i++ {
					o.Update(1.0/30, p.Field, p.Drift, rng)
					if !o.Rect().Within(p.Field) {
						t.Fatalf("%s/%s from %v: tick %d rect %+v leaves the playfield",
							pattern, dir, start, i, o.Rect())
					}
				}
			}
		}
	}
}

func TestDriftIsClamped(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(1))
	spec := stage.ObstacleSpec{Direction: stage.DirLeft, Speed: 100, Pattern: stage.PatternLinear}

	up := newObstacle(spec, core.Vec{X: 200, Y: 200}, p, p.MinSpeed, p.MaxSpeed)
	for i := 0; i < 50; i++ {
		up.Update(1.0/60, p.Field, DriftPolicy{Enabled: true, Probability: 1, Factor: 2}, rng)
	}
	if up.Speed() != p.MaxSpeed {
		t.Errorf("speed after upward drift = %v, expected %v", up.Speed(), p.MaxSpeed)
	}

	down := newObstacle(spec, core.Vec{X: 200, Y: 200}, p, p.MinSpeed, p.MaxSpeed)
	for i := 0; i < 50; i++ {
		down.Update(1.0/60, p.Field, DriftPolicy{Enabled: true, Probability: 1, Factor: 0.5}, rng)
	}
	if down.Speed() != p.MinSpeed {
		t.Errorf("speed after downward drift = %v, expected %v", down.Speed(), p.MinSpeed)
	}
}

func TestDriftDisabledKeepsSpeed(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(1))
	spec := stage.ObstacleSpec{Direction: stage.DirRight, Speed: 123, Pattern: stage.PatternCircular}
	o := newObstacle(spec, core.Vec{X: 200, Y: 200}, p, p.MinSpeed, p.MaxSpeed)

	for i := 0; i < 500; i++ {
		o.Update(1.0/60, p.Field, DriftPolicy{Enabled: false, Probability: 1, Factor: 3}, rng)
	}
	if o.Speed() != 123 {
		t.Errorf("speed = %v, expected 123", o.Speed())
	}
}

func TestInitialSpeedScaledAndClamped(t *testing.T) {
	p := DefaultParams()
	p.SpeedScale = 2

	fast := newObstacle(stage.ObstacleSpec{Direction: stage.DirLeft, Speed: 500, Pattern: stage.PatternLinear},
		core.Vec{}, p, p.MinSpeed, p.MaxSpeed)
	if fast.Speed() != p.MaxSpeed {
		t.Errorf("speed = %v, expected clamp to %v", fast.Speed(), p.MaxSpeed)
	}

	slow := newObstacle(stage.ObstacleSpec{Direction: stage.DirLeft, Speed: 100, Pattern: stage.PatternLinear},
		core.Vec{}, p, p.MinSpeed, p.MaxSpeed)
	if slow.Speed() != 200 {
		t.Errorf("speed = %v, expected 200", slow.Speed())
	}
}
