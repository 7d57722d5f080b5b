package santa

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/santa-delivery/internal/core"
)

// ErrInvariantViolation reports an entity outside the playfield after motion.
// The tick that produced it is rolled back.
var ErrInvariantViolation = errors.New("santa: invariant violation")

// StepReport is the collision result of one Loop.Step.
type StepReport struct {
	Hit  int  // index of the first obstacle hit, or -1
	Goal bool // player overlaps the goal and no obstacle was hit
}

// Loop advances the entities of one stage and resolves collisions.
type Loop struct {
	field     core.Rect
	player    *Player
	obstacles []*Obstacle
	goal      Goal
	drift     DriftPolicy
	rng       *rand.Rand

	savedPlayer    Player
	savedObstacles []Obstacle
}

// Step runs one tick: player motion, obstacle motion, player against every
// obstacle, then player against the goal only when nothing was hit.
func (l *Loop) Step(dt float64, tapped bool) (StepReport, error) {
	l.snapshot()

	if tapped {
		l.player.OnTapped()
	}
	l.player.Update(dt, l.field)
	for _, o := range l.obstacles {
		o.Update(dt, l.field, l.drift, l.rng)
	}

	if err := l.checkBounds(); err != nil {
		l.restore()
		return StepReport{Hit: -1}, err
	}

	pr := l.player.Rect()
	for i, o := range l.obstacles {
		if core.Overlaps(pr, o.Rect()) {
			return StepReport{Hit: i}, nil
		}
	}

	return StepReport{Hit: -1, Goal: core.Overlaps(pr, l.goal.Rect())}, nil
}

func (l *Loop) checkBounds() error {
	if r := l.player.Rect(); !r.Finite() || !r.Within(l.field) {
		return fmt.Errorf("%w: player at %+v", ErrInvariantViolation, r)
	}
	for i, o := range l.obstacles {
		if r := o.Rect(); !r.Finite() || !r.Within(l.field) {
			return fmt.Errorf("%w: obstacle %d at %+v", ErrInvariantViolation, i, r)
		}
	}
	return nil
}

func (l *Loop) snapshot() {
	l.savedPlayer = *l.player
	if cap(l.savedObstacles) < len(l.obstacles) {
		l.savedObstacles = make([]Obstacle, len(l.obstacles))
	}
	l.savedObstacles = l.savedObstacles[:len(l.obstacles)]
	for i, o := range l.obstacles {
		l.savedObstacles[i] = *o
	}
}

func (l *Loop) restore() {
	*l.player = l.savedPlayer
	for i, o := range l.obstacles {
		*o = l.savedObstacles[i]
	}
}
