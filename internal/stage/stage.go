// Package stage defines stage data: which ice blocks a stage contains, how
// fast they move and in which pattern. Definitions are immutable after load.
package stage

// Direction is the initial movement direction of an obstacle.
type Direction string

const (
	DirLeft  Direction = "left"
	DirRight Direction = "right"
	DirUp    Direction = "up"
	DirDown  Direction = "down"
)

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case DirLeft, DirRight, DirUp, DirDown:
		return true
	}
	return false
}

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Sign returns -1 for left/up and +1 for right/down.
func (d Direction) Sign() float64 {
	if d == DirLeft || d == DirUp {
		return -1
	}
	return 1
}

// Pattern is the motion pattern of an obstacle.
type Pattern string

const (
	PatternLinear      Pattern = "linear"
	PatternCircular    Pattern = "circular"
	PatternTriangular  Pattern = "triangular"
	PatternRectangular Pattern = "rectangular"
)

// Patterns lists the motion patterns in round-robin assignment order.
var Patterns = []Pattern{PatternLinear, PatternCircular, PatternTriangular, PatternRectangular}

// Valid reports whether p is a known pattern.
func (p Pattern) Valid() bool {
	for _, known := range Patterns {
		if p == known {
			return true
		}
	}
	return false
}

// PatternForIndex returns the pattern assigned to the i-th obstacle of a
// stage when the data does not name one.
func PatternForIndex(i int) Pattern {
	return Patterns[((i%len(Patterns))+len(Patterns))%len(Patterns)]
}

// ObstacleSpec describes one ice block of a stage.
type ObstacleSpec struct {
	Direction Direction
	Speed     float64
	Pattern   Pattern
}

// Definition is the immutable description of one stage.
type Definition struct {
	Number int

	// MinSpeed and MaxSpeed bound drifting speeds for this stage.
	// Zero means the global configuration applies.
	MinSpeed float64
	MaxSpeed float64

	obstacles []ObstacleSpec
}

// NewDefinition builds a definition. Obstacles without a pattern get the
// round-robin pattern for their index.
func NewDefinition(number int, obstacles ...ObstacleSpec) Definition {
	specs := make([]ObstacleSpec, len(obstacles))
	for i, o := range obstacles {
		if o.Pattern == "" {
			o.Pattern = PatternForIndex(i)
		}
		specs[i] = o
	}
	return Definition{Number: number, obstacles: specs}
}

// Obstacles returns a copy of the obstacle list.
func (d Definition) Obstacles() []ObstacleSpec {
	out := make([]ObstacleSpec, len(d.obstacles))
	copy(out, d.obstacles)
	return out
}

// ObstacleCount returns the number of obstacles.
func (d Definition) ObstacleCount() int {
	return len(d.obstacles)
}

// MaxObstacleSpeed returns the highest obstacle speed, or 0 for an empty stage.
func (d Definition) MaxObstacleSpeed() float64 {
	var top float64
	for _, o := range d.obstacles {
		if o.Speed > top {
			top = o.Speed
		}
	}
	return top
}
