package stage

import (
	"fmt"
)

// Catalog is the ordered, 1-based list of stage definitions.
type Catalog struct {
	stages []Definition
	source string
}

// NewCatalog validates the definitions and builds a catalog. Definitions
// must be numbered 1..n in order.
func NewCatalog(source string, defs ...Definition) (*Catalog, error) {
	c := &Catalog{
		stages: make([]Definition, len(defs)),
		source: source,
	}
	copy(c.stages, defs)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns the definition for a 1-based stage number. A missing stage
// yields a *ConfigurationError wrapping ErrStageNotFound.
func (c *Catalog) Get(n int) (Definition, error) {
	if n < 1 || n > len(c.stages) {
		return Definition{}, &ConfigurationError{Stage: n, Err: ErrStageNotFound}
	}
	return c.stages[n-1], nil
}

// Len returns the number of stages.
func (c *Catalog) Len() int {
	return len(c.stages)
}

// All returns every definition in order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.stages))
	copy(out, c.stages)
	return out
}

// Source describes where the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// Validate checks numbering, directions, patterns and speeds.
func (c *Catalog) Validate() error {
	if len(c.stages) == 0 {
		return fmt.Errorf("%w: no stages", ErrInvalidCatalog)
	}

	for i, d := range c.stages {
		if d.Number != i+1 {
			return &ConfigurationError{
				Stage: d.Number,
				Err:   fmt.Errorf("%w: expected stage number %d", ErrInvalidCatalog, i+1),
			}
		}
		if d.MinSpeed < 0 || d.MaxSpeed < 0 || (d.MaxSpeed > 0 && d.MinSpeed > d.MaxSpeed) {
			return &ConfigurationError{
				Stage: d.Number,
				Err:   fmt.Errorf("%w: bad speed bounds [%v, %v]", ErrInvalidCatalog, d.MinSpeed, d.MaxSpeed),
			}
		}
		for j, o := range d.obstacles {
			var problem string
			switch {
			case !o.Direction.Valid():
				problem = fmt.Sprintf("unknown direction %q", o.Direction)
			case !o.Pattern.Valid():
				problem = fmt.Sprintf("unknown pattern %q", o.Pattern)
			case !(o.Speed > 0):
				problem = fmt.Sprintf("speed must be positive, got %v", o.Speed)
			}
			if problem != "" {
				return &ConfigurationError{
					Stage: d.Number,
					Err:   fmt.Errorf("%w: obstacle %d: %s", ErrInvalidCatalog, j, problem),
				}
			}
		}
	}
	return nil
}

// CheckMonotonic verifies that obstacle count and maximum obstacle speed never
// decrease from one stage to the next.
func (c *Catalog) CheckMonotonic() error {
	for i := 1; i < len(c.stages); i++ {
		prev, cur := c.stages[i-1], c.stages[i]
		if cur.ObstacleCount() < prev.ObstacleCount() {
			return fmt.Errorf("%w: stage %d has %d obstacles, stage %d has %d",
				ErrNotMonotonic, cur.Number, cur.ObstacleCount(), prev.Number, prev.ObstacleCount())
		}
		if cur.MaxObstacleSpeed() < prev.MaxObstacleSpeed() {
			return fmt.Errorf("%w: stage %d max speed %v is below stage %d max speed %v",
				ErrNotMonotonic, cur.Number, cur.MaxObstacleSpeed(), prev.Number, prev.MaxObstacleSpeed())
		}
	}
	return nil
}
