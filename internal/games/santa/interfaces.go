package santa

import "github.com/vovakirdan/santa-delivery/internal/core"

// EntityKind identifies what a Renderer is asked to draw.
type EntityKind int

const (
	EntityPlayer EntityKind = iota
	EntityObstacle
	EntityGoal
)

func (k EntityKind) String() string {
	switch k {
	case EntityPlayer:
		return "player"
	case EntityObstacle:
		return "obstacle"
	case EntityGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Renderer draws one entity box in logical playfield coordinates.
type Renderer interface {
	Draw(kind EntityKind, rect core.Rect)
}

// InputSource reports whether a tap happened since the last poll.
// Polling consumes the tap.
type InputSource interface {
	PollTapEdge() bool
}

// InputFunc adapts a function to InputSource.
type InputFunc func() bool

func (f InputFunc) PollTapEdge() bool { return f() }

// OutcomeKind classifies an outcome notification.
type OutcomeKind int

const (
	OutcomeFail OutcomeKind = iota
	OutcomeSuccess
	OutcomeIntermediate
	OutcomeAllCleared
)

// String returns the event kind name used in logs, storage and replays.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFail:
		return core.EventFail
	case OutcomeSuccess:
		return core.EventSuccess
	case OutcomeIntermediate:
		return core.EventIntermediate
	case OutcomeAllCleared:
		return core.EventAllCleared
	default:
		return "unknown"
	}
}

// Outcome is delivered to an OutcomeListener. Ticks, Seed and Taps are
// only set for fail and success.
type Outcome struct {
	Kind    OutcomeKind
	Stage   int
	Message string
	Ticks   uint64
	Seed    int64
	Taps    []uint64
}

// Event converts the outcome into a platform event.
func (o Outcome) Event() core.Event {
	return core.Event{
		Kind:    o.Kind.String(),
		Stage:   o.Stage,
		Message: o.Message,
		Ticks:   o.Ticks,
		Seed:    o.Seed,
		Taps:    o.Taps,
	}
}

// OutcomeListener receives stage outcomes.
type OutcomeListener interface {
	OnOutcome(o Outcome)
}

// ListenerFunc adapts a function to OutcomeListener.
type ListenerFunc func(o Outcome)

func (f ListenerFunc) OnOutcome(o Outcome) { f(o) }

type noInput struct{}

func (noInput) PollTapEdge() bool { return false }

type noListener struct{}

func (noListener) OnOutcome(Outcome) {}
