package santa

import (
	"time"

	"github.com/vovakirdan/santa-delivery/internal/stage"
)

// EstimateOptions configure a headless difficulty estimate.
type EstimateOptions struct {
	Runs     int
	Seed     int64
	Horizon  time.Duration
	TickRate int
}

// EstimateResult counts the outcomes of bot runs on one stage.
type EstimateResult struct {
	Stage    int
	Runs     int
	Failed   int
	Cleared  int
	TimedOut int
}

// FailureRate returns Failed / Runs.
func (r EstimateResult) FailureRate() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.Failed) / float64(r.Runs)
}

// Estimate plays a stage with a bot that taps whenever Santa is not
// ascending. Run i uses seed opts.Seed+i, so two stages estimated with the
// same options see the same seeds.
func Estimate(def stage.Definition, p Params, opts EstimateOptions) EstimateResult {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Horizon <= 0 {
		opts.Horizon = 30 * time.Second
	}
	dt := 1.0 / float64(opts.TickRate)
	maxTicks := uint64(opts.Horizon.Seconds() * float64(opts.TickRate))

	res := EstimateResult{Stage: def.Number, Runs: opts.Runs}
	for i := 0; i < opts.Runs; i++ {
		var rt *Runtime
		bot := InputFunc(func() bool { return rt != nil && !rt.Ascending() })
		rt = NewRuntime(def, p, Deps{Input: bot, Seed: opts.Seed + int64(i)})

		switch Drive(rt, dt, maxTicks) {
		case StateFailed:
			res.Failed++
		case StateCleared:
			res.Cleared++
		default:
			res.TimedOut++
		}
	}
	return res
}

// Drive starts rt and ticks it until it reaches a terminal state or
// maxTicks ticks have run. It returns the final state.
func Drive(rt *Runtime, dt float64, maxTicks uint64) State {
	rt.Start()
	if rt.State() != StateRunning {
		return rt.State()
	}
	for rt.Ticks() < maxTicks && !rt.State().Terminal() && !rt.Stopped() {
		if err := rt.Tick(dt); err != nil {
			break
		}
	}
	return rt.State()
}
