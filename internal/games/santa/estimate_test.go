package santa

import (
	"testing"
	"time"

	"github.com/vovakirdan/santa-delivery/internal/stage"
)

func TestEstimateEmptyStageAlwaysClears(t *testing.T) {
	res := Estimate(stage.NewDefinition(1), DefaultParams(), EstimateOptions{Runs: 20, Seed: 1})

	if res.Cleared != 20 || res.Failed != 0 || res.TimedOut != 0 {
		t.Errorf("Estimate() = %+v, expected 20 clears", res)
	}
	if res.FailureRate() != 0 {
		t.Errorf("FailureRate() = %v, expected 0", res.FailureRate())
	}
}

func TestDifficultyIncreasesWithStage(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}

	opts := EstimateOptions{Runs: 300, Seed: 2024, Horizon: 20 * time.Second, TickRate: 30}
	p := DefaultParams()

	easy := Estimate(mustStage(t, 1), p, opts)
	hard := Estimate(mustStage(t, 5), p, opts)

	if easy.Failed+easy.Cleared+easy.TimedOut != opts.Runs {
		t.Errorf("stage 1 counts do not add up: %+v", easy)
	}
	if hard.FailureRate() < easy.FailureRate() {
		t.Errorf("stage 5 failure rate %.3f is below stage 1 rate %.3f", hard.FailureRate(), easy.FailureRate())
	}
}

func TestEstimateTimedPolicy(t *testing.T) {
	p := DefaultParams()
	p.Ascend = AscendTimed

	res := Estimate(stage.NewDefinition(1), p, EstimateOptions{Runs: 5, Seed: 1, TickRate: 60})
	if res.Cleared != 5 {
		t.Errorf("timed bot on an empty stage = %+v, expected 5 clears", res)
	}
}
