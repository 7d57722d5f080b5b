package santa

import (
	"math/rand"
	"testing"
)

func TestPickMessageUsesPools(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	pools := map[OutcomeKind][]string{
		OutcomeFail:         failMessages,
		OutcomeSuccess:      successMessages,
		OutcomeIntermediate: intermediateMessages,
	}
	for kind, pool := range pools {
		seen := make(map[string]bool)
		for i := 0; i < 500; i++ {
			msg := PickMessage(kind, rng)
			if !contains(pool, msg) {
				t.Fatalf("PickMessage(%v) = %q, not in its pool", kind, msg)
			}
			seen[msg] = true
		}
		if len(seen) != len(pool) {
			t.Errorf("PickMessage(%v) covered %d of %d messages", kind, len(seen), len(pool))
		}
	}

	if got := PickMessage(OutcomeAllCleared, rng); got != AllClearedMessage {
		t.Errorf("PickMessage(allCleared) = %q", got)
	}
}

func contains(pool []string, s string) bool {
	for _, p := range pool {
		if p == s {
			return true
		}
	}
	return false
}
