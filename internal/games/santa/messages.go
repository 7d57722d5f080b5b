package santa

import "math/rand"

var failMessages = []string{
	"Santa bumped into the ice! Try again!",
	"Oops, a slippery block got in the way.",
	"The presents are scattered everywhere. One more go!",
	"Brrr, that block was cold. Give it another try.",
	"The reindeer are waiting. Don't give up!",
	"Careful, those ice blocks move fast.",
	"So close! Watch the timing this time.",
	"Santa is tough. Up and at it again!",
	"The children are still waiting for their gifts!",
	"A little snow never stopped Santa. Retry!",
}

var successMessages = []string{
	"Delivered! The tree is glowing.",
	"Great flying, Santa!",
	"Presents safely under the tree!",
	"Ho ho ho! Another stop done.",
	"The reindeer are proud of you.",
	"Smooth as fresh snow!",
	"That chimney never stood a chance.",
	"Perfect delivery!",
	"The elves are cheering!",
	"Another happy home tonight.",
	"Nothing can stop Santa now!",
	"Right on schedule!",
	"A gift-wrapped finish!",
	"Jingle all the way to the top!",
	"The sleigh bells are ringing for you!",
}

var intermediateMessages = []string{
	"Halfway through the night. Keep going!",
	"Santa's sack is getting lighter.",
	"Time for a cookie break? Not yet!",
	"The ice blocks are getting faster. Stay sharp!",
	"The sky is full of stars tonight.",
	"Rudolph's nose lights the way.",
	"Every chimney brings you closer to dawn.",
	"The elves sent a cheer from the North Pole!",
	"Many more children to visit!",
	"Steady hands, Santa. Steady hands.",
}

// AllClearedMessage is shown after the last stage is cleared.
const AllClearedMessage = "Every present is delivered! Merry Christmas and thank you for playing!"

// PickMessage returns a message for the outcome kind, chosen uniformly at
// random from its pool.
func PickMessage(kind OutcomeKind, rng *rand.Rand) string {
	var pool []string
	switch kind {
	case OutcomeFail:
		pool = failMessages
	case OutcomeSuccess:
		pool = successMessages
	case OutcomeIntermediate:
		pool = intermediateMessages
	default:
		return AllClearedMessage
	}
	return pool[rng.Intn(len(pool))]
}
