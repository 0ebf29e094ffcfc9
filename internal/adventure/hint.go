package adventure

// Hint is a player-facing help question from the shared EDX hint pool, keyed
// by (EDX, Index). AdventureID is zero while the hint remains globally
// shared and is set once a per-adventure index range claims it.
type Hint struct {
	ID          int64
	EDX         int
	Index       int
	Question    string
	AdventureID int64
	Answers     []HintAnswer
}

// HintAnswer is one answer to a hint, in display order.
type HintAnswer struct {
	Index   int
	Answer  string
	Spoiler bool
}
