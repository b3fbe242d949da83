package conversation

// Scratch carries the transient data of the active mode. Each mode that
// needs scratch gets its own variant so invalid field combinations cannot
// be represented.
type Scratch interface {
	scratch()
}

// GoalDraft holds the title collected in AWAITING_GOAL_TITLE while the
// description is still pending.
type GoalDraft struct {
	Title string
}

func (GoalDraft) scratch() {}

// GuessGame tracks a running number-guessing round.
type GuessGame struct {
	Secret   int
	Attempts int
}

func (GuessGame) scratch() {}

// QuizGame tracks quiz progress.
type QuizGame struct {
	Index int
	Score int
}

func (QuizGame) scratch() {}
