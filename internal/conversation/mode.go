package conversation

// Mode is the state machine's current expectation for the next user input.
type Mode string

const (
	ModeIdle              Mode = "IDLE"
	ModeAwaitingNote      Mode = "AWAITING_NOTE"
	ModeAwaitingGoalTitle Mode = "AWAITING_GOAL_TITLE"
	ModeAwaitingGoalDesc  Mode = "AWAITING_GOAL_DESCRIPTION"
	ModeGuessingNumber    Mode = "GUESSING_NUMBER"
	ModePlayingQuiz       Mode = "PLAYING_QUIZ"
)

// Active reports whether the mode expects the next input to be consumed
// by a flow handler rather than the menu router.
func (m Mode) Active() bool {
	return m != ModeIdle && m != ""
}
