package games

import "math/rand"

// Guess feedback for the number-guessing game.
type GuessResult int

const (
	GuessHigher GuessResult = iota // secret is higher than the guess
	GuessLower                     // secret is lower than the guess
	GuessWin
)

const (
	GuessMin = 1
	GuessMax = 100
)

// NewSecret draws a uniform secret in [GuessMin, GuessMax].
func NewSecret() int {
	return GuessMin + rand.Intn(GuessMax-GuessMin+1)
}

// JudgeGuess compares a valid guess against the secret.
func JudgeGuess(secret, guess int) GuessResult {
	switch {
	case guess < secret:
		return GuessHigher
	case guess > secret:
		return GuessLower
	default:
		return GuessWin
	}
}
