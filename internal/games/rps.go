package games

import "math/rand"

// Rock-paper-scissors: a single stateless round.
type RPSChoice string

const (
	Rock     RPSChoice = "rock"
	Paper    RPSChoice = "paper"
	Scissors RPSChoice = "scissors"
)

type RPSOutcome int

const (
	RPSDraw RPSOutcome = iota
	RPSWin             // the player beat the bot
	RPSLoss
)

var rpsChoices = []RPSChoice{Rock, Paper, Scissors}

// beats maps each choice to the one it defeats.
var beats = map[RPSChoice]RPSChoice{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

func ValidRPSChoice(c RPSChoice) bool {
	_, ok := beats[c]
	return ok
}

// RandomRPSChoice draws the bot's move uniformly.
func RandomRPSChoice() RPSChoice {
	return rpsChoices[rand.Intn(len(rpsChoices))]
}

// ResolveRPS judges the round from the player's perspective.
func ResolveRPS(player, bot RPSChoice) RPSOutcome {
	if player == bot {
		return RPSDraw
	}
	if beats[player] == bot {
		return RPSWin
	}
	return RPSLoss
}
