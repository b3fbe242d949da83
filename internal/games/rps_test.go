package games

import (
	"testing"
)

func TestResolveRPS(t *testing.T) {
	tests := []struct {
		name   string
		player RPSChoice
		bot    RPSChoice
		want   RPSOutcome
	}{
		{name: "rock crushes scissors", player: Rock, bot: Scissors, want: RPSWin},
		{name: "paper covers rock", player: Paper, bot: Rock, want: RPSWin},
		{name: "scissors cut paper", player: Scissors, bot: Paper, want: RPSWin},
		{name: "scissors lose to rock", player: Scissors, bot: Rock, want: RPSLoss},
		{name: "rock loses to paper", player: Rock, bot: Paper, want: RPSLoss},
		{name: "paper loses to scissors", player: Paper, bot: Scissors, want: RPSLoss},
		{name: "rock draws rock", player: Rock, bot: Rock, want: RPSDraw},
		{name: "paper draws paper", player: Paper, bot: Paper, want: RPSDraw},
		{name: "scissors draw scissors", player: Scissors, bot: Scissors, want: RPSDraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRPS(tt.player, tt.bot); got != tt.want {
				t.Errorf("ResolveRPS(%s, %s) = %v, want %v", tt.player, tt.bot, got, tt.want)
			}
		})
	}
}

func TestValidRPSChoice(t *testing.T) {
	for _, c := range []RPSChoice{Rock, Paper, Scissors} {
		if !ValidRPSChoice(c) {
			t.Errorf("ValidRPSChoice(%s) = false, want true", c)
		}
	}
	if ValidRPSChoice("lizard") {
		t.Error("ValidRPSChoice(lizard) = true, want false")
	}
}

func TestRandomRPSChoiceIsValid(t *testing.T) {
	for i := 0; i < 100; i++ {
		if c := RandomRPSChoice(); !ValidRPSChoice(c) {
			t.Fatalf("RandomRPSChoice() = %q, not a valid choice", c)
		}
	}
}
