package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"notibot-be/internal/chat"
	"notibot-be/internal/conversation"
	"notibot-be/internal/entity"
	"notibot-be/internal/games"
	"notibot-be/pkg/events"
)

func (r *Router) startGuess(ctx context.Context, ev chat.Event) error {
	r.conversations.SetMode(ev.Sender.TelegramID, conversation.ModeGuessingNumber,
		conversation.GuessGame{Secret: games.NewSecret()})
	return r.send(ctx, ev, chat.Text(msgGuessStart))
}

func (r *Router) judgeGuess(ctx context.Context, ev chat.Event, user *entity.User, game conversation.GuessGame, guess int) error {
	switch games.JudgeGuess(game.Secret, guess) {
	case games.GuessHigher:
		r.conversations.SetMode(ev.Sender.TelegramID, conversation.ModeGuessingNumber, game)
		return r.send(ctx, ev, chat.Text(msgGuessHigher))
	case games.GuessLower:
		r.conversations.SetMode(ev.Sender.TelegramID, conversation.ModeGuessingNumber, game)
		return r.send(ctx, ev, chat.Text(msgGuessLower))
	default:
		r.conversations.Clear(ev.Sender.TelegramID)
		r.publishGameFinished(ctx, user, "guess", map[string]interface{}{
			"attempts": game.Attempts,
		})
		return r.send(ctx, ev, guessWinReply(game.Attempts))
	}
}

func (r *Router) handleRPS(ctx context.Context, ev chat.Event, user *entity.User) error {
	player := games.RPSChoice(strings.TrimPrefix(ev.Callback, prefixRPS))
	if !games.ValidRPSChoice(player) {
		return r.send(ctx, ev, rpsStartReply())
	}

	bot := games.RandomRPSChoice()
	outcome := games.ResolveRPS(player, bot)
	r.publishGameFinished(ctx, user, "rps", map[string]interface{}{
		"player_move": string(player),
		"bot_move":    string(bot),
		"outcome":     int(outcome),
	})
	return r.send(ctx, ev, rpsResultReply(player, bot, outcome))
}

func (r *Router) startQuiz(ctx context.Context, ev chat.Event) error {
	r.conversations.SetMode(ev.Sender.TelegramID, conversation.ModePlayingQuiz,
		conversation.QuizGame{})
	return r.send(ctx, ev, quizQuestionReply(0))
}

func (r *Router) handleQuizAnswer(ctx context.Context, ev chat.Event, user *entity.User, state *conversation.State) error {
	game, ok := state.Scratch.(conversation.QuizGame)
	if !ok || game.Index >= len(games.QuizQuestions) {
		r.conversations.Clear(ev.Sender.TelegramID)
		return r.send(ctx, ev, chat.Text(msgQuizNotActive))
	}

	answer, err := strconv.Atoi(strings.TrimPrefix(ev.Callback, prefixQuiz))
	if err != nil {
		return r.send(ctx, ev, chat.Text(msgQuizNotActive))
	}

	question := games.QuizQuestions[game.Index]
	var feedback string
	if games.GradeQuiz(question, answer) {
		game.Score++
		feedback = "✅ Correct!"
	} else {
		feedback = "❌ Wrong! The correct answer: " + question.Options[question.Correct]
	}
	if err := r.send(ctx, ev, chat.Text(feedback)); err != nil {
		return err
	}

	game.Index++
	if game.Index >= len(games.QuizQuestions) {
		r.conversations.Clear(ev.Sender.TelegramID)
		r.publishGameFinished(ctx, user, "quiz", map[string]interface{}{
			"score": game.Score,
			"total": len(games.QuizQuestions),
		})
		return r.send(ctx, ev, quizFinishedReply(game.Score))
	}

	r.conversations.SetMode(ev.Sender.TelegramID, conversation.ModePlayingQuiz, game)
	return r.send(ctx, ev, quizQuestionReply(game.Index))
}

func (r *Router) publishGameFinished(ctx context.Context, user *entity.User, game string, details map[string]interface{}) {
	if r.publisher == nil {
		return
	}
	data := map[string]interface{}{
		"user_id": user.Id.String(),
		"game":    game,
	}
	for k, v := range details {
		data[k] = v
	}
	_ = r.publisher.Publish(ctx, events.BaseEvent{
		Type:       events.TypeGameFinished,
		Data:       data,
		OccurredAt: time.Now(),
	})
}
