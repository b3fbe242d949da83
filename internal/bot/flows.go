package bot

import (
	"context"
	"strconv"
	"strings"

	"notibot-be/internal/chat"
	"notibot-be/internal/conversation"
	"notibot-be/internal/entity"
)

// handleFlowText feeds free text into whichever flow is active. Invalid
// input re-prompts without leaving the mode.
func (r *Router) handleFlowText(ctx context.Context, ev chat.Event, user *entity.User, state *conversation.State) error {
	switch state.Mode {
	case conversation.ModeAwaitingNote:
		return r.captureNote(ctx, ev, user)
	case conversation.ModeAwaitingGoalTitle:
		return r.captureGoalTitle(ctx, ev)
	case conversation.ModeAwaitingGoalDesc:
		return r.captureGoalDescription(ctx, ev, user, state)
	case conversation.ModeGuessingNumber:
		return r.handleGuessAttempt(ctx, ev, user, state)
	case conversation.ModePlayingQuiz:
		// The quiz only takes button answers; nudge back to the buttons.
		return r.send(ctx, ev, chat.Text("❓ Use the answer buttons above, or /cancel to quit."))
	}
	return nil
}

func (r *Router) startNoteCapture(ctx context.Context, ev chat.Event) error {
	r.conversations.SetMode(ev.Sender.TelegramID, conversation.ModeAwaitingNote, nil)
	return r.send(ctx, ev, chat.Text(msgNotePrompt))
}

func (r *Router) captureNote(ctx context.Context, ev chat.Event, user *entity.User) error {
	content := strings.TrimSpace(ev.Text)
	if content == "" {
		return r.send(ctx, ev, chat.Text(msgNoteEmpty))
	}

	if _, err := r.noteService.Create(ctx, user.Id, content); err != nil {
		return err
	}
	r.conversations.Clear(ev.Sender.TelegramID)

	return r.send(ctx, ev, chat.WithKeyboard(msgNoteSaved, chat.Keyboard{
		chat.Row(chat.Btn("📋 My notes", cbListNotes), chat.Btn("🔙 Back", cbNotes)),
	}))
}

func (r *Router) startGoalCapture(ctx context.Context, ev chat.Event) error {
	r.conversations.SetMode(ev.Sender.TelegramID, conversation.ModeAwaitingGoalTitle, nil)
	return r.send(ctx, ev, chat.Text(msgGoalTitle))
}

func (r *Router) captureGoalTitle(ctx context.Context, ev chat.Event) error {
	title := strings.TrimSpace(ev.Text)
	if title == "" {
		return r.send(ctx, ev, chat.Text(msgGoalTitleEmpty))
	}

	r.conversations.SetMode(ev.Sender.TelegramID, conversation.ModeAwaitingGoalDesc,
		conversation.GoalDraft{Title: title})
	return r.send(ctx, ev, chat.Text(msgGoalDesc))
}

func (r *Router) captureGoalDescription(ctx context.Context, ev chat.Event, user *entity.User, state *conversation.State) error {
	description := strings.TrimSpace(ev.Text)
	if description == "" {
		return r.send(ctx, ev, chat.Text(msgGoalDescEmpty))
	}

	draft, ok := state.Scratch.(conversation.GoalDraft)
	if !ok {
		// Scratch went missing; restart the flow rather than guessing.
		r.conversations.SetMode(ev.Sender.TelegramID, conversation.ModeAwaitingGoalTitle, nil)
		return r.send(ctx, ev, chat.Text(msgGoalTitle))
	}

	if _, err := r.goalService.Create(ctx, user.Id, draft.Title, description); err != nil {
		return err
	}
	r.conversations.Clear(ev.Sender.TelegramID)

	return r.send(ctx, ev, chat.WithKeyboard(msgGoalCreated, chat.Keyboard{
		chat.Row(chat.Btn("📋 My goals", cbListGoals), chat.Btn("🔙 Back", cbGoals)),
	}))
}

func (r *Router) handleGuessAttempt(ctx context.Context, ev chat.Event, user *entity.User, state *conversation.State) error {
	game, ok := state.Scratch.(conversation.GuessGame)
	if !ok {
		r.conversations.Clear(ev.Sender.TelegramID)
		return r.send(ctx, ev, chat.Text("❌ The game is over. Start a new one with /guess"))
	}

	guess, err := strconv.Atoi(strings.TrimSpace(ev.Text))
	if err != nil {
		// Not an attempt; the counter stays put.
		return r.send(ctx, ev, chat.Text(msgGuessNotNumber))
	}

	game.Attempts++
	return r.judgeGuess(ctx, ev, user, game, guess)
}
