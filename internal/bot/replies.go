package bot

import (
	"fmt"
	"strconv"

	"notibot-be/internal/chat"
	"notibot-be/internal/entity"
	"notibot-be/internal/games"
	"notibot-be/internal/provider"
	"notibot-be/internal/service"
)

// Slash commands, reproduced verbatim from the bot's public surface.
const (
	CmdStart    = "start"
	CmdNotes    = "notes"
	CmdGoals    = "goals"
	CmdWeather  = "weather"
	CmdCurrency = "currency"
	CmdConvert  = "convert"
	CmdStats    = "stats"
	CmdGuess    = "guess"
	CmdRPS      = "rps"
	CmdQuiz     = "quiz"
	CmdCancel   = "cancel"
)

// Inline button callback ids.
const (
	cbMainMenu   = "main_menu"
	cbGamesMenu  = "games_menu"
	cbNotes      = "notes"
	cbGoals      = "goals"
	cbWeather    = "weather"
	cbCurrency   = "currency"
	cbStats      = "stats"
	cbCreateNote = "create_note"
	cbCreateGoal = "create_goal"
	cbListNotes  = "list_notes"
	cbListGoals  = "list_goals"
	cbGameGuess  = "game_guess"
	cbGameRPS    = "game_rps"
	cbGameQuiz   = "game_quiz"

	prefixRPS        = "rps_"
	prefixQuiz       = "quiz_"
	prefixDeleteNote = "delete_note_"
	prefixDeleteGoal = "delete_goal_"
	prefixAddImage   = "add_image_"
	prefixShowImage  = "show_image_"
)

// Quick-reply menu labels; typed text matching one of these routes to the
// same handler as the corresponding button.
const (
	labelNotes    = "📝 Notes"
	labelGoals    = "🎯 Goals"
	labelWeather  = "🌤 Weather"
	labelCurrency = "💱 Currency"
	labelStats    = "📊 Stats"
	labelGames    = "🎮 Games"
	labelHelp     = "❓ Help"
)

const (
	tsFormat = "02.01.2006 15:04"

	msgApology       = "❌ Sorry, something went wrong. Please try again later."
	msgProviderDown  = "❌ Could not fetch the data. Please try again later."
	msgUninitialized = "❌ Please start the bot first with /start"

	msgNotePrompt      = "✏️ Send me the text of the note you want to save.\n\nSend /cancel to abort."
	msgNoteEmpty       = "❌ The note cannot be empty. Try again."
	msgNoteSaved       = "✅ Note saved!"
	msgNoNotes         = "📝 You have no notes yet."
	msgNoteDeleted     = "✅ Note deleted."
	msgPickNote        = "Pick a note:"
	msgGoalTitle       = "🎯 Enter the goal title:\n\nSend /cancel to abort."
	msgGoalTitleEmpty  = "❌ The goal title cannot be empty. Try again."
	msgGoalDesc        = "📝 Now enter the goal description:\n\nSend /cancel to abort."
	msgGoalDescEmpty   = "❌ The goal description cannot be empty. Try again."
	msgGoalCreated     = "✅ Goal created!"
	msgNoGoals         = "🎯 You have no goals yet."
	msgGoalDeleted     = "✅ Goal deleted."
	msgImagePrompt     = "📷 Send the image you want to attach to this note."
	msgImageAttached   = "✅ Image attached to the note!"
	msgImageNoTarget   = "❌ First pick a note via '📋 My notes' and press '➕ Attach image'."
	msgGuessStart      = "🎮 'Guess the number'!\n\nI picked a number from 1 to 100.\nTry to guess it!\n\nSend /cancel to quit."
	msgGuessNotNumber  = "❌ Please send a number!"
	msgGuessHigher     = "⬆️ The secret number is higher!"
	msgGuessLower      = "⬇️ The secret number is lower!"
	msgQuizNotActive   = "❌ The quiz is not active. Start a new one with /quiz"
	msgCancelled       = "❌ Operation cancelled.\n\nUse a command to start again."
	msgNothingToCancel = "Nothing to cancel. Use the menu or commands to get started."
	msgTextArchived    = "📝 Your message has been saved!\n\nUse the quick menu or commands to work with the bot."
	msgUnknownCommand  = "❓ Unknown command. Use the menu below or send /start."
	msgConvertUsage    = "Wrong command format.\nUse: /convert <amount> <from> <to>\nExample: /convert 100 USD RUB"
)

func welcomeText(firstName string) string {
	return fmt.Sprintf(
		"✨ Hi, %s! ✨\n\n"+
			"I'm your personal assistant NotiBot! 🤖\n\n"+
			"Here's what I can do:\n\n"+
			"📝 Notes — create and manage notes\n"+
			"🎯 Goals — set and track goals\n"+
			"🌤 Weather — current weather\n"+
			"💱 Currency — exchange rates\n"+
			"📊 Stats — your statistics\n"+
			"🎮 Games — play mini-games\n\n"+
			"📸 You can also send me photos and I'll attach them to your notes!\n\n"+
			"Pick a section from the menu below:",
		firstName,
	)
}

// welcomeReply installs the persistent quick-reply keyboard; its labels
// route through dispatchText so typed and pressed labels behave alike.
func welcomeReply(firstName string) chat.Reply {
	return chat.Reply{
		Text: welcomeText(firstName),
		QuickReplies: []string{
			labelNotes, labelGoals,
			labelWeather, labelCurrency,
			labelStats, labelGames,
			labelHelp,
		},
	}
}

func mainMenuKeyboard() chat.Keyboard {
	return chat.Keyboard{
		chat.Row(chat.Btn(labelNotes, cbNotes), chat.Btn(labelGoals, cbGoals)),
		chat.Row(chat.Btn(labelWeather, cbWeather), chat.Btn(labelCurrency, cbCurrency)),
		chat.Row(chat.Btn(labelStats, cbStats), chat.Btn(labelGames, cbGamesMenu)),
	}
}

func backRow(target string) []chat.Button {
	return chat.Row(chat.Btn("🔙 Back", target))
}

func notesMenuReply() chat.Reply {
	return chat.WithKeyboard(
		"📚 Notes management\n\nWhat would you like to do?",
		chat.Keyboard{
			chat.Row(chat.Btn("✏️ Create note", cbCreateNote), chat.Btn("📋 My notes", cbListNotes)),
			backRow(cbMainMenu),
		},
	)
}

func goalsMenuReply() chat.Reply {
	return chat.WithKeyboard(
		"🎯 Goals management\n\nWhat would you like to do?",
		chat.Keyboard{
			chat.Row(chat.Btn("🎯 Create goal", cbCreateGoal), chat.Btn("📋 My goals", cbListGoals)),
			backRow(cbMainMenu),
		},
	)
}

func gamesMenuReply() chat.Reply {
	text := "🎮 Pick a game:\n\n" +
		"🎲 Guess the number — try to guess a number from 1 to 100\n" +
		"✊ Rock-paper-scissors — the classic game\n" +
		"❓ Quiz — test your knowledge\n\n" +
		"Or use the commands:\n" +
		"/guess — start 'Guess the number'\n" +
		"/rps — start 'Rock-paper-scissors'\n" +
		"/quiz — start the quiz"
	return chat.WithKeyboard(text, chat.Keyboard{
		chat.Row(chat.Btn("🎲 Guess the number", cbGameGuess), chat.Btn("✊ Rock-paper-scissors", cbGameRPS)),
		chat.Row(chat.Btn("❓ Quiz", cbGameQuiz)),
		backRow(cbMainMenu),
	})
}

func weatherReplyText(w *provider.Weather) string {
	return fmt.Sprintf(
		"🌤 Weather in %s:\n\n"+
			"🌡 Temperature: %.1f°C\n"+
			"💨 Wind: %.1f m/s\n"+
			"💧 Humidity: %d%%\n"+
			"📝 %s\n\n"+
			"To check another city, use:\n"+
			"/weather <city>",
		w.City, w.Temperature, w.WindSpeed, w.Humidity, w.Description,
	)
}

func currencyReplyText(base string, targets []string, rates map[string]float64) string {
	text := "💱 Exchange rates:\n\n"
	for _, currency := range targets {
		if rate, ok := rates[currency]; ok {
			text += fmt.Sprintf("1 %s = %.2f %s\n", base, rate, currency)
		}
	}
	text += "\n💡 To convert currencies, use:\n"
	text += "/convert <amount> <from> <to>\n"
	text += "Example: /convert 100 USD RUB"
	return text
}

func convertReplyText(amount float64, from, to string, rate float64) string {
	return fmt.Sprintf(
		"💱 Conversion result:\n\n"+
			"%g %s = %.2f %s\n"+
			"Rate: 1 %s = %.4f %s",
		amount, from, amount*rate, to, from, rate, to,
	)
}

func statsReplyText(counts *service.StatsCounts) string {
	return fmt.Sprintf(
		"📊 Your stats\n\n"+
			"📝 Notes: %d\n"+
			"🎯 Goals: %d\n"+
			"🖼 Images: %d\n"+
			"💬 Messages: %d\n\n"+
			"Keep it up! 💪",
		counts.Notes, counts.Goals, counts.Images, counts.Messages,
	)
}

func noteListItemReply(note *entity.Note) chat.Reply {
	var buttons []chat.Button
	if note.HasImage {
		buttons = append(buttons, chat.Btn("📷 Open image", prefixShowImage+note.Id.String()))
	} else {
		buttons = append(buttons, chat.Btn("➕ Attach image", prefixAddImage+note.Id.String()))
	}
	buttons = append(buttons, chat.Btn("❌ Delete", prefixDeleteNote+note.Id.String()))

	text := fmt.Sprintf("• %s\n📅 %s", note.Content, note.CreatedAt.Format(tsFormat))
	return chat.WithKeyboard(text, chat.Keyboard{buttons})
}

func goalListReply(goals []*entity.Goal) chat.Reply {
	if len(goals) == 0 {
		return chat.WithKeyboard(msgNoGoals, chat.Keyboard{backRow(cbGoals)})
	}

	text := "🎯 Your goals:\n\n"
	var keyboard chat.Keyboard
	for _, goal := range goals {
		text += fmt.Sprintf("• %s\n📄 %s\n📅 %s\n📌 Status: %s\n\n",
			goal.Title, goal.Description, goal.CreatedAt.Format(tsFormat), goal.Status)
		keyboard = append(keyboard, chat.Row(
			chat.Btn("❌ Delete: "+goal.Title, prefixDeleteGoal+goal.Id.String()),
		))
	}
	keyboard = append(keyboard, backRow(cbGoals))
	return chat.WithKeyboard(text, keyboard)
}

func guessWinReply(attempts int) chat.Reply {
	return chat.WithKeyboard(
		fmt.Sprintf("🎉 Congratulations! You guessed the number in %d attempts!", attempts),
		chat.Keyboard{chat.Row(
			chat.Btn("🎮 Games", cbGamesMenu),
			chat.Btn("🎲 Play again", cbGameGuess),
		)},
	)
}

var rpsEmoji = map[games.RPSChoice]string{
	games.Rock:     "✊",
	games.Paper:    "✋",
	games.Scissors: "✌️",
}

func rpsStartReply() chat.Reply {
	return chat.WithKeyboard(
		"🎮 'Rock-paper-scissors'!\n\nPick your move:",
		chat.Keyboard{chat.Row(
			chat.Btn("✊", prefixRPS+string(games.Rock)),
			chat.Btn("✋", prefixRPS+string(games.Paper)),
			chat.Btn("✌️", prefixRPS+string(games.Scissors)),
		)},
	)
}

func rpsResultReply(player, bot games.RPSChoice, outcome games.RPSOutcome) chat.Reply {
	var result string
	switch outcome {
	case games.RPSDraw:
		result = "It's a draw! 🤝"
	case games.RPSWin:
		result = "You win! 🎉"
	default:
		result = "I win! 😎"
	}

	text := fmt.Sprintf(
		"🎮 Game result:\n\n"+
			"Your move: %s\n"+
			"My move: %s\n\n"+
			"Result: %s\n\n"+
			"Press '🎮 Games' or send /rps to play again",
		rpsEmoji[player], rpsEmoji[bot], result,
	)
	return chat.WithKeyboard(text, chat.Keyboard{chat.Row(
		chat.Btn("🎮 Games", cbGamesMenu),
		chat.Btn("✊ Play again", cbGameRPS),
	)})
}

func quizQuestionReply(index int) chat.Reply {
	question := games.QuizQuestions[index]
	var keyboard chat.Keyboard
	for i, option := range question.Options {
		keyboard = append(keyboard, chat.Row(chat.Btn(option, prefixQuiz+strconv.Itoa(i))))
	}

	text := fmt.Sprintf("❓ Question %d of %d:\n\n%s",
		index+1, len(games.QuizQuestions), question.Text)
	return chat.WithKeyboard(text, keyboard)
}

func quizFinishedReply(score int) chat.Reply {
	text := fmt.Sprintf(
		"🎉 Quiz finished!\n\n"+
			"Your score: %d out of %d correct answers!\n\n"+
			"Press the button below or send /quiz to play again",
		score, len(games.QuizQuestions),
	)
	return chat.WithKeyboard(text, chat.Keyboard{chat.Row(
		chat.Btn("🎮 Games", cbGamesMenu),
		chat.Btn("❓ Play again", cbGameQuiz),
	)})
}
