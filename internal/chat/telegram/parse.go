package telegram

import (
	"strings"

	"notibot-be/internal/chat"
)

// ParseUpdate maps a Telegram update onto a router event. The second
// return value is false for updates the bot does not handle (edits,
// stickers, channel posts).
func ParseUpdate(u *Update) (chat.Event, bool) {
	switch {
	case u.CallbackQuery != nil:
		q := u.CallbackQuery
		if q.From == nil || q.Message == nil {
			return chat.Event{}, false
		}
		return chat.Event{
			Kind:       chat.EventCallback,
			Sender:     toSender(q.From),
			ChatID:     q.Message.Chat.ID,
			Callback:   q.Data,
			CallbackID: q.ID,
		}, true

	case u.Message != nil:
		m := u.Message
		if m.From == nil {
			return chat.Event{}, false
		}
		ev := chat.Event{
			Sender: toSender(m.From),
			ChatID: m.Chat.ID,
		}

		if len(m.Photo) > 0 {
			ev.Kind = chat.EventPhoto
			// Telegram sends every resolution; the last entry is the largest.
			ev.PhotoFileID = m.Photo[len(m.Photo)-1].FileID
			ev.Caption = m.Caption
			return ev, true
		}

		if strings.HasPrefix(m.Text, "/") {
			name, args := splitCommand(m.Text)
			ev.Kind = chat.EventCommand
			ev.Command = name
			ev.Args = args
			return ev, true
		}

		if m.Text != "" {
			ev.Kind = chat.EventText
			ev.Text = m.Text
			return ev, true
		}
	}

	return chat.Event{}, false
}

func toSender(u *ApiUser) chat.Sender {
	return chat.Sender{
		TelegramID: u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
	}
}

// splitCommand parses "/convert 100 USD EUR" into ("convert",
// ["100","USD","EUR"]), stripping an optional @botname suffix.
func splitCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name), fields[1:]
}
