package telegram

import (
	"testing"

	"notibot-be/internal/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msgUpdate(m *IncomingMessage) *Update {
	m.From = &ApiUser{ID: 7, Username: "tester", FirstName: "Test"}
	m.Chat = ApiChat{ID: 7}
	return &Update{Message: m}
}

func TestParseUpdateCommand(t *testing.T) {
	ev, ok := ParseUpdate(msgUpdate(&IncomingMessage{Text: "/convert 100 USD EUR"}))

	require.True(t, ok)
	assert.Equal(t, chat.EventCommand, ev.Kind)
	assert.Equal(t, "convert", ev.Command)
	assert.Equal(t, []string{"100", "USD", "EUR"}, ev.Args)
	assert.Equal(t, int64(7), ev.Sender.TelegramID)
}

func TestParseUpdateCommandStripsBotName(t *testing.T) {
	ev, ok := ParseUpdate(msgUpdate(&IncomingMessage{Text: "/Start@notibot"}))

	require.True(t, ok)
	assert.Equal(t, "start", ev.Command)
	assert.Empty(t, ev.Args)
}

func TestParseUpdateText(t *testing.T) {
	ev, ok := ParseUpdate(msgUpdate(&IncomingMessage{Text: "hello there"}))

	require.True(t, ok)
	assert.Equal(t, chat.EventText, ev.Kind)
	assert.Equal(t, "hello there", ev.Text)
}

func TestParseUpdatePhotoPicksLargest(t *testing.T) {
	ev, ok := ParseUpdate(msgUpdate(&IncomingMessage{
		Photo: []PhotoSize{
			{FileID: "small", Width: 90},
			{FileID: "medium", Width: 320},
			{FileID: "large", Width: 1280},
		},
		Caption: "look at this",
	}))

	require.True(t, ok)
	assert.Equal(t, chat.EventPhoto, ev.Kind)
	assert.Equal(t, "large", ev.PhotoFileID)
	assert.Equal(t, "look at this", ev.Caption)
}

func TestParseUpdateCallback(t *testing.T) {
	ev, ok := ParseUpdate(&Update{
		CallbackQuery: &CallbackQuery{
			ID:      "cb-1",
			From:    &ApiUser{ID: 7},
			Data:    "games_menu",
			Message: &IncomingMessage{Chat: ApiChat{ID: 7}},
		},
	})

	require.True(t, ok)
	assert.Equal(t, chat.EventCallback, ev.Kind)
	assert.Equal(t, "games_menu", ev.Callback)
	assert.Equal(t, "cb-1", ev.CallbackID)
}

func TestParseUpdateIgnoresUnhandled(t *testing.T) {
	_, ok := ParseUpdate(&Update{})
	assert.False(t, ok)

	// A sticker-like message: no text, no photo.
	_, ok = ParseUpdate(msgUpdate(&IncomingMessage{}))
	assert.False(t, ok)
}
