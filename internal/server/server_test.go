package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notibot-be/internal/bootstrap"
	"notibot-be/internal/bot"
	"notibot-be/internal/chat"
	"notibot-be/internal/config"
	"notibot-be/internal/conversation"
	"notibot-be/internal/entity"
	"notibot-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChannel struct {
	replies []chat.Reply
}

func (c *stubChannel) Send(_ context.Context, _ int64, reply chat.Reply) error {
	c.replies = append(c.replies, reply)
	return nil
}

func (c *stubChannel) AnswerCallback(context.Context, string) error {
	return nil
}

type stubUserService struct {
	users map[int64]*entity.User
}

func (s *stubUserService) FindByTelegramId(_ context.Context, telegramId int64) (*entity.User, error) {
	return s.users[telegramId], nil
}

func (s *stubUserService) Register(_ context.Context, sender chat.Sender) (*entity.User, bool, error) {
	if u, ok := s.users[sender.TelegramID]; ok {
		return u, false, nil
	}
	u := &entity.User{Id: uuid.New(), TelegramId: sender.TelegramID, FirstName: sender.FirstName, CreatedAt: time.Now()}
	s.users[sender.TelegramID] = u
	return u, true, nil
}

type stubMessageService struct {
	archived []string
}

func (s *stubMessageService) Archive(_ context.Context, userId uuid.UUID, text string) (*entity.Message, error) {
	s.archived = append(s.archived, text)
	return &entity.Message{Id: uuid.New(), UserId: userId, Content: text}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type webhookFixture struct {
	srv      *Server
	channel  *stubChannel
	users    *stubUserService
	messages *stubMessageService
}

func newWebhookFixture(secret string) *webhookFixture {
	channel := &stubChannel{}
	users := &stubUserService{users: map[int64]*entity.User{}}
	messages := &stubMessageService{}

	router := bot.NewRouter(bot.RouterDeps{
		Channel:        channel,
		Conversations:  conversation.NewManager(memory.NewStateRepository()),
		UserService:    users,
		MessageService: messages,
	})

	cfg := &config.Config{}
	cfg.Telegram.WebhookSecret = secret
	container := &bootstrap.Container{Router: router, Channel: channel, Logger: nopLogger{}}

	return &webhookFixture{
		srv:      New(cfg, container),
		channel:  channel,
		users:    users,
		messages: messages,
	}
}

func (f *webhookFixture) post(t *testing.T, body string, headers map[string]string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/webhook/telegram", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := f.srv.GetApp().Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestWebhookProcessesSequentialDeliveriesInOrder(t *testing.T) {
	f := newWebhookFixture("")

	// The second delivery must observe the registration the first one
	// wrote: the handler finishes routing before answering 200.
	status := f.post(t, `{"update_id":1,"message":{"message_id":1,"from":{"id":7,"first_name":"Test"},"chat":{"id":7},"text":"/start"}}`, nil)
	assert.Equal(t, 200, status)
	require.NotNil(t, f.users.users[7], "registration completed before the 200 went out")

	status = f.post(t, `{"update_id":2,"message":{"message_id":2,"from":{"id":7,"first_name":"Test"},"chat":{"id":7},"text":"remember this"}}`, nil)
	assert.Equal(t, 200, status)
	assert.Equal(t, []string{"remember this"}, f.messages.archived)
	assert.Len(t, f.channel.replies, 2)
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	f := newWebhookFixture("s3cret")

	status := f.post(t, `{"update_id":1}`, map[string]string{"X-Telegram-Bot-Api-Secret-Token": "wrong"})
	assert.Equal(t, 403, status)

	status = f.post(t, `{"update_id":1}`, map[string]string{"X-Telegram-Bot-Api-Secret-Token": "s3cret"})
	assert.Equal(t, 200, status)
}

func TestWebhookAcceptsUnhandledUpdates(t *testing.T) {
	f := newWebhookFixture("")

	// Updates the bot ignores (no message, no callback) still get a 200 so
	// Telegram does not redeliver them.
	status := f.post(t, `{"update_id":5}`, nil)
	assert.Equal(t, 200, status)
	assert.Empty(t, f.channel.replies)
}
