package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"notibot-be/internal/chat"
	"notibot-be/internal/conversation"
	"notibot-be/internal/entity"
	"notibot-be/internal/pkg/boterr"
	"notibot-be/internal/provider"
	"notibot-be/internal/repository/memory"
	"notibot-be/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel records everything the router sends.
type fakeChannel struct {
	replies []chat.Reply
	acks    []string
}

func (c *fakeChannel) Send(_ context.Context, _ int64, reply chat.Reply) error {
	c.replies = append(c.replies, reply)
	return nil
}

func (c *fakeChannel) AnswerCallback(_ context.Context, callbackID string) error {
	c.acks = append(c.acks, callbackID)
	return nil
}

func (c *fakeChannel) last(t *testing.T) chat.Reply {
	t.Helper()
	require.NotEmpty(t, c.replies, "expected at least one reply")
	return c.replies[len(c.replies)-1]
}

func (c *fakeChannel) reset() {
	c.replies = nil
	c.acks = nil
}

type fakeUserService struct {
	users map[int64]*entity.User
}

func (s *fakeUserService) FindByTelegramId(_ context.Context, telegramId int64) (*entity.User, error) {
	return s.users[telegramId], nil
}

func (s *fakeUserService) Register(_ context.Context, sender chat.Sender) (*entity.User, bool, error) {
	if u, ok := s.users[sender.TelegramID]; ok {
		return u, false, nil
	}
	u := &entity.User{
		Id:         uuid.New(),
		TelegramId: sender.TelegramID,
		Username:   sender.Username,
		FirstName:  sender.FirstName,
		CreatedAt:  time.Now(),
	}
	s.users[sender.TelegramID] = u
	return u, true, nil
}

type fakeNoteService struct {
	notes  []*entity.Note
	images map[uuid.UUID]*entity.Image
}

func (s *fakeNoteService) Create(_ context.Context, userId uuid.UUID, content string) (*entity.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, boterr.Validation("note content cannot be empty")
	}
	note := &entity.Note{Id: uuid.New(), UserId: userId, Content: content, CreatedAt: time.Now()}
	s.notes = append(s.notes, note)
	return note, nil
}

func (s *fakeNoteService) List(_ context.Context, userId uuid.UUID) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range s.notes {
		if n.UserId == userId {
			n.HasImage = s.images[n.Id] != nil
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *fakeNoteService) Delete(_ context.Context, userId uuid.UUID, id uuid.UUID) error {
	for i, n := range s.notes {
		if n.Id == id && n.UserId == userId {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return boterr.NotFound("note not found")
}

func (s *fakeNoteService) AttachImage(_ context.Context, userId uuid.UUID, noteId uuid.UUID, fileId, caption string) error {
	for _, n := range s.notes {
		if n.Id == noteId && n.UserId == userId {
			s.images[noteId] = &entity.Image{
				Id: uuid.New(), UserId: userId, FileId: fileId,
				Description: caption, NoteId: &noteId,
			}
			return nil
		}
	}
	return boterr.NotFound("note not found")
}

func (s *fakeNoteService) ImageFor(_ context.Context, userId uuid.UUID, noteId uuid.UUID) (*entity.Image, *entity.Note, error) {
	image := s.images[noteId]
	if image == nil {
		return nil, nil, boterr.NotFound("no image attached to this note")
	}
	for _, n := range s.notes {
		if n.Id == noteId {
			return image, n, nil
		}
	}
	return image, nil, nil
}

type fakeGoalService struct {
	goals []*entity.Goal
}

func (s *fakeGoalService) Create(_ context.Context, userId uuid.UUID, title, description string) (*entity.Goal, error) {
	goal := &entity.Goal{
		Id: uuid.New(), UserId: userId, Title: title,
		Description: description, Status: entity.GoalStatusInProgress,
		CreatedAt: time.Now(),
	}
	s.goals = append(s.goals, goal)
	return goal, nil
}

func (s *fakeGoalService) List(_ context.Context, userId uuid.UUID) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, g := range s.goals {
		if g.UserId == userId {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *fakeGoalService) Delete(_ context.Context, userId uuid.UUID, id uuid.UUID) error {
	for i, g := range s.goals {
		if g.Id == id && g.UserId == userId {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return boterr.NotFound("goal not found")
}

type fakeMessageService struct {
	archived []string
}

func (s *fakeMessageService) Archive(_ context.Context, userId uuid.UUID, text string) (*entity.Message, error) {
	s.archived = append(s.archived, text)
	return &entity.Message{Id: uuid.New(), UserId: userId, Content: text}, nil
}

type fakeStatsService struct {
	counts service.StatsCounts
}

func (s *fakeStatsService) Counts(_ context.Context, _ uuid.UUID) (*service.StatsCounts, error) {
	return &s.counts, nil
}

type fakeWeather struct {
	weather *provider.Weather
	err     error
}

func (f *fakeWeather) Current(_ context.Context, city string) (*provider.Weather, error) {
	if f.err != nil {
		return nil, f.err
	}
	w := *f.weather
	w.City = city
	return &w, nil
}

type fakeRates struct {
	rates map[string]float64
	err   error
}

func (f *fakeRates) Latest(_ context.Context, _ string) (map[string]float64, error) {
	return f.rates, f.err
}

type routerFixture struct {
	router   *Router
	channel  *fakeChannel
	users    *fakeUserService
	notes    *fakeNoteService
	goals    *fakeGoalService
	messages *fakeMessageService
	user     *entity.User
}

const testTelegramID int64 = 100

func newFixture(t *testing.T) *routerFixture {
	t.Helper()

	channel := &fakeChannel{}
	users := &fakeUserService{users: map[int64]*entity.User{}}
	notes := &fakeNoteService{images: map[uuid.UUID]*entity.Image{}}
	goals := &fakeGoalService{}
	messages := &fakeMessageService{}

	router := NewRouter(RouterDeps{
		Channel:        channel,
		Conversations:  conversation.NewManager(memory.NewStateRepository()),
		UserService:    users,
		NoteService:    notes,
		GoalService:    goals,
		MessageService: messages,
		StatsService:   &fakeStatsService{counts: service.StatsCounts{Notes: 2, Goals: 1, Images: 1, Messages: 5}},
		Weather:        &fakeWeather{weather: &provider.Weather{Temperature: -3.4, WindSpeed: 5.2, Humidity: 81, Description: "Light snow"}},
		Rates:          &fakeRates{rates: map[string]float64{"USD": 0.011, "EUR": 0.92, "GBP": 0.0088, "CNY": 0.079}},
		DefaultCity:    "Pskov",
	})

	f := &routerFixture{
		router:   router,
		channel:  channel,
		users:    users,
		notes:    notes,
		goals:    goals,
		messages: messages,
	}

	user, _, err := users.Register(context.Background(), chat.Sender{TelegramID: testTelegramID, FirstName: "Test"})
	require.NoError(t, err)
	f.user = user
	return f
}

func (f *routerFixture) command(name string, args ...string) {
	f.router.Route(context.Background(), chat.Event{
		Kind:    chat.EventCommand,
		Sender:  chat.Sender{TelegramID: testTelegramID, FirstName: "Test"},
		ChatID:  testTelegramID,
		Command: name,
		Args:    args,
	})
}

func (f *routerFixture) text(text string) {
	f.router.Route(context.Background(), chat.Event{
		Kind:   chat.EventText,
		Sender: chat.Sender{TelegramID: testTelegramID, FirstName: "Test"},
		ChatID: testTelegramID,
		Text:   text,
	})
}

func (f *routerFixture) press(data string) {
	f.router.Route(context.Background(), chat.Event{
		Kind:       chat.EventCallback,
		Sender:     chat.Sender{TelegramID: testTelegramID, FirstName: "Test"},
		ChatID:     testTelegramID,
		Callback:   data,
		CallbackID: "cb-" + data,
	})
}

func (f *routerFixture) photo(fileID, caption string) {
	f.router.Route(context.Background(), chat.Event{
		Kind:        chat.EventPhoto,
		Sender:      chat.Sender{TelegramID: testTelegramID, FirstName: "Test"},
		ChatID:      testTelegramID,
		PhotoFileID: fileID,
		Caption:     caption,
	})
}

func (f *routerFixture) mode() conversation.Mode {
	return f.router.conversations.Mode(testTelegramID)
}

func TestStartRegistersAndWelcomes(t *testing.T) {
	f := newFixture(t)
	delete(f.users.users, testTelegramID)

	f.command(CmdStart)

	assert.NotNil(t, f.users.users[testTelegramID])
	reply := f.channel.last(t)
	assert.Contains(t, reply.Text, "Hi, Test!")
	assert.Equal(t,
		[]string{labelNotes, labelGoals, labelWeather, labelCurrency, labelStats, labelGames, labelHelp},
		reply.QuickReplies,
		"/start installs the persistent quick-reply keyboard")
}

func TestQuickReplyLabelsAllRoute(t *testing.T) {
	f := newFixture(t)

	f.command(CmdStart)
	labels := f.channel.last(t).QuickReplies

	// Every label on the keyboard /start installs must hit a feature
	// handler, never the archive fallback.
	for _, label := range labels {
		f.channel.reset()
		f.text(label)
		assert.NotEqual(t, msgTextArchived, f.channel.last(t).Text, "label %q fell through to archive", label)
	}
	assert.Empty(t, f.messages.archived)
}

func TestUninitializedUserIsGated(t *testing.T) {
	f := newFixture(t)
	delete(f.users.users, testTelegramID)

	f.text("hello")

	assert.Equal(t, msgUninitialized, f.channel.last(t).Text)
	assert.Empty(t, f.messages.archived, "nothing is archived before /start")
}

func TestNoteFlow(t *testing.T) {
	f := newFixture(t)

	f.press(cbCreateNote)
	assert.Equal(t, msgNotePrompt, f.channel.last(t).Text)
	assert.Equal(t, conversation.ModeAwaitingNote, f.mode())

	f.text("buy milk")
	assert.Equal(t, msgNoteSaved, f.channel.last(t).Text)
	assert.Equal(t, conversation.ModeIdle, f.mode())
	require.Len(t, f.notes.notes, 1)
	assert.Equal(t, "buy milk", f.notes.notes[0].Content)
}

func TestNoteFlowRejectsBlankAndStays(t *testing.T) {
	f := newFixture(t)

	f.press(cbCreateNote)
	f.text("   ")

	assert.Equal(t, msgNoteEmpty, f.channel.last(t).Text)
	assert.Equal(t, conversation.ModeAwaitingNote, f.mode(), "a blank submission re-prompts without leaving the flow")
	assert.Empty(t, f.notes.notes)
}

func TestGoalFlow(t *testing.T) {
	f := newFixture(t)

	f.press(cbCreateGoal)
	assert.Equal(t, conversation.ModeAwaitingGoalTitle, f.mode())

	f.text("  ")
	assert.Equal(t, msgGoalTitleEmpty, f.channel.last(t).Text)
	assert.Equal(t, conversation.ModeAwaitingGoalTitle, f.mode())

	f.text("Run a marathon")
	assert.Equal(t, msgGoalDesc, f.channel.last(t).Text)
	assert.Equal(t, conversation.ModeAwaitingGoalDesc, f.mode())

	f.text("Train three times a week")
	assert.Equal(t, msgGoalCreated, f.channel.last(t).Text)
	assert.Equal(t, conversation.ModeIdle, f.mode())
	require.Len(t, f.goals.goals, 1)
	assert.Equal(t, "Run a marathon", f.goals.goals[0].Title)
	assert.Equal(t, "Train three times a week", f.goals.goals[0].Description)
	assert.Equal(t, entity.GoalStatusInProgress, f.goals.goals[0].Status)
}

func TestCancelAbortsFlow(t *testing.T) {
	f := newFixture(t)

	f.press(cbCreateNote)
	f.command(CmdCancel)

	assert.Equal(t, msgCancelled, f.channel.last(t).Text)
	assert.Equal(t, conversation.ModeIdle, f.mode())

	f.command(CmdCancel)
	assert.Equal(t, msgNothingToCancel, f.channel.last(t).Text)
}

func TestNewFlowSupersedesOldOne(t *testing.T) {
	f := newFixture(t)

	f.command(CmdGuess)
	assert.Equal(t, conversation.ModeGuessingNumber, f.mode())

	f.press(cbCreateNote)
	assert.Equal(t, conversation.ModeAwaitingNote, f.mode())

	f.text("a note, not a guess")
	assert.Equal(t, msgNoteSaved, f.channel.last(t).Text)
}

func TestGuessGame(t *testing.T) {
	f := newFixture(t)

	f.command(CmdGuess)
	assert.Equal(t, msgGuessStart, f.channel.last(t).Text)

	// Pin the secret so the run is deterministic.
	f.router.conversations.SetMode(testTelegramID, conversation.ModeGuessingNumber,
		conversation.GuessGame{Secret: 37})

	f.text("50")
	assert.Equal(t, msgGuessLower, f.channel.last(t).Text)

	f.text("10")
	assert.Equal(t, msgGuessHigher, f.channel.last(t).Text)

	f.text("not a number")
	assert.Equal(t, msgGuessNotNumber, f.channel.last(t).Text)

	f.text("37")
	assert.Contains(t, f.channel.last(t).Text, "guessed the number in 3 attempts")
	assert.Equal(t, conversation.ModeIdle, f.mode())
}

func TestRPSRound(t *testing.T) {
	f := newFixture(t)

	f.command(CmdRPS)
	assert.Contains(t, f.channel.last(t).Text, "Pick your move")

	f.press(prefixRPS + "rock")
	reply := f.channel.last(t)
	assert.Contains(t, reply.Text, "Game result")
	assert.Contains(t, reply.Text, "Your move: ✊")
}

func TestQuizFullRun(t *testing.T) {
	f := newFixture(t)

	f.command(CmdQuiz)
	assert.Contains(t, f.channel.last(t).Text, "Question 1 of 3")

	f.channel.reset()
	f.press(prefixQuiz + "1") // Jupiter: correct
	require.Len(t, f.channel.replies, 2)
	assert.Equal(t, "✅ Correct!", f.channel.replies[0].Text)
	assert.Contains(t, f.channel.replies[1].Text, "Question 2 of 3")

	f.channel.reset()
	f.press(prefixQuiz + "0") // continents: wrong, correct is 7
	require.Len(t, f.channel.replies, 2)
	assert.Contains(t, f.channel.replies[0].Text, "Wrong")
	assert.Contains(t, f.channel.replies[0].Text, "7")

	f.press(prefixQuiz + "0") // bear: correct
	assert.Contains(t, f.channel.last(t).Text, "Your score: 2 out of 3")
	assert.Equal(t, conversation.ModeIdle, f.mode())
}

func TestQuizAnswerWithoutActiveQuiz(t *testing.T) {
	f := newFixture(t)

	f.press(prefixQuiz + "1")

	assert.Equal(t, msgQuizNotActive, f.channel.last(t).Text)
}

func TestWeatherDefaultCityAndArgs(t *testing.T) {
	f := newFixture(t)

	f.command(CmdWeather)
	assert.Contains(t, f.channel.last(t).Text, "Weather in Pskov")

	f.command(CmdWeather, "Saint", "Petersburg")
	assert.Contains(t, f.channel.last(t).Text, "Weather in Saint Petersburg")
}

func TestWeatherCityNotFound(t *testing.T) {
	f := newFixture(t)
	f.router.weather = &fakeWeather{err: boterr.NotFound("city not found")}

	f.command(CmdWeather, "Tartarus")

	assert.Equal(t, "❌ city not found", f.channel.last(t).Text)
}

func TestCurrencyOverview(t *testing.T) {
	f := newFixture(t)

	f.command(CmdCurrency)

	text := f.channel.last(t).Text
	assert.Contains(t, text, "1 RUB = 0.01 USD")
	assert.Contains(t, text, "1 RUB = 0.92 EUR")
	assert.Contains(t, text, "/convert <amount> <from> <to>")
}

func TestConvert(t *testing.T) {
	f := newFixture(t)

	f.command(CmdConvert, "100", "usd", "eur")

	text := f.channel.last(t).Text
	assert.Contains(t, text, "100 USD = 92.00 EUR")
	assert.Contains(t, text, "1 USD = 0.9200 EUR")
}

func TestConvertRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	f.command(CmdConvert, "100", "USD")
	assert.Contains(t, f.channel.last(t).Text, "Wrong command format")

	f.command(CmdConvert, "abc", "USD", "EUR")
	assert.Contains(t, f.channel.last(t).Text, "The amount must be a number")

	f.command(CmdConvert, "100", "USD", "XXX")
	assert.Contains(t, f.channel.last(t).Text, "Currency XXX not found")
}

func TestStats(t *testing.T) {
	f := newFixture(t)

	f.command(CmdStats)

	text := f.channel.last(t).Text
	assert.Contains(t, text, "Notes: 2")
	assert.Contains(t, text, "Goals: 1")
	assert.Contains(t, text, "Images: 1")
	assert.Contains(t, text, "Messages: 5")
}

func TestUnknownTextIsArchived(t *testing.T) {
	f := newFixture(t)

	f.text("remember to water the plants")

	assert.Equal(t, []string{"remember to water the plants"}, f.messages.archived)
	assert.Equal(t, msgTextArchived, f.channel.last(t).Text)
}

func TestMenuLabelIsNotArchived(t *testing.T) {
	f := newFixture(t)

	f.text(labelGames)

	assert.Empty(t, f.messages.archived)
	assert.Contains(t, f.channel.last(t).Text, "Pick a game")
}

func TestListNotesOneMessagePerNote(t *testing.T) {
	f := newFixture(t)
	f.notes.Create(context.Background(), f.user.Id, "first")
	f.notes.Create(context.Background(), f.user.Id, "second")

	f.channel.reset()
	f.press(cbListNotes)

	// Two note cards plus the navigation prompt.
	require.Len(t, f.channel.replies, 3)
	assert.Contains(t, f.channel.replies[0].Text, "first")
	assert.Contains(t, f.channel.replies[1].Text, "second")
	assert.Equal(t, msgPickNote, f.channel.replies[2].Text)

	// A note without an image offers attach, not show.
	firstRow := f.channel.replies[0].Keyboard[0]
	assert.Equal(t, prefixAddImage+f.notes.notes[0].Id.String(), firstRow[0].Data)
	assert.Equal(t, prefixDeleteNote+f.notes.notes[0].Id.String(), firstRow[1].Data)
}

func TestDeleteNote(t *testing.T) {
	f := newFixture(t)
	note, _ := f.notes.Create(context.Background(), f.user.Id, "to delete")

	f.press(prefixDeleteNote + note.Id.String())

	assert.Empty(t, f.notes.notes)
	require.GreaterOrEqual(t, len(f.channel.replies), 2)
	assert.Equal(t, msgNoteDeleted, f.channel.replies[len(f.channel.replies)-2].Text)
}

func TestDeleteMissingNoteRerendersMenu(t *testing.T) {
	f := newFixture(t)

	f.press(prefixDeleteNote + uuid.NewString())

	require.GreaterOrEqual(t, len(f.channel.replies), 2)
	assert.Contains(t, f.channel.replies[len(f.channel.replies)-2].Text, "note not found")
	assert.Contains(t, f.channel.last(t).Text, "Notes management")
}

func TestAttachImageFlow(t *testing.T) {
	f := newFixture(t)
	note, _ := f.notes.Create(context.Background(), f.user.Id, "with image")

	f.press(prefixAddImage + note.Id.String())
	assert.Equal(t, msgImagePrompt, f.channel.last(t).Text)

	f.photo("file-123", "holiday pic")
	assert.Equal(t, msgImageAttached, f.channel.last(t).Text)
	require.NotNil(t, f.notes.images[note.Id])
	assert.Equal(t, "file-123", f.notes.images[note.Id].FileId)

	// The marker is consumed; a second photo has no target.
	f.photo("file-456", "")
	assert.Equal(t, msgImageNoTarget, f.channel.last(t).Text)
}

func TestPhotoWithoutMarkerIsNotStored(t *testing.T) {
	f := newFixture(t)

	f.photo("file-789", "stray caption")

	assert.Equal(t, msgImageNoTarget, f.channel.last(t).Text)
	assert.Empty(t, f.notes.images)
	assert.Empty(t, f.messages.archived, "a stray caption never becomes a note or message")
}

func TestShowImage(t *testing.T) {
	f := newFixture(t)
	note, _ := f.notes.Create(context.Background(), f.user.Id, "with image")
	require.NoError(t, f.notes.AttachImage(context.Background(), f.user.Id, note.Id, "file-123", "pic"))

	f.press(prefixShowImage + note.Id.String())

	reply := f.channel.last(t)
	assert.Equal(t, "file-123", reply.PhotoFileID)
	assert.Contains(t, reply.Text, "with image")
}

func TestCallbacksAreAcknowledged(t *testing.T) {
	f := newFixture(t)

	f.press(cbGamesMenu)

	assert.Equal(t, []string{"cb-" + cbGamesMenu}, f.channel.acks)
}

func TestCancelClearsPendingImageMarker(t *testing.T) {
	f := newFixture(t)
	note, _ := f.notes.Create(context.Background(), f.user.Id, "target")

	f.press(prefixAddImage + note.Id.String())
	f.command(CmdCancel)
	assert.Equal(t, msgCancelled, f.channel.last(t).Text)

	f.photo("file-1", "")
	assert.Equal(t, msgImageNoTarget, f.channel.last(t).Text)
	assert.Empty(t, f.notes.images)
}
