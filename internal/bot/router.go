package bot

import (
	"context"
	"errors"
	"strings"
	"sync"

	"notibot-be/internal/chat"
	"notibot-be/internal/conversation"
	"notibot-be/internal/entity"
	"notibot-be/internal/pkg/boterr"
	"notibot-be/internal/pkg/logger"
	"notibot-be/internal/provider"
	"notibot-be/internal/service"
)

// RouterDeps bundles everything the router needs; all fields are required
// except Logger (nil disables logging, used by some tests).
type RouterDeps struct {
	Channel          chat.Channel
	Conversations    *conversation.Manager
	UserService      service.IUserService
	NoteService      service.INoteService
	GoalService      service.IGoalService
	MessageService   service.IMessageService
	StatsService     service.IStatsService
	PublisherService service.IPublisherService
	Weather          provider.IWeatherProvider
	Rates            provider.IRatesProvider
	Logger           logger.ILogger
	DefaultCity      string
}

// Router turns inbound chat events into service calls and replies. It is
// the only writer of conversation state.
type Router struct {
	channel       chat.Channel
	conversations *conversation.Manager
	userService   service.IUserService
	noteService   service.INoteService
	goalService   service.IGoalService
	msgService    service.IMessageService
	statsService  service.IStatsService
	publisher     service.IPublisherService
	weather       provider.IWeatherProvider
	rates         provider.IRatesProvider
	logger        logger.ILogger
	defaultCity   string

	// userLocks serializes event handling per telegram user id so that
	// concurrent webhook deliveries cannot interleave state transitions.
	userLocks sync.Map // int64 -> *sync.Mutex
}

func NewRouter(deps RouterDeps) *Router {
	return &Router{
		channel:       deps.Channel,
		conversations: deps.Conversations,
		userService:   deps.UserService,
		noteService:   deps.NoteService,
		goalService:   deps.GoalService,
		msgService:    deps.MessageService,
		statsService:  deps.StatsService,
		publisher:     deps.PublisherService,
		weather:       deps.Weather,
		rates:         deps.Rates,
		logger:        deps.Logger,
		defaultCity:   deps.DefaultCity,
	}
}

func (r *Router) lockFor(telegramId int64) *sync.Mutex {
	mu, _ := r.userLocks.LoadOrStore(telegramId, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Route handles one inbound event end to end. Events from the same user
// are processed strictly one at a time; errors are translated to a
// user-facing reply and never propagate to the transport.
func (r *Router) Route(ctx context.Context, ev chat.Event) {
	mu := r.lockFor(ev.Sender.TelegramID)
	mu.Lock()
	defer mu.Unlock()

	if ev.Kind == chat.EventCallback && ev.CallbackID != "" {
		_ = r.channel.AnswerCallback(ctx, ev.CallbackID)
	}

	if err := r.dispatch(ctx, ev); err != nil {
		r.respondError(ctx, ev, err)
	}
}

func (r *Router) dispatch(ctx context.Context, ev chat.Event) error {
	// /start is the only entry point that works before registration.
	if ev.Kind == chat.EventCommand && ev.Command == CmdStart {
		return r.handleStart(ctx, ev)
	}

	user, err := r.userService.FindByTelegramId(ctx, ev.Sender.TelegramID)
	if err != nil {
		return err
	}
	if user == nil {
		return boterr.UninitializedUser()
	}

	if ev.Kind == chat.EventCommand && ev.Command == CmdCancel {
		return r.handleCancel(ctx, ev)
	}

	// An active flow consumes free text, and quiz answers while a quiz
	// is running. Anything else falls through and supersedes the flow.
	state := r.conversations.State(ev.Sender.TelegramID)
	if state.Mode.Active() {
		switch {
		case ev.Kind == chat.EventText:
			return r.handleFlowText(ctx, ev, user, state)
		case ev.Kind == chat.EventCallback &&
			state.Mode == conversation.ModePlayingQuiz &&
			strings.HasPrefix(ev.Callback, prefixQuiz):
			return r.handleQuizAnswer(ctx, ev, user, state)
		}
	}

	switch ev.Kind {
	case chat.EventCommand:
		return r.dispatchCommand(ctx, ev, user)
	case chat.EventCallback:
		return r.dispatchCallback(ctx, ev, user)
	case chat.EventText:
		return r.dispatchText(ctx, ev, user)
	case chat.EventPhoto:
		return r.handlePhoto(ctx, ev, user)
	}
	return nil
}

func (r *Router) dispatchCommand(ctx context.Context, ev chat.Event, user *entity.User) error {
	switch ev.Command {
	case CmdNotes:
		return r.send(ctx, ev, notesMenuReply())
	case CmdGoals:
		return r.send(ctx, ev, goalsMenuReply())
	case CmdWeather:
		city := r.defaultCity
		if len(ev.Args) > 0 {
			city = strings.Join(ev.Args, " ")
		}
		return r.handleWeather(ctx, ev, city)
	case CmdCurrency:
		return r.handleCurrency(ctx, ev)
	case CmdConvert:
		return r.handleConvert(ctx, ev)
	case CmdStats:
		return r.handleStats(ctx, ev, user)
	case CmdGuess:
		return r.startGuess(ctx, ev)
	case CmdRPS:
		return r.send(ctx, ev, rpsStartReply())
	case CmdQuiz:
		return r.startQuiz(ctx, ev)
	default:
		return r.send(ctx, ev, chat.WithKeyboard(msgUnknownCommand, mainMenuKeyboard()))
	}
}

func (r *Router) dispatchCallback(ctx context.Context, ev chat.Event, user *entity.User) error {
	switch ev.Callback {
	case cbMainMenu:
		return r.send(ctx, ev, chat.WithKeyboard(welcomeText(user.FirstName), mainMenuKeyboard()))
	case cbNotes:
		return r.send(ctx, ev, notesMenuReply())
	case cbGoals:
		return r.send(ctx, ev, goalsMenuReply())
	case cbGamesMenu:
		return r.send(ctx, ev, gamesMenuReply())
	case cbWeather:
		return r.handleWeather(ctx, ev, r.defaultCity)
	case cbCurrency:
		return r.handleCurrency(ctx, ev)
	case cbStats:
		return r.handleStats(ctx, ev, user)
	case cbCreateNote:
		return r.startNoteCapture(ctx, ev)
	case cbListNotes:
		return r.handleListNotes(ctx, ev, user)
	case cbCreateGoal:
		return r.startGoalCapture(ctx, ev)
	case cbListGoals:
		return r.handleListGoals(ctx, ev, user)
	case cbGameGuess:
		return r.startGuess(ctx, ev)
	case cbGameRPS:
		return r.send(ctx, ev, rpsStartReply())
	case cbGameQuiz:
		return r.startQuiz(ctx, ev)
	}

	switch {
	case strings.HasPrefix(ev.Callback, prefixRPS):
		return r.handleRPS(ctx, ev, user)
	case strings.HasPrefix(ev.Callback, prefixQuiz):
		// A quiz answer can only land here when no quiz is running.
		return r.send(ctx, ev, chat.Text(msgQuizNotActive))
	case strings.HasPrefix(ev.Callback, prefixDeleteNote):
		return r.handleDeleteNote(ctx, ev, user)
	case strings.HasPrefix(ev.Callback, prefixDeleteGoal):
		return r.handleDeleteGoal(ctx, ev, user)
	case strings.HasPrefix(ev.Callback, prefixAddImage):
		return r.handleAddImage(ctx, ev)
	case strings.HasPrefix(ev.Callback, prefixShowImage):
		return r.handleShowImage(ctx, ev, user)
	}

	r.logWarn("router", "unknown callback", map[string]interface{}{
		"callback":    ev.Callback,
		"telegram_id": ev.Sender.TelegramID,
	})
	return nil
}

// dispatchText routes idle free text: quick-reply menu labels first, then
// the archive fallback.
func (r *Router) dispatchText(ctx context.Context, ev chat.Event, user *entity.User) error {
	switch strings.TrimSpace(ev.Text) {
	case labelNotes:
		return r.send(ctx, ev, notesMenuReply())
	case labelGoals:
		return r.send(ctx, ev, goalsMenuReply())
	case labelWeather:
		return r.handleWeather(ctx, ev, r.defaultCity)
	case labelCurrency:
		return r.handleCurrency(ctx, ev)
	case labelStats:
		return r.handleStats(ctx, ev, user)
	case labelGames:
		return r.send(ctx, ev, gamesMenuReply())
	case labelHelp:
		return r.send(ctx, ev, chat.WithKeyboard(welcomeText(user.FirstName), mainMenuKeyboard()))
	}

	if _, err := r.msgService.Archive(ctx, user.Id, ev.Text); err != nil {
		return err
	}
	return r.send(ctx, ev, chat.Text(msgTextArchived))
}

func (r *Router) handleStart(ctx context.Context, ev chat.Event) error {
	user, created, err := r.userService.Register(ctx, ev.Sender)
	if err != nil {
		return err
	}
	r.conversations.Clear(ev.Sender.TelegramID)
	if created {
		r.logInfo("router", "new user registered", map[string]interface{}{
			"telegram_id": user.TelegramId,
			"username":    user.Username,
		})
	}
	return r.send(ctx, ev, welcomeReply(user.FirstName))
}

func (r *Router) handleCancel(ctx context.Context, ev chat.Event) error {
	state := r.conversations.State(ev.Sender.TelegramID)
	if !state.Mode.Active() && state.PendingImageNote == nil {
		return r.send(ctx, ev, chat.Text(msgNothingToCancel))
	}
	r.conversations.Clear(ev.Sender.TelegramID)
	return r.send(ctx, ev, chat.Text(msgCancelled))
}

func (r *Router) send(ctx context.Context, ev chat.Event, reply chat.Reply) error {
	return r.channel.Send(ctx, ev.ChatID, reply)
}

// respondError translates a handler failure into a user-facing message.
// Validation and not-found messages are written for the user; everything
// else gets a generic apology and a log entry.
func (r *Router) respondError(ctx context.Context, ev chat.Event, err error) {
	var text string
	switch boterr.KindOf(err) {
	case boterr.KindUninitializedUser:
		text = msgUninitialized
	case boterr.KindValidation, boterr.KindNotFound:
		text = "❌ " + userMessage(err)
	case boterr.KindProviderFetch:
		text = msgProviderDown
		r.logWarn("router", "provider fetch failed", map[string]interface{}{
			"error":       err.Error(),
			"telegram_id": ev.Sender.TelegramID,
		})
	default:
		text = msgApology
		r.logError("router", "event handling failed", map[string]interface{}{
			"error":       err.Error(),
			"telegram_id": ev.Sender.TelegramID,
		})
	}

	if sendErr := r.send(ctx, ev, chat.Text(text)); sendErr != nil {
		r.logError("router", "failed to deliver error reply", map[string]interface{}{
			"error":       sendErr.Error(),
			"telegram_id": ev.Sender.TelegramID,
		})
	}
}

func userMessage(err error) string {
	var botErr *boterr.Error
	if errors.As(err, &botErr) {
		return botErr.Msg
	}
	return err.Error()
}

func (r *Router) logInfo(module, message string, details map[string]interface{}) {
	if r.logger != nil {
		r.logger.Info(module, message, details)
	}
}

func (r *Router) logWarn(module, message string, details map[string]interface{}) {
	if r.logger != nil {
		r.logger.Warn(module, message, details)
	}
}

func (r *Router) logError(module, message string, details map[string]interface{}) {
	if r.logger != nil {
		r.logger.Error(module, message, details)
	}
}
