package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"notibot-be/internal/bot"
	"notibot-be/internal/chat"
	"notibot-be/internal/config"
	"notibot-be/internal/conversation"
	"notibot-be/internal/pkg/logger"
	"notibot-be/internal/provider"
	"notibot-be/internal/repository/memory"
	"notibot-be/internal/repository/unitofwork"
	"notibot-be/internal/service"
	"notibot-be/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"
)

// A local REPL that drives the router without Telegram. Input syntax:
//
//	/command arg...   slash command
//	>callback_data    button press
//	photo <file_id>   photo upload
//	anything else     free text
const simChatID = 1

var sender = chat.Sender{
	TelegramID: 1,
	Username:   "local",
	FirstName:  "Local",
	LastName:   "Tester",
}

// consoleChannel renders outbound replies to the terminal.
type consoleChannel struct {
	bot     *color.Color
	button  *color.Color
	photoFg *color.Color
}

func newConsoleChannel() *consoleChannel {
	return &consoleChannel{
		bot:     color.New(color.FgGreen),
		button:  color.New(color.FgCyan),
		photoFg: color.New(color.FgMagenta),
	}
}

func (c *consoleChannel) Send(_ context.Context, _ int64, reply chat.Reply) error {
	if reply.PhotoFileID != "" {
		c.photoFg.Printf("[photo %s]\n", reply.PhotoFileID)
	}
	c.bot.Println(reply.Text)
	for _, row := range reply.Keyboard {
		var cells []string
		for _, btn := range row {
			cells = append(cells, fmt.Sprintf("[%s](>%s)", btn.Label, btn.Data))
		}
		c.button.Println("  " + strings.Join(cells, " "))
	}
	fmt.Println()
	return nil
}

func (c *consoleChannel) AnswerCallback(_ context.Context, _ string) error {
	return nil
}

func parseLine(line string) (chat.Event, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return chat.Event{}, false
	}

	ev := chat.Event{Sender: sender, ChatID: simChatID}
	switch {
	case strings.HasPrefix(line, "/"):
		fields := strings.Fields(line[1:])
		if len(fields) == 0 {
			return chat.Event{}, false
		}
		ev.Kind = chat.EventCommand
		ev.Command = fields[0]
		ev.Args = fields[1:]
	case strings.HasPrefix(line, ">"):
		ev.Kind = chat.EventCallback
		ev.Callback = strings.TrimPrefix(line, ">")
	case strings.HasPrefix(line, "photo "):
		fields := strings.Fields(line)
		ev.Kind = chat.EventPhoto
		ev.PhotoFileID = fields[1]
		if len(fields) > 2 {
			ev.Caption = strings.Join(fields[2:], " ")
		}
	default:
		ev.Kind = chat.EventText
		ev.Text = line
	}
	return ev, true
}

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to run migrations: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisherService := service.NewPublisherService(pubSub, "bot.activity")
	activityService := service.NewActivityService(pubSub, "bot.activity", sysLogger, nil)
	if err := activityService.Consume(context.Background()); err != nil {
		log.Panicf("Unable to start activity consumer: %v", err)
	}

	ttl := time.Duration(cfg.Provider.CacheTTLMinutes) * time.Minute
	channel := newConsoleChannel()

	router := bot.NewRouter(bot.RouterDeps{
		Channel:          channel,
		Conversations:    conversation.NewManager(memory.NewStateRepository()),
		UserService:      service.NewUserService(uowFactory),
		NoteService:      service.NewNoteService(uowFactory, publisherService),
		GoalService:      service.NewGoalService(uowFactory, publisherService),
		MessageService:   service.NewMessageService(uowFactory, publisherService),
		StatsService:     service.NewStatsService(uowFactory),
		PublisherService: publisherService,
		Weather:          provider.NewWeatherProvider(cfg.Keys.Weather, cfg.Provider.WeatherBaseURL, ttl),
		Rates:            provider.NewRatesProvider(cfg.Provider.CurrencyBaseURL, ttl),
		Logger:           sysLogger,
		DefaultCity:      cfg.Provider.DefaultCity,
	})

	title := color.New(color.FgYellow, color.Bold)
	title.Println("notibot simulator. /start to begin, ctrl-d to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	prompt := color.New(color.FgYellow)
	for {
		prompt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		ev, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		router.Route(context.Background(), ev)
	}
}
