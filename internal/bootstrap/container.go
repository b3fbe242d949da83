package bootstrap

import (
	"log"
	"time"

	"notibot-be/internal/bot"
	"notibot-be/internal/chat"
	"notibot-be/internal/chat/telegram"
	"notibot-be/internal/config"
	"notibot-be/internal/conversation"
	"notibot-be/internal/pkg/logger"
	"notibot-be/internal/provider"
	"notibot-be/internal/repository/memory"
	"notibot-be/internal/repository/unitofwork"
	"notibot-be/internal/service"

	pktNats "notibot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

// activityTopic is the in-process topic all domain events flow through.
const activityTopic = "bot.activity"

type Container struct {
	Router  *bot.Router
	Channel chat.Channel
	Logger  logger.ILogger

	// Background services, exposed for main.go to run.
	ActivityService service.IActivityService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS mirror is optional; the bot runs fine without it.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	publisherService := service.NewPublisherService(pubSub, activityTopic)
	activityService := service.NewActivityService(pubSub, activityTopic, sysLogger, natsPub)

	// 3. Domain services
	userService := service.NewUserService(uowFactory)
	noteService := service.NewNoteService(uowFactory, publisherService)
	goalService := service.NewGoalService(uowFactory, publisherService)
	messageService := service.NewMessageService(uowFactory, publisherService)
	statsService := service.NewStatsService(uowFactory)

	// 4. External lookups
	ttl := time.Duration(cfg.Provider.CacheTTLMinutes) * time.Minute
	weatherProvider := provider.NewWeatherProvider(cfg.Keys.Weather, cfg.Provider.WeatherBaseURL, ttl)
	ratesProvider := provider.NewRatesProvider(cfg.Provider.CurrencyBaseURL, ttl)

	// 5. Conversation state and transport
	conversations := conversation.NewManager(memory.NewStateRepository())
	channel := telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.APIBaseURL)

	router := bot.NewRouter(bot.RouterDeps{
		Channel:          channel,
		Conversations:    conversations,
		UserService:      userService,
		NoteService:      noteService,
		GoalService:      goalService,
		MessageService:   messageService,
		StatsService:     statsService,
		PublisherService: publisherService,
		Weather:          weatherProvider,
		Rates:            ratesProvider,
		Logger:           sysLogger,
		DefaultCity:      cfg.Provider.DefaultCity,
	})

	return &Container{
		Router:          router,
		Channel:         channel,
		Logger:          sysLogger,
		ActivityService: activityService,
	}
}
