package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	Keys     APIKeys
	Provider ProviderConfig
}

type AppConfig struct {
	Port        string
	Environment string
	LogFilePath string
	NatsURL     string
}

type DatabaseConfig struct {
	Connection string
}

type TelegramConfig struct {
	Token         string
	APIBaseURL    string
	WebhookSecret string
}

type APIKeys struct {
	Weather string
}

type ProviderConfig struct {
	WeatherBaseURL  string
	CurrencyBaseURL string
	DefaultCity     string
	CacheTTLMinutes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("APP_PORT", "3000"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "notibot.log"),
			NatsURL:     getEnv("NATS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Telegram: TelegramConfig{
			Token:         getEnv("TELEGRAM_TOKEN", ""),
			APIBaseURL:    getEnv("TELEGRAM_API_BASE_URL", "https://api.telegram.org"),
			WebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
		},
		Keys: APIKeys{
			Weather: getEnv("WEATHER_API_KEY", ""),
		},
		Provider: ProviderConfig{
			WeatherBaseURL:  getEnv("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
			CurrencyBaseURL: getEnv("CURRENCY_BASE_URL", "https://api.exchangerate-api.com/v4/latest"),
			DefaultCity:     getEnv("WEATHER_DEFAULT_CITY", "Pskov"),
			CacheTTLMinutes: getEnvAsInt("PROVIDER_CACHE_TTL_MINUTES", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
