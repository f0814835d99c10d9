// Package config loads the environment-variable configuration for the translation
// subsystem and the processes that host it.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the fully-resolved configuration for a relaybot/relayadmin process.
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Translation TranslationConfig
	Discord     DiscordConfig
	Admin       AdminConfig
}

// AppConfig carries process-wide identity and logging settings.
type AppConfig struct {
	Name        string
	Environment string
	LogLevel    string
}

// DatabaseConfig configures the optional user-preference store.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DiscordConfig configures the host-platform client.
type DiscordConfig struct {
	BotToken          string
	SOSPrefix         string
	SOSSourceLanguage string // declared language of SOS trigger text, for the broadcast's source==target fast path (spec.md 4.7 step 3a)
}

// AdminConfig configures the thin operational HTTP surface.
type AdminConfig struct {
	Host string
	Port int
}

// TranslationConfig carries every variable named in the translation subsystem's
// external-interfaces contract.
type TranslationConfig struct {
	PremiumAPIKey  string
	PremiumBaseURL string

	FreeAPIKey       string
	FreeUserIdentity string
	FreeBaseURL      string

	BroadEnabled bool
	BroadAPIKey  string
	BroadBaseURL string

	CacheTTL      time.Duration
	CacheCapacity int

	ProviderTimeout time.Duration

	BroadcastGroupConcurrency int
	BroadcastDMConcurrency    int

	LanguageDirectoryPath string
}

// Load reads an optional .env file and then the process environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "polyglot-relay"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "polyglot_relay"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Discord: DiscordConfig{
			BotToken:          getEnv("DISCORD_BOT_TOKEN", ""),
			SOSPrefix:         getEnv("SOS_TRIGGER", "!sos"),
			SOSSourceLanguage: getEnv("SOS_SOURCE_LANGUAGE", "en"),
		},
		Admin: AdminConfig{
			Host: getEnv("ADMIN_HOST", "0.0.0.0"),
			Port: getEnvAsInt("ADMIN_PORT", 8080),
		},
		Translation: TranslationConfig{
			PremiumAPIKey:  getEnv("PREMIUM_API_KEY", ""),
			PremiumBaseURL: getEnv("PREMIUM_BASE_URL", "https://translation.googleapis.com/language/translate/v2"),

			FreeAPIKey:       getEnv("FREE_API_KEY", ""),
			FreeUserIdentity: getEnv("FREE_USER_IDENTITY", ""),
			FreeBaseURL:      getEnv("FREE_BASE_URL", "http://libretranslate:5000"),

			BroadEnabled: getEnvAsBool("BROAD_ENABLED", true),
			BroadAPIKey:  getEnv("BROAD_API_KEY", ""),
			BroadBaseURL: getEnv("BROAD_BASE_URL", "http://huggingface-mt-service:8080"),

			CacheTTL:      time.Duration(getEnvAsInt("TRANSLATION_CACHE_TTL_SECONDS", 21600)) * time.Second,
			CacheCapacity: getEnvAsInt("TRANSLATION_CACHE_CAPACITY", 10000),

			ProviderTimeout: time.Duration(getEnvAsInt("PROVIDER_TIMEOUT_MS", 8000)) * time.Millisecond,

			BroadcastGroupConcurrency: getEnvAsInt("BROADCAST_GROUP_CONCURRENCY", 10),
			BroadcastDMConcurrency:    getEnvAsInt("BROADCAST_DM_CONCURRENCY", 5),

			LanguageDirectoryPath: getEnv("LANGUAGE_DIRECTORY_PATH", ""),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
