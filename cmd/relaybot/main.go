// Command relaybot is the Discord-facing composition root: it wires config,
// directory, providers, cache, orchestrator, target resolver, preference
// store, and broadcaster together and drives them from discordgo message
// events. Structurally grounded in the teacher's cmd/main.go (logger setup,
// config load, graceful shutdown via signal.Notify), generalized from an
// HTTP server to a Discord gateway client.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tesseract-hub/polyglot-relay/internal/broadcast"
	"github.com/tesseract-hub/polyglot-relay/internal/cache"
	"github.com/tesseract-hub/polyglot-relay/internal/config"
	"github.com/tesseract-hub/polyglot-relay/internal/directory"
	"github.com/tesseract-hub/polyglot-relay/internal/normalize"
	"github.com/tesseract-hub/polyglot-relay/internal/orchestrator"
	"github.com/tesseract-hub/polyglot-relay/internal/preference"
	"github.com/tesseract-hub/polyglot-relay/internal/provider"
	"github.com/tesseract-hub/polyglot-relay/internal/target"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	log := logger.WithField("service", "relaybot")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	dir, err := directory.Load(cfg.Translation.LanguageDirectoryPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load language directory")
	}
	normalizer := normalize.New(dir)

	premium := provider.NewPremiumAdapter(cfg.Translation.PremiumAPIKey, cfg.Translation.PremiumBaseURL, cfg.Translation.ProviderTimeout, log.WithField("provider", "premium"))
	free := provider.NewFreeAdapter(cfg.Translation.FreeBaseURL, cfg.Translation.FreeAPIKey, cfg.Translation.FreeUserIdentity, cfg.Translation.ProviderTimeout, log.WithField("provider", "free"))
	broad := provider.NewBroadAdapter(cfg.Translation.BroadAPIKey, cfg.Translation.BroadBaseURL, cfg.Translation.BroadEnabled, cfg.Translation.ProviderTimeout, log.WithField("provider", "broad"))

	dir.SetCapabilities(string(provider.Premium), premium.SupportedTargets())
	dir.SetCapabilities(string(provider.Free), free.SupportedTargets())
	dir.SetCapabilities(string(provider.Broad), broad.SupportedTargets())

	tiers := []provider.Adapter{premium, free, broad}
	tCache := cache.New(cfg.Translation.CacheCapacity, cfg.Translation.CacheTTL)
	orch := orchestrator.New(tiers, tCache, log.WithField("component", "orchestrator"), nil)
	resolver := target.New(normalizer)

	var prefStore *preference.Store
	if cfg.Database.Password != "" || cfg.Database.Host != "localhost" {
		db, err := connectDatabase(&cfg.Database)
		if err != nil {
			log.WithError(err).Warn("failed to connect to preference database, preferences will not persist")
		} else {
			prefStore = preference.NewStore(db)
			if err := prefStore.Migrate(); err != nil {
				log.WithError(err).Warn("failed to migrate preference table")
			}
		}
	}

	session, err := discordgo.New("Bot " + cfg.Discord.BotToken)
	if err != nil {
		log.WithError(err).Fatal("failed to construct discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsGuildMembers | discordgo.IntentsMessageContent

	platform := newDiscordPlatform(session, defaultRoleLanguages(), log.WithField("component", "discord"))
	broadcaster := broadcast.New(orch, platform.SendDirectMessage, cfg.Translation.BroadcastGroupConcurrency, cfg.Translation.BroadcastDMConcurrency, log.WithField("component", "broadcast"))

	bot := &relayBot{
		cfg:         cfg,
		normalizer:  normalizer,
		orch:        orch,
		resolver:    resolver,
		broadcaster: broadcaster,
		platform:    platform,
		prefStore:   prefStore,
		logger:      log,
	}

	session.AddHandler(bot.onMessageCreate)

	if err := session.Open(); err != nil {
		log.WithError(err).Fatal("failed to open discord session")
	}
	log.Info("relaybot connected")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down relaybot")
	if err := session.Close(); err != nil {
		log.WithError(err).Warn("error closing discord session")
	}
}

func connectDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
}

// defaultRoleLanguages maps Discord role names to LanguageCodes for the
// RoleLookup step of TargetResolver (spec.md 4.6 step 3). Guild operators are
// expected to create roles with these exact names; a configuration-driven
// mapping is a natural follow-up once multi-guild customization is needed.
func defaultRoleLanguages() map[string]string {
	return map[string]string{
		"speaks english":    "en",
		"speaks spanish":    "es",
		"speaks french":     "fr",
		"speaks german":     "de",
		"speaks portuguese": "pt",
		"speaks japanese":   "ja",
		"speaks korean":     "ko",
		"speaks chinese":    "zh",
		"speaks hindi":      "hi",
		"speaks arabic":     "ar",
	}
}

