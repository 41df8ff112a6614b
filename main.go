package main

import (
	"context"
	"os"
	"os/signal"
	"respimg/internal/adapters/generator"
	"respimg/internal/adapters/handler"
	"respimg/internal/adapters/markup"
	"respimg/internal/adapters/probe"
	"respimg/internal/adapters/sender"
	"respimg/internal/core/domain"
	"respimg/internal/core/domain/commands"
	"respimg/internal/core/service"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting respimg...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.DefaultContextLogger = &log.Logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	token := viper.GetString("telegram.bot_token")
	opts := []bot.Option{
		bot.WithDefaultHandler(noOpHandler),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)

	imageConfig, err := service.NewImageConfigFromViper()
	if err != nil {
		log.Panic().Err(err).Msg("invalid image config")
	}

	renderer, err := service.NewRenderer(imageConfig)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing renderer")
	}

	var probeCache *service.Cache[domain.StaticAsset]
	if imageConfig.CacheEnabled {
		probeCache = service.NewCache[domain.StaticAsset]()
	}

	prober := probe.NewProber(probeCache)
	emitter := markup.NewEmitter()

	altGenerator := generator.NewOpenRouter(
		viper.GetString("openrouter.api_key"),
		viper.GetString("openrouter.model"),
		viper.GetString("openrouter.system_prompt"))

	authorizer, err := service.NewAuthorizer(s)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing authorizer")
	}

	tracker := service.NewUsageTracker(ctx, s)

	commandRegistry := &domain.CommandRegistry{}

	commandRegistry.Register(commands.NewRenderHandler(renderer, emitter, s, "/render"))
	commandRegistry.Register(commands.NewImportHandler(prober, renderer, emitter, s, "/import"))
	commandRegistry.Register(commands.NewParityHandler(prober, renderer, s, imageConfig.Granularity, "/parity"))
	commandRegistry.Register(commands.NewAltHandler(altGenerator, tracker, s, "/alt"))
	commandRegistry.Register(commands.NewHelpHandler(commandRegistry, s, "/help"))

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	commandHandler := handler.NewCommand(commandRegistry, authorizer, handlerTimeout)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, commandHandler.Handle)
	b.RegisterHandler(bot.HandlerTypePhotoCaption, "/", bot.MatchTypePrefix, commandHandler.Handle)

	log.Info().Msg("bot listening")
	b.Start(ctx)
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
