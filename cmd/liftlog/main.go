package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ivantsev/liftlog"
	"github.com/ivantsev/liftlog/bot"
	"github.com/ivantsev/liftlog/secrets"
	"github.com/ivantsev/liftlog/store"
)

func main() {
	// Local dev convenience; in production everything comes from the
	// environment and Secrets Manager.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system environment")
	}

	cfg := liftlog.LoadConfig()

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS config")
	}

	// One read-only secret lookup at startup
	loader := secrets.NewLoader(secretsmanager.NewFromConfig(awsCfg))
	creds, err := loader.BotCredentials(ctx, cfg.SecretName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load bot credentials")
	}

	api, err := tgbotapi.NewBotAPI(creds.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram client")
	}
	log.Info().Str("bot", api.Self.UserName).Msg("Telegram client ready")

	entryStore := store.NewDynamoDBStore(dynamodb.NewFromConfig(awsCfg), cfg.TableName)
	tracker := liftlog.NewTracker(entryStore, liftlog.WithLogger(log.Logger))
	handler := bot.NewHandler(tracker, api, log.Logger, cfg.RecentLimit)

	app := bot.NewApp(handler, creds.WebhookSecret, log.Logger)

	go func() {
		log.Info().Str("address", cfg.ListenAddr).Msg("Starting webhook server")
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
