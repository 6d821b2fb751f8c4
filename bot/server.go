package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v3"
	"github.com/ivantsev/liftlog"
	"github.com/rs/zerolog"
)

// Telegram echoes the configured webhook secret in this header on every call
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// NewApp builds the webhook server. One POST per chat interaction; the chat
// id inside the update is the tenant identity, the secret token header is the
// only other gate.
func NewApp(handler *Handler, webhookSecret string, logger zerolog.Logger) *fiber.App {
	if webhookSecret == "" {
		logger.Warn().Msg("Webhook secret is empty, request authentication is disabled")
	}

	app := fiber.New()

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "liftlog",
		})
	})

	app.Post("/telegram/webhook", func(c fiber.Ctx) error {
		if webhookSecret != "" && c.Get(secretTokenHeader) != webhookSecret {
			// Fail closed with an empty reply; nothing about the tenant
			// or the bot leaks to the caller.
			liftlog.LogAuthRejected(logger, "webhook secret token mismatch")
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		var update tgbotapi.Update
		if err := c.Bind().JSON(&update); err != nil {
			// Ack malformed bodies so the platform does not keep
			// redelivering them; no state has changed.
			logger.Warn().Err(err).Msg("Discarding malformed update")
			return c.SendStatus(fiber.StatusOK)
		}

		if err := handler.HandleUpdate(c.Context(), update); err != nil && !liftlog.IsAuthError(err) {
			logger.Error().Err(err).Msg("Update handling failed")
		}

		// Always ack: each interaction is independent and the user has
		// already been answered (or deliberately ignored).
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}
