// Package bot maps incoming chat commands to tracker calls and formats the
// replies. Every update is handled in a single turn: reply keyboard buttons
// carry the full follow-up command, so no per-chat session state exists.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ivantsev/liftlog"
	"github.com/rs/zerolog"
)

const timeLayout = "2006-01-02 15:04:05"

// Sender delivers replies back through the chat platform.
// *tgbotapi.BotAPI satisfies it; tests use a capturing fake.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Handler dispatches chat updates to the tracker
type Handler struct {
	tracker     *liftlog.Tracker
	sender      Sender
	logger      zerolog.Logger
	recentLimit int
}

// NewHandler creates a new conversation handler
func NewHandler(tracker *liftlog.Tracker, sender Sender, logger zerolog.Logger, recentLimit int) *Handler {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &Handler{
		tracker:     tracker,
		sender:      sender,
		logger:      logger,
		recentLimit: recentLimit,
	}
}

// HandleUpdate processes one chat update end to end. A malformed update with
// no chat identity is rejected without any reply; every other failure is
// answered with either a corrective prompt (bad input) or a generic retry
// message (backend failure).
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		liftlog.LogAuthRejected(h.logger, "update has no chat identity")
		return liftlog.NewAuthError("update has no chat identity")
	}

	tenantID := strconv.FormatInt(msg.Chat.ID, 10)
	logger := liftlog.TenantLogger(h.logger, tenantID)

	command := msg.Command()
	liftlog.LogUpdateReceived(logger, tenantID, command)

	text, keyboard, err := h.dispatch(ctx, tenantID, command, msg.CommandArguments())
	if err != nil {
		var terr *liftlog.Error
		if liftlog.IsValidationError(err) && errors.As(err, &terr) {
			text = "⚠️ " + terr.Message
		} else {
			text = "Something went wrong, please try again."
		}
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		reply.ReplyMarkup = *keyboard
	}

	if _, sendErr := h.sender.Send(reply); sendErr != nil {
		liftlog.LogReplyFailed(logger, tenantID, sendErr)
		return sendErr
	}

	liftlog.LogReplySent(logger, tenantID, command)
	return err
}

func (h *Handler) dispatch(ctx context.Context, tenantID, command, args string) (string, *tgbotapi.ReplyKeyboardMarkup, error) {
	switch command {
	case "start", "help":
		return helpMessage(), nil, nil
	case "workout":
		return h.workoutMenu()
	case "exercises":
		return h.exerciseMenu(args)
	case "log":
		return h.logEntry(ctx, tenantID, args)
	case "cardio":
		return h.logCardio(ctx, tenantID, args)
	case "recent":
		return h.recent(ctx, tenantID, args)
	case "pr":
		return h.personalRecord(ctx, tenantID, args)
	case "max":
		return h.maxWeights(ctx, tenantID, args)
	case "last":
		return h.lastWorkouts(ctx, tenantID)
	case "purge":
		return h.purge(ctx, tenantID)
	default:
		return "I didn't understand that. Type /help for the command list.", nil, nil
	}
}

func (h *Handler) workoutMenu() (string, *tgbotapi.ReplyKeyboardMarkup, error) {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(liftlog.WorkoutTypes))
	for _, t := range liftlog.WorkoutTypes {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/exercises "+t.String()),
		))
	}
	keyboard := menuKeyboard(rows)
	return "Choose a workout type", &keyboard, nil
}

func (h *Handler) exerciseMenu(args string) (string, *tgbotapi.ReplyKeyboardMarkup, error) {
	workoutType, err := liftlog.ParseWorkoutType(strings.TrimSpace(args))
	if err != nil {
		return "", nil, err
	}

	exercises := Exercises(workoutType)
	rows := make([][]tgbotapi.KeyboardButton, 0, len(exercises))
	for _, exercise := range exercises {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(fmt.Sprintf("/log %s %s ", workoutType, exercise)),
		))
	}
	keyboard := menuKeyboard(rows)

	text := fmt.Sprintf("Pick an exercise, then append your reps (and weight), e.g.\n`/log %s %s 10 80 kg`", workoutType, exercises[0])
	if workoutType == liftlog.WorkoutCardio {
		text = fmt.Sprintf("Pick an exercise, then log it with duration and distance, e.g.\n`/cardio %s 25 8`", exercises[0])
	}
	return text, &keyboard, nil
}

func (h *Handler) logEntry(ctx context.Context, tenantID, args string) (string, *tgbotapi.ReplyKeyboardMarkup, error) {
	parsed, err := parseLogArgs(args)
	if err != nil {
		return "", nil, err
	}

	opts := []liftlog.EntryOption{}
	if parsed.Weight != nil {
		opts = append(opts, liftlog.WithWeight(parsed.Weight.Value, parsed.Weight.Unit))
	}

	entry, err := h.tracker.AddEntry(ctx, tenantID, parsed.WorkoutType, parsed.Exercise, parsed.Repetitions, opts...)
	if err != nil {
		return "", nil, err
	}

	return formatLogged(entry), nil, nil
}

func (h *Handler) logCardio(ctx context.Context, tenantID, args string) (string, *tgbotapi.ReplyKeyboardMarkup, error) {
	parsed, err := parseCardioArgs(args)
	if err != nil {
		return "", nil, err
	}

	entry, err := h.tracker.AddEntry(ctx, tenantID, liftlog.WorkoutCardio, parsed.Exercise, 0,
		liftlog.WithCardio(parsed.Cardio.DurationMin, parsed.Cardio.DistanceKm))
	if err != nil {
		return "", nil, err
	}

	return formatLogged(entry), nil, nil
}

func (h *Handler) recent(ctx context.Context, tenantID, args string) (string, *tgbotapi.ReplyKeyboardMarkup, error) {
	limit := h.recentLimit
	if trimmed := strings.TrimSpace(args); trimmed != "" {
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return "", nil, liftlog.NewValidationError("usage: /recent [count]")
		}
		limit = parsed
	}

	entries, err := h.tracker.ListRecent(ctx, tenantID, limit)
	if err != nil {
		return "", nil, err
	}

	return formatRecent(entries), nil, nil
}

func (h *Handler) personalRecord(ctx context.Context, tenantID, args string) (string, *tgbotapi.ReplyKeyboardMarkup, error) {
	exercise := strings.TrimSpace(args)
	if exercise == "" {
		return "", nil, liftlog.NewValidationError("usage: /pr <exercise>")
	}

	entry, err := h.tracker.PersonalRecord(ctx, tenantID, exercise)
	if err != nil {
		return "", nil, err
	}
	if entry == nil {
		return fmt.Sprintf("No entries for *%s* yet. Log one with /workout!", exercise), nil, nil
	}

	return formatPersonalRecord(entry), nil, nil
}

func (h *Handler) maxWeights(ctx context.Context, tenantID, args string) (string, *tgbotapi.ReplyKeyboardMarkup, error) {
	workoutType, err := liftlog.ParseWorkoutType(strings.TrimSpace(args))
	if err != nil {
		return "", nil, err
	}

	maxes, err := h.tracker.MaxWeights(ctx, tenantID, workoutType)
	if err != nil {
		return "", nil, err
	}

	return formatMaxWeights(workoutType, maxes), nil, nil
}

func (h *Handler) lastWorkouts(ctx context.Context, tenantID string) (string, *tgbotapi.ReplyKeyboardMarkup, error) {
	summary, err := h.tracker.LastWorkouts(ctx, tenantID)
	if err != nil {
		return "", nil, err
	}

	return formatLastWorkouts(summary), nil, nil
}

func (h *Handler) purge(ctx context.Context, tenantID string) (string, *tgbotapi.ReplyKeyboardMarkup, error) {
	if err := h.tracker.Purge(ctx, tenantID); err != nil {
		return "", nil, err
	}
	return "🗑 Your whole workout history has been deleted.", nil, nil
}

func menuKeyboard(rows [][]tgbotapi.KeyboardButton) tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true
	return keyboard
}

func helpMessage() string {
	return strings.Join([]string{
		"🏋️ *Workout logger*",
		"",
		"/workout — choose a workout type",
		"/log <type> <exercise> <reps> [<weight> kg|lbs] — log a set",
		"/cardio <exercise> <minutes> <km> — log a cardio session",
		"/recent [n] — your latest entries",
		"/pr <exercise> — personal record (max reps)",
		"/max <type> — your maximum weights per exercise",
		"/last — when each workout type was last trained",
		"/purge — delete your whole history",
	}, "\n")
}
