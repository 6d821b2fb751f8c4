package liftlog

import (
	"github.com/rs/zerolog"
)

// Log event names
const (
	EventUpdateReceived = "update_received"
	EventEntryLogged    = "entry_logged"
	EventPurgeCompleted = "purge_completed"
	EventReplySent      = "reply_sent"
	EventReplyFailed    = "reply_failed"
	EventStoreError     = "store_error"
	EventAuthRejected   = "auth_rejected"
)

// TenantLogger creates a logger enriched with tenant context
func TenantLogger(baseLogger zerolog.Logger, tenantID string) zerolog.Logger {
	return baseLogger.With().
		Str("tenant_id", tenantID).
		Logger()
}

// LogUpdateReceived logs an incoming chat update
func LogUpdateReceived(logger zerolog.Logger, tenantID, command string) {
	logger.Info().
		Str("event", EventUpdateReceived).
		Str("tenant_id", tenantID).
		Str("command", command).
		Msg("Update received")
}

// LogEntryLogged logs a persisted workout entry
func LogEntryLogged(logger zerolog.Logger, entry *WorkoutEntry) {
	logger.Info().
		Str("event", EventEntryLogged).
		Str("tenant_id", entry.TenantID).
		Str("entry_id", entry.EntryID).
		Str("workout_type", entry.WorkoutType.String()).
		Str("exercise", entry.Exercise).
		Int("repetitions", entry.Repetitions).
		Msg("Entry logged")
}

// LogPurgeCompleted logs a tenant-initiated purge
func LogPurgeCompleted(logger zerolog.Logger, tenantID string) {
	logger.Warn().
		Str("event", EventPurgeCompleted).
		Str("tenant_id", tenantID).
		Msg("Tenant history purged")
}

// LogReplySent logs an outbound chat reply
func LogReplySent(logger zerolog.Logger, tenantID, command string) {
	logger.Debug().
		Str("event", EventReplySent).
		Str("tenant_id", tenantID).
		Str("command", command).
		Msg("Reply sent")
}

// LogReplyFailed logs a failed outbound chat reply
func LogReplyFailed(logger zerolog.Logger, tenantID string, err error) {
	logger.Error().
		Str("event", EventReplyFailed).
		Str("tenant_id", tenantID).
		Err(err).
		Msg("Reply failed")
}

// LogStoreError logs errors during persistence operations
func LogStoreError(logger zerolog.Logger, tenantID, operation string, err error) {
	logger.Error().
		Str("event", EventStoreError).
		Str("tenant_id", tenantID).
		Str("operation", operation).
		Err(err).
		Msg("Store error")
}

// LogAuthRejected logs a rejected invocation. The tenant id is not included
// so a rejected request never leaks whether a tenant exists.
func LogAuthRejected(logger zerolog.Logger, reason string) {
	logger.Warn().
		Str("event", EventAuthRejected).
		Str("reason", reason).
		Msg("Invocation rejected")
}
