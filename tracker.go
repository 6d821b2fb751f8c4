package liftlog

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Tracker is the record repository: it owns entry creation and the derived
// views (recent history, personal records, per-type summaries) on top of an
// EntryStore. Construct one per process and pass it around explicitly.
type Tracker struct {
	store  EntryStore
	logger zerolog.Logger
	clock  func() time.Time
}

// TrackerOption configures the tracker
type TrackerOption func(*Tracker)

// WithLogger sets a custom logger for the tracker
func WithLogger(logger zerolog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithClock overrides the time source (used in tests)
func WithClock(clock func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.clock = clock
	}
}

// NewTracker creates a new tracker backed by the given store.
// If no logger is provided, a default stdout logger with Info level is used.
func NewTracker(store EntryStore, opts ...TrackerOption) *Tracker {
	defaultLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)

	t := &Tracker{
		store:  store,
		logger: defaultLogger,
		clock:  time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// EntryOption attaches optional payload to a new entry
type EntryOption func(*WorkoutEntry)

// WithWeight records the load used for the set
func WithWeight(value float64, unit WeightUnit) EntryOption {
	return func(e *WorkoutEntry) {
		e.Weight = &Weight{Value: value, Unit: unit}
	}
}

// WithCardio records duration and distance for a cardio session
func WithCardio(durationMin int, distanceKm float64) EntryOption {
	return func(e *WorkoutEntry) {
		e.Cardio = &Cardio{DurationMin: durationMin, DistanceKm: distanceKm}
	}
}

// NewEntryID builds a sort key whose lexicographic order is chronological.
// The random suffix keeps ids unique when a tenant double-taps within the
// same millisecond; the duplicate entries themselves are tolerated.
func NewEntryID(ts time.Time) string {
	return fmt.Sprintf("%013d#%s", ts.UnixMilli(), uuid.NewString()[:8])
}

// AddEntry validates, assigns identity and timestamp, and persists a new
// workout entry. Returns a ValidationError on bad input and a StorageError
// when the backend write fails; nothing is persisted in either failure case.
func (t *Tracker) AddEntry(ctx context.Context, tenantID string, workoutType WorkoutType, exercise string, reps int, opts ...EntryOption) (*WorkoutEntry, error) {
	now := t.clock().UTC()
	entry := &WorkoutEntry{
		TenantID:    tenantID,
		EntryID:     NewEntryID(now),
		WorkoutType: workoutType,
		Exercise:    exercise,
		Repetitions: reps,
		Timestamp:   now,
	}

	for _, opt := range opts {
		opt(entry)
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := t.store.PutEntry(ctx, entry); err != nil {
		LogStoreError(t.logger, tenantID, "put_entry", err)
		return nil, NewStorageError("failed to persist entry", err)
	}

	LogEntryLogged(t.logger, entry)
	return entry, nil
}

// MaxRecentLimit bounds a single ListRecent page. Anything above it is a
// caller mistake, not a paging request.
const MaxRecentLimit = 100

// ListRecent returns up to limit entries for the tenant, most recent first.
// An empty slice (not an error) is returned when the tenant has no history.
func (t *Tracker) ListRecent(ctx context.Context, tenantID string, limit int) ([]*WorkoutEntry, error) {
	if limit <= 0 {
		return nil, NewValidationError(fmt.Sprintf("limit must be positive, got %d", limit))
	}
	if limit > MaxRecentLimit {
		return nil, NewValidationError(fmt.Sprintf("limit must be at most %d, got %d", MaxRecentLimit, limit))
	}

	entries, err := t.store.ListRecent(ctx, tenantID, limit)
	if err != nil {
		LogStoreError(t.logger, tenantID, "list_recent", err)
		return nil, NewStorageError("failed to list recent entries", err)
	}

	return entries, nil
}

// PersonalRecord returns the entry with the maximum repetitions for the given
// exercise, ties broken by earliest timestamp. Returns nil (not an error)
// when the exercise has no entries for the tenant.
func (t *Tracker) PersonalRecord(ctx context.Context, tenantID, exercise string) (*WorkoutEntry, error) {
	entries, err := t.store.ListEntries(ctx, tenantID)
	if err != nil {
		LogStoreError(t.logger, tenantID, "list_entries", err)
		return nil, NewStorageError("failed to load entry history", err)
	}

	var best *WorkoutEntry
	for _, e := range entries {
		if e.Exercise != exercise {
			continue
		}
		// Strict comparison keeps the earliest entry on ties (history is
		// scanned in chronological order).
		if best == nil || e.Repetitions > best.Repetitions {
			best = e
		}
	}

	return best, nil
}

// MaxWeights returns the heaviest logged weight per exercise within a workout
// type, sorted by exercise name. Cardio entries carry no weight and are
// excluded.
func (t *Tracker) MaxWeights(ctx context.Context, tenantID string, workoutType WorkoutType) ([]ExerciseMax, error) {
	if !workoutType.IsValid() || workoutType == WorkoutCardio {
		return nil, NewValidationError(fmt.Sprintf("max weights is not available for %q", workoutType))
	}

	entries, err := t.store.ListEntries(ctx, tenantID)
	if err != nil {
		LogStoreError(t.logger, tenantID, "list_entries", err)
		return nil, NewStorageError("failed to load entry history", err)
	}

	maxByExercise := make(map[string]ExerciseMax)
	for _, e := range entries {
		if e.WorkoutType != workoutType || e.Weight == nil {
			continue
		}
		kg := e.Weight.Kg()
		current, seen := maxByExercise[e.Exercise]
		if !seen || kg > current.WeightKg {
			maxByExercise[e.Exercise] = ExerciseMax{
				WorkoutType: e.WorkoutType,
				Exercise:    e.Exercise,
				Repetitions: e.Repetitions,
				WeightKg:    kg,
				WeightLbs:   e.Weight.Lbs(),
			}
		}
	}

	maxes := make([]ExerciseMax, 0, len(maxByExercise))
	for _, m := range maxByExercise {
		maxes = append(maxes, m)
	}
	sort.Slice(maxes, func(i, j int) bool {
		return maxes[i].Exercise < maxes[j].Exercise
	})

	return maxes, nil
}

// LastWorkouts returns the most recent training time per workout type,
// newest first.
func (t *Tracker) LastWorkouts(ctx context.Context, tenantID string) ([]LastTrained, error) {
	entries, err := t.store.ListEntries(ctx, tenantID)
	if err != nil {
		LogStoreError(t.logger, tenantID, "list_entries", err)
		return nil, NewStorageError("failed to load entry history", err)
	}

	lastByType := make(map[WorkoutType]time.Time)
	for _, e := range entries {
		if e.Timestamp.After(lastByType[e.WorkoutType]) {
			lastByType[e.WorkoutType] = e.Timestamp
		}
	}

	summary := make([]LastTrained, 0, len(lastByType))
	for workoutType, ts := range lastByType {
		summary = append(summary, LastTrained{WorkoutType: workoutType, Timestamp: ts})
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Timestamp.After(summary[j].Timestamp)
	})

	return summary, nil
}

// Purge deletes the tenant's entire history. Only the purging tenant's
// partition is touched.
func (t *Tracker) Purge(ctx context.Context, tenantID string) error {
	if err := t.store.DeleteEntries(ctx, tenantID); err != nil {
		LogStoreError(t.logger, tenantID, "delete_entries", err)
		return NewStorageError("failed to purge entries", err)
	}

	LogPurgeCompleted(t.logger, tenantID)
	return nil
}
