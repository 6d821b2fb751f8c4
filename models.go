package liftlog

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// WorkoutType classifies an entry into one of the fixed training categories
type WorkoutType string

const (
	WorkoutPush   WorkoutType = "Push"
	WorkoutPull   WorkoutType = "Pull"
	WorkoutLegs   WorkoutType = "Legs"
	WorkoutCardio WorkoutType = "Cardio"
)

// WorkoutTypes lists every valid workout type in menu order
var WorkoutTypes = []WorkoutType{WorkoutPush, WorkoutPull, WorkoutLegs, WorkoutCardio}

// IsValid returns true if the type is a member of the closed set
func (w WorkoutType) IsValid() bool {
	switch w {
	case WorkoutPush, WorkoutPull, WorkoutLegs, WorkoutCardio:
		return true
	}
	return false
}

// String returns the string representation
func (w WorkoutType) String() string {
	return string(w)
}

// ParseWorkoutType resolves user input to a WorkoutType, case-insensitively
func ParseWorkoutType(s string) (WorkoutType, error) {
	for _, t := range WorkoutTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", NewValidationError(fmt.Sprintf("unknown workout type %q, expected one of Push/Pull/Legs/Cardio", s))
}

// WeightUnit is the unit a weight was entered in
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

const lbsPerKg = 0.45359237

// Weight records the load used for an exercise, in the unit the user typed
type Weight struct {
	Value float64    `json:"value" dynamodbav:"value"`
	Unit  WeightUnit `json:"unit" dynamodbav:"unit"`
}

// Kg returns the weight in kilograms, rounded to two decimals
func (w Weight) Kg() float64 {
	v := w.Value
	if w.Unit == UnitLbs {
		v *= lbsPerKg
	}
	return math.Round(v*100) / 100
}

// Lbs returns the weight in pounds, rounded to two decimals
func (w Weight) Lbs() float64 {
	v := w.Value
	if w.Unit == UnitKg {
		v /= lbsPerKg
	}
	return math.Round(v*100) / 100
}

// Cardio records duration and distance for cardio-style exercises
type Cardio struct {
	DurationMin int     `json:"durationMin" dynamodbav:"duration_min"`
	DistanceKm  float64 `json:"distanceKm" dynamodbav:"distance_km"`
}

// WorkoutEntry is a single logged set (or cardio session) owned by one tenant.
// Entries are append-only: once written they are never mutated.
type WorkoutEntry struct {
	// Identity. TenantID is the partition key, EntryID the sort key.
	TenantID string `json:"tenantId" dynamodbav:"tenant_id"`
	EntryID  string `json:"entryId" dynamodbav:"entry_id"`

	// Payload
	WorkoutType WorkoutType `json:"workoutType" dynamodbav:"workout_type"`
	Exercise    string      `json:"exercise" dynamodbav:"exercise"`
	Repetitions int         `json:"repetitions" dynamodbav:"repetitions"`
	Weight      *Weight     `json:"weight,omitempty" dynamodbav:"weight,omitempty"`
	Cardio      *Cardio     `json:"cardio,omitempty" dynamodbav:"cardio,omitempty"`

	// Timing
	Timestamp time.Time `json:"timestamp" dynamodbav:"timestamp"`
}

// Validate checks the entry invariants before persistence
func (e *WorkoutEntry) Validate() error {
	if e.TenantID == "" {
		return NewValidationError("tenant id must not be empty")
	}
	if !e.WorkoutType.IsValid() {
		return NewValidationError(fmt.Sprintf("unknown workout type %q", e.WorkoutType))
	}
	if strings.TrimSpace(e.Exercise) == "" {
		return NewValidationError("exercise name must not be empty")
	}
	if e.Repetitions < 0 {
		return NewValidationError(fmt.Sprintf("repetitions must be non-negative, got %d", e.Repetitions))
	}
	if e.Weight != nil && e.Weight.Value < 0 {
		return NewValidationError("weight must be non-negative")
	}
	if e.Cardio != nil && (e.Cardio.DurationMin < 0 || e.Cardio.DistanceKm < 0) {
		return NewValidationError("cardio duration and distance must be non-negative")
	}
	return nil
}

// ExerciseMax summarises the heaviest logged weight for one exercise
type ExerciseMax struct {
	WorkoutType WorkoutType `json:"workoutType"`
	Exercise    string      `json:"exercise"`
	Repetitions int         `json:"repetitions"`
	WeightKg    float64     `json:"weightKg"`
	WeightLbs   float64     `json:"weightLbs"`
}

// LastTrained records when a workout type was last logged
type LastTrained struct {
	WorkoutType WorkoutType `json:"workoutType"`
	Timestamp   time.Time   `json:"timestamp"`
}
