package bot

import (
	"fmt"
	"strings"

	"github.com/ivantsev/liftlog"
)

func formatLogged(entry *liftlog.WorkoutEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Logged *%s* (%s)", entry.Exercise, entry.WorkoutType)
	if entry.Cardio != nil {
		fmt.Fprintf(&b, ": %d min, %g km", entry.Cardio.DurationMin, entry.Cardio.DistanceKm)
	} else {
		fmt.Fprintf(&b, ": %d reps", entry.Repetitions)
		if entry.Weight != nil {
			fmt.Fprintf(&b, " @ %g %s", entry.Weight.Value, entry.Weight.Unit)
		}
	}
	return b.String()
}

func formatRecent(entries []*liftlog.WorkoutEntry) string {
	if len(entries) == 0 {
		return "No workouts logged yet. Start with /workout!"
	}

	var b strings.Builder
	b.WriteString("🏋️ *Your Recent Workouts*\n\n")
	for _, entry := range entries {
		fmt.Fprintf(&b, "🔸 %s — *%s* (%s)", entry.Timestamp.Format(timeLayout), entry.Exercise, entry.WorkoutType)
		if entry.Cardio != nil {
			fmt.Fprintf(&b, ": %d min, %g km", entry.Cardio.DurationMin, entry.Cardio.DistanceKm)
		} else {
			fmt.Fprintf(&b, ": %d reps", entry.Repetitions)
			if entry.Weight != nil {
				fmt.Fprintf(&b, " @ %.2f kg / %.2f lbs", entry.Weight.Kg(), entry.Weight.Lbs())
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatPersonalRecord(entry *liftlog.WorkoutEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 *Personal Record* for %s\n\n", entry.Exercise)
	fmt.Fprintf(&b, "🔸 Workout Type: %s\n", entry.WorkoutType)
	fmt.Fprintf(&b, "🔸 Reps: %d\n", entry.Repetitions)
	if entry.Weight != nil {
		fmt.Fprintf(&b, "🔸 Weight: %.2f kg / %.2f lbs\n", entry.Weight.Kg(), entry.Weight.Lbs())
	}
	fmt.Fprintf(&b, "🔸 Set on: %s", entry.Timestamp.Format(timeLayout))
	return b.String()
}

func formatMaxWeights(workoutType liftlog.WorkoutType, maxes []liftlog.ExerciseMax) string {
	if len(maxes) == 0 {
		return fmt.Sprintf("No weighted %s entries yet. Log one with /workout!", workoutType)
	}

	var b strings.Builder
	b.WriteString("🏋️‍♂️ *Your Maximum Weights* 🏋️‍♀️\n\n")
	for _, m := range maxes {
		fmt.Fprintf(&b, "Exercise: %s\n", m.Exercise)
		fmt.Fprintf(&b, "🔸 Workout Type: %s\n", m.WorkoutType)
		fmt.Fprintf(&b, "🔸 Reps: %d\n", m.Repetitions)
		fmt.Fprintf(&b, "🔸 Weight: %g kg / %g lbs\n\n", m.WeightKg, m.WeightLbs)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatLastWorkouts(summary []liftlog.LastTrained) string {
	if len(summary) == 0 {
		return "No workouts logged yet. Start with /workout!"
	}

	var b strings.Builder
	b.WriteString("🏋️‍♂️ *Last Workout Summary* 🏋️‍♀️\n\n")
	for _, last := range summary {
		fmt.Fprintf(&b, "🔹 *%s*: Last trained on %s\n", last.WorkoutType, last.Timestamp.Format(timeLayout))
	}
	return strings.TrimRight(b.String(), "\n")
}
