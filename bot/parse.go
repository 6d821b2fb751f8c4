package bot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ivantsev/liftlog"
)

var (
	// Matches numbers with optional decimals followed by 'kg' or 'lbs',
	// with or without a space: "80 kg", "175.5lbs".
	weightPattern = regexp.MustCompile(`(?i)^\s*(\d+(?:[.,]\d+)?)\s*(kg|lbs)\s*$`)

	// Matches 'number min - number km', e.g. "25 min - 8 km".
	cardioPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s*min\s*-\s*(\d+(?:[.,]\d+)?)\s*km\s*$`)
)

// parseWeight parses a weight token such as "80 kg" or "175.5lbs".
// Decimal commas are accepted alongside decimal points.
func parseWeight(s string) (liftlog.Weight, bool) {
	match := weightPattern.FindStringSubmatch(s)
	if match == nil {
		return liftlog.Weight{}, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
	if err != nil {
		return liftlog.Weight{}, false
	}

	unit := liftlog.WeightUnit(strings.ToLower(match[2]))
	return liftlog.Weight{Value: value, Unit: unit}, true
}

// parseCardio parses a cardio token such as "25 min - 8 km"
func parseCardio(s string) (liftlog.Cardio, bool) {
	match := cardioPattern.FindStringSubmatch(s)
	if match == nil {
		return liftlog.Cardio{}, false
	}

	duration, err := strconv.Atoi(match[1])
	if err != nil {
		return liftlog.Cardio{}, false
	}

	distance, err := strconv.ParseFloat(strings.ReplaceAll(match[2], ",", "."), 64)
	if err != nil {
		return liftlog.Cardio{}, false
	}

	return liftlog.Cardio{DurationMin: duration, DistanceKm: distance}, true
}

// logArgs is the parsed argument list of a /log command
type logArgs struct {
	WorkoutType liftlog.WorkoutType
	Exercise    string
	Repetitions int
	Weight      *liftlog.Weight
}

// parseLogArgs parses "/log <type> <exercise...> <reps> [<weight> kg|lbs]".
// The exercise name may span several words; reps is the first integer token
// after it, and an optional trailing weight ("80 kg" or "80kg") may follow.
func parseLogArgs(args string) (logArgs, error) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return logArgs{}, liftlog.NewValidationError("usage: /log <type> <exercise> <reps> [<weight> kg|lbs]")
	}

	workoutType, err := liftlog.ParseWorkoutType(fields[0])
	if err != nil {
		return logArgs{}, err
	}

	rest := fields[1:]

	// Peel an optional trailing weight off the end: either one token
	// ("80kg") or two ("80 kg").
	var weight *liftlog.Weight
	if w, ok := parseWeight(rest[len(rest)-1]); ok {
		weight = &w
		rest = rest[:len(rest)-1]
	} else if len(rest) >= 2 {
		if w, ok := parseWeight(strings.Join(rest[len(rest)-2:], " ")); ok {
			weight = &w
			rest = rest[:len(rest)-2]
		}
	}

	if len(rest) < 2 {
		return logArgs{}, liftlog.NewValidationError("usage: /log <type> <exercise> <reps> [<weight> kg|lbs]")
	}

	reps, err := strconv.Atoi(rest[len(rest)-1])
	if err != nil {
		return logArgs{}, liftlog.NewValidationError("repetitions must be a whole number, e.g. /log Push Bench Press 10")
	}

	exercise := strings.Join(rest[:len(rest)-1], " ")

	return logArgs{
		WorkoutType: workoutType,
		Exercise:    exercise,
		Repetitions: reps,
		Weight:      weight,
	}, nil
}

// cardioArgs is the parsed argument list of a /cardio command
type cardioArgs struct {
	Exercise string
	Cardio   liftlog.Cardio
}

// parseCardioArgs parses "/cardio <exercise...> <min> <km>" and also accepts
// the "<min> min - <km> km" free-text form after the exercise name.
func parseCardioArgs(args string) (cardioArgs, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return cardioArgs{}, liftlog.NewValidationError("usage: /cardio <exercise> <minutes> <km>")
	}

	// Free-text tail first: "/cardio Running 25 min - 8 km"
	for i := 1; i < len(fields); i++ {
		tail := strings.Join(fields[i:], " ")
		if c, ok := parseCardio(tail); ok {
			return cardioArgs{
				Exercise: strings.Join(fields[:i], " "),
				Cardio:   c,
			}, nil
		}
	}

	// Plain form: "/cardio Running 25 8"
	if len(fields) >= 3 {
		duration, errMin := strconv.Atoi(fields[len(fields)-2])
		distance, errKm := strconv.ParseFloat(strings.ReplaceAll(fields[len(fields)-1], ",", "."), 64)
		if errMin == nil && errKm == nil {
			return cardioArgs{
				Exercise: strings.Join(fields[:len(fields)-2], " "),
				Cardio:   liftlog.Cardio{DurationMin: duration, DistanceKm: distance},
			}, nil
		}
	}

	return cardioArgs{}, liftlog.NewValidationError("could not read duration and distance, e.g. /cardio Running 25 8")
}
