package bot

import (
	_ "embed"
	"encoding/json"

	"github.com/ivantsev/liftlog"
)

//go:embed workouts.json
var workoutsJSON []byte

// catalog maps each workout type to its known exercises, in menu order.
// Logging is not restricted to the catalog; it only feeds the menus.
var catalog map[liftlog.WorkoutType][]string

func init() {
	if err := json.Unmarshal(workoutsJSON, &catalog); err != nil {
		panic("bot: invalid embedded workouts.json: " + err.Error())
	}
}

// Exercises returns the catalog exercises for a workout type
func Exercises(workoutType liftlog.WorkoutType) []string {
	return catalog[workoutType]
}
