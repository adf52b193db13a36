package models

// DefaultWeightUnit is applied when a log entry has none.
const DefaultWeightUnit = "lbs"

// TrainingLogEntry is one logged exercise on a given day.
type TrainingLogEntry struct {
	ID               int64    `json:"id,omitempty"`
	User             *UserRef `json:"user,omitempty"`
	WorkoutDate      Date     `json:"workoutDate"`
	ExerciseName     string   `json:"exerciseName"`
	ExerciseID       *int64   `json:"exerciseId,omitempty"`
	Sets             int      `json:"sets"`
	Reps             int      `json:"reps"`
	Weight           float64  `json:"weight"`
	WeightUnit       string   `json:"weightUnit,omitempty"`
	RestSeconds      int      `json:"restSeconds,omitempty"`
	DurationMinutes  int      `json:"durationMinutes,omitempty"`
	CaloriesBurned   *int     `json:"caloriesBurned,omitempty"`
	DifficultyRating *int     `json:"difficultyRating,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// Volume is sets x reps x weight.
func (e TrainingLogEntry) Volume() float64 {
	return float64(e.Sets*e.Reps) * e.Weight
}

// TrainingStats is the reply of /api/training-log/user/{id}/stats.
type TrainingStats struct {
	TotalWorkouts int64 `json:"totalWorkouts"`
}
