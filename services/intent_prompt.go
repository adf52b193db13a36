package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"fitcoach/models"
	"fitcoach/utils"
)

// workoutLibrary is the built-in exercise list used when the model names a muscle group but no workouts.
var workoutLibrary = map[string][]string{
	"chest":     {"Bench Press", "Push-ups", "Dumbbell Flyes", "Cable Crossover", "Incline Press"},
	"back":      {"Pull-ups", "Barbell Row", "Lat Pulldown", "Deadlift", "Cable Row"},
	"legs":      {"Squats", "Leg Press", "Lunges", "Leg Curl", "Calf Raises"},
	"shoulders": {"Overhead Press", "Lateral Raises", "Front Raises", "Rear Delt Flyes", "Arnold Press"},
	"arms":      {"Bicep Curls", "Tricep Dips", "Hammer Curls", "Tricep Extensions", "Preacher Curls"},
	"core":      {"Planks", "Crunches", "Leg Raises", "Russian Twists", "Mountain Climbers"},
}

// muscleGroupAliases maps localized group names onto library keys.
var muscleGroupAliases = map[string]string{
	"胸部": "chest",
	"背部": "back",
	"腿部": "legs",
	"肩部": "shoulders",
	"手臂": "arms",
	"核心": "core",
}

// NormalizeMuscleGroup returns the library key for group, falling back to its lowercase form.
func NormalizeMuscleGroup(group string) string {
	group = strings.TrimSpace(group)
	if key, ok := muscleGroupAliases[group]; ok {
		return key
	}
	return strings.ToLower(group)
}

// LibraryWorkouts returns up to count exercises for group. Unknown groups use the chest list.
func LibraryWorkouts(group string, count int) []string {
	exercises, ok := workoutLibrary[NormalizeMuscleGroup(group)]
	if !ok {
		exercises = workoutLibrary["chest"]
	}
	if count <= 0 {
		count = 1
	}
	if count > len(exercises) {
		count = len(exercises)
	}
	return exercises[:count]
}

const intentPromptTemplate = `You are an intelligent AI fitness assistant that turns gym-app messages into structured workout data.

User message: """%s"""
Current day: %s (dayIndex: %d)
%s
Decide whether the message is an ACTION command or general conversation.
If it is an ACTION, answer with JSON that follows the schema below exactly.

### ACTION
{
  "isAction": true,
  "action": "add_workout" | "remove_workout" | "clear_day" | "update_workout" | "mark_complete",
  "parameters": {
    "dayIndex": %d,
    "muscleGroup": "legs" | "chest" | "back" | "shoulders" | "arms" | "core" | null,
    "intensity": "light" | "medium" | "hard" | null,
    "count": number | null,
    "sets": number | null,
    "reps": number | null,
    "weight": string | null,
    "workouts": [
      {
        "workoutName": string,
        "sets": number,
        "reps": number,
        "weight": string | null,
        "duration": string | null,
        "notes": string | null,
        "completed": boolean
      }
    ]
  },
  "response": "Short motivational sentence in the user's language"
}

### GENERAL
{
  "isAction": false,
  "response": "Natural, empathetic, concise chat reply"
}

### RULES
1. dayIndex counts from Monday (0) to Sunday (6). Use the dates above to resolve words like "tomorrow" or "Tuesday".
2. If the user only names a muscle group, generate 3-5 workouts for it.
3. Defaults: sets = 3, reps = 12, duration = "30min", completed = false. Weight may be "bodyweight".
4. Intensity sets the number of sets: light 2-3, medium 3-4, hard 4-5.
5. Example library:
%s
6. If the user sounds tired, suggest rest. If excited, encourage. Reply in the user's language.

Respond only with JSON.`

// BuildIntentPrompt embeds the raw message, the selected day and the visible window into the classifier prompt.
func BuildIntentPrompt(message string, selected models.WeekDay, window []models.WeekDay) string {
	dayName := utils.DayName(selected.DayIndex)

	var windowText strings.Builder
	if len(window) > 0 {
		windowText.WriteString("Visible days:\n")
		for _, day := range window {
			windowText.WriteString(fmt.Sprintf("- %s %s (dayIndex: %d)\n", day.Key, utils.DayName(day.DayIndex), day.DayIndex))
		}
	}

	var library strings.Builder
	for _, group := range []string{"legs", "chest", "back", "shoulders", "arms", "core"} {
		library.WriteString(fmt.Sprintf("   - %s: %s\n", group, strings.Join(workoutLibrary[group], ", ")))
	}

	return fmt.Sprintf(intentPromptTemplate,
		message, dayName, selected.DayIndex, windowText.String(), selected.DayIndex, strings.TrimRight(library.String(), "\n"))
}

var (
	openFence  = regexp.MustCompile("^```(?:json)?\\s*")
	closeFence = regexp.MustCompile("\\s*```$")
)

// ParseIntent reads the classifier's reply. Anything that is not a JSON object becomes a plain reply.
func ParseIntent(raw string) models.Intent {
	cleaned := strings.TrimSpace(raw)
	cleaned = openFence.ReplaceAllString(cleaned, "")
	cleaned = closeFence.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	var intent models.Intent
	if !strings.HasPrefix(cleaned, "{") {
		return models.Intent{IsAction: false, Response: raw}
	}
	if err := json.Unmarshal([]byte(cleaned), &intent); err != nil {
		return models.Intent{IsAction: false, Response: raw}
	}
	return intent
}
