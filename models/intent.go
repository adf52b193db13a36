package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Intent actions the classifier may return.
const (
	ActionAddWorkout    = "add_workout"
	ActionRemoveWorkout = "remove_workout"
	ActionClearDay      = "clear_day"
	ActionUpdateWorkout = "update_workout"
	ActionMarkComplete  = "mark_complete"
)

// Intent is the classifier's reading of one user message.
type Intent struct {
	IsAction   bool             `json:"isAction"`
	Action     string           `json:"action,omitempty"`
	Parameters IntentParameters `json:"parameters"`
	Response   string           `json:"response,omitempty"`
}

type IntentParameters struct {
	DayIndex    *int            `json:"dayIndex,omitempty"`
	MuscleGroup string          `json:"muscleGroup,omitempty"`
	Intensity   string          `json:"intensity,omitempty"`
	Count       int             `json:"count,omitempty"`
	Sets        FlexInt         `json:"sets,omitempty"`
	Reps        FlexInt         `json:"reps,omitempty"`
	Weight      FlexString      `json:"weight,omitempty"`
	Workouts    []IntentWorkout `json:"workouts,omitempty"`
}

// IntentWorkout is a workout as described by the model. Weight and duration are free text.
type IntentWorkout struct {
	WorkoutName string     `json:"workoutName"`
	Sets        FlexInt    `json:"sets,omitempty"`
	Reps        FlexInt    `json:"reps,omitempty"`
	Weight      FlexString `json:"weight,omitempty"`
	Duration    FlexString `json:"duration,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Completed   bool       `json:"completed,omitempty"`
}

// FlexInt decodes from a JSON number or a numeric string ("3", "3 sets").
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		*f = 0
		return nil
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		// Ranges like "8-12" keep their lower bound.
		if lo, _, ok := strings.Cut(fields[0], "-"); ok {
			if v, err = strconv.Atoi(lo); err == nil {
				*f = FlexInt(v)
				return nil
			}
		}
		*f = 0
		return nil
	}
	*f = FlexInt(v)
	return nil
}

// FlexString decodes from a JSON string or number. Models write "weight": 20 as often as "20kg".
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}
