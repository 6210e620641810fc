// Package workout tracks live workouts and the step competitions they feed.
package workout

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoActiveWorkout      = errors.New("no active workout")
	ErrWorkoutInProgress    = errors.New("a workout is already in progress")
	ErrUnknownType          = errors.New("unknown workout type")
	ErrInvalidCompetition   = errors.New("competition needs a name and an end after its start")
	ErrNegativeMeasurements = errors.New("steps, calories and distance must not be negative")
)

// Type is the kind of activity
type Type string

const (
	TypeWalking  Type = "Walking"
	TypeRunning  Type = "Running"
	TypeCycling  Type = "Cycling"
	TypeStrength Type = "Strength Training"
	TypeYoga     Type = "Yoga"
	TypeOther    Type = "Other"
)

// Types lists every workout type in display order
var Types = []Type{TypeWalking, TypeRunning, TypeCycling, TypeStrength, TypeYoga, TypeOther}

// ParseType accepts the display name. Empty means walking.
func ParseType(s string) (Type, error) {
	if s == "" {
		return TypeWalking, nil
	}
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Workout is one session. Distance is in meters, Duration in seconds.
type Workout struct {
	ID        uuid.UUID  `json:"id"`
	UserID    string     `json:"user_id"`
	Type      Type       `json:"workout_type"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  float64    `json:"duration"`
	Steps     float64    `json:"steps"`
	Calories  float64    `json:"calories"`
	Distance  float64    `json:"distance"`
	IsActive  bool       `json:"is_active"`
}

// Competition ranks its entries by total steps
type Competition struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Participants []string  `json:"participants"`
	Leaderboard  []Entry   `json:"leaderboard"`
}

// ActiveAt reports whether t falls inside the competition, bounds included
func (c Competition) ActiveAt(t time.Time) bool {
	return !t.Before(c.StartDate) && !t.After(c.EndDate)
}

// Entry is one user's line on a leaderboard
type Entry struct {
	ID            uuid.UUID `json:"id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	TotalSteps    float64   `json:"total_steps"`
	TotalCalories float64   `json:"total_calories"`
	TotalWorkouts int       `json:"total_workouts"`
	Rank          int       `json:"rank"`
}
