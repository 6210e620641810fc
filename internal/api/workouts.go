package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healix-app/healix-be/internal/api/middleware"
	"github.com/healix-app/healix-be/internal/workout"
)

// WorkoutHandler handles workout and competition endpoints
type WorkoutHandler struct {
	workouts *workout.Service
}

func NewWorkoutHandler(workouts *workout.Service) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

// StartWorkoutRequest represents a workout start request
type StartWorkoutRequest struct {
	Type string `json:"workout_type"`
}

// EndWorkoutRequest carries the measurements of the finished workout.
// Distance is in meters.
type EndWorkoutRequest struct {
	Steps    float64 `json:"steps"`
	Calories float64 `json:"calories"`
	Distance float64 `json:"distance"`
}

// CreateCompetitionRequest represents a competition creation request
type CreateCompetitionRequest struct {
	Name         string    `json:"name" binding:"required"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
	Participants []string  `json:"participants"`
}

// StartWorkout begins a workout
// POST /api/workouts/start
func (h *WorkoutHandler) StartWorkout(c *gin.Context) {
	var req StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	t, err := workout.ParseType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.workouts.Start(middleware.GetUserID(c), t)
	if errors.Is(err, workout.ErrWorkoutInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, w)
}

// EndWorkout finishes the active workout
// POST /api/workouts/end
func (h *WorkoutHandler) EndWorkout(c *gin.Context) {
	var req EndWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	w, err := h.workouts.End(middleware.GetUserID(c), req.Steps, req.Calories, req.Distance)
	switch {
	case errors.Is(err, workout.ErrNoActiveWorkout):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, w)
}

// CancelWorkout drops the active workout
// POST /api/workouts/cancel
func (h *WorkoutHandler) CancelWorkout(c *gin.Context) {
	if err := h.workouts.Cancel(middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout cancelled"})
}

// ListWorkouts returns finished workouts, newest first
// GET /api/workouts
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	workouts := h.workouts.History(middleware.GetUserID(c))
	if workouts == nil {
		workouts = []workout.Workout{}
	}
	c.JSON(http.StatusOK, gin.H{
		"workouts": workouts,
		"count":    len(workouts),
	})
}

// GetActiveWorkout returns the workout in progress
// GET /api/workouts/active
func (h *WorkoutHandler) GetActiveWorkout(c *gin.Context) {
	w, ok := h.workouts.Active(middleware.GetUserID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": workout.ErrNoActiveWorkout.Error()})
		return
	}
	c.JSON(http.StatusOK, w)
}

// CreateCompetition registers a step competition
// POST /api/competitions
func (h *WorkoutHandler) CreateCompetition(c *gin.Context) {
	var req CreateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participants := req.Participants
	if len(participants) == 0 {
		participants = []string{middleware.GetUserID(c)}
	}

	comp, err := h.workouts.CreateCompetition(req.Name, req.StartDate, req.EndDate, participants)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, comp)
}

// ListCompetitions returns every competition with its leaderboard
// GET /api/competitions
func (h *WorkoutHandler) ListCompetitions(c *gin.Context) {
	comps := h.workouts.Competitions()
	c.JSON(http.StatusOK, gin.H{
		"competitions": comps,
		"count":        len(comps),
	})
}
