package workout

import (
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healix-app/healix-be/internal/privacy"
)

const defaultEntryName = "User"

// Service keeps workouts and competitions in memory
type Service struct {
	now      func() time.Time
	nameOf   func(userID string) string
	mu       sync.Mutex
	active   map[string]Workout   // by user
	history  map[string][]Workout // by user, newest first
	contests []Competition
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNames resolves display names for new leaderboard entries
func WithNames(fn func(userID string) string) Option {
	return func(s *Service) { s.nameOf = fn }
}

// NewService creates an empty workout service
func NewService(opts ...Option) *Service {
	s := &Service{
		now:     time.Now,
		active:  make(map[string]Workout),
		history: make(map[string][]Workout),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a workout for the user
func (s *Service) Start(userID string, t Type) (Workout, error) {
	if _, err := ParseType(string(t)); err != nil {
		return Workout{}, err
	}
	if t == "" {
		t = TypeWalking
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[userID]; ok {
		return Workout{}, ErrWorkoutInProgress
	}

	w := Workout{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      t,
		StartTime: s.now().UTC(),
		IsActive:  true,
	}
	s.active[userID] = w
	return w, nil
}

// Active returns the user's workout in progress
func (s *Service) Active(userID string) (Workout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.active[userID]
	return w, ok
}

// End finishes the active workout, files it in history and credits every
// competition running at this instant.
func (s *Service) End(userID string, steps, calories, distance float64) (Workout, error) {
	if steps < 0 || calories < 0 || distance < 0 {
		return Workout{}, ErrNegativeMeasurements
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.active[userID]
	if !ok {
		return Workout{}, ErrNoActiveWorkout
	}
	delete(s.active, userID)

	end := s.now().UTC()
	w.EndTime = &end
	w.Duration = end.Sub(w.StartTime).Seconds()
	w.Steps = steps
	w.Calories = calories
	w.Distance = distance
	w.IsActive = false

	s.history[userID] = append([]Workout{w}, s.history[userID]...)
	credited := s.credit(w, end)

	log.Printf("workout %s ended for %s: %.0f steps, %d competitions credited",
		w.ID, privacy.UserTag(userID), steps, credited)
	return w, nil
}

// Cancel drops the active workout without recording it
func (s *Service) Cancel(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[userID]; !ok {
		return ErrNoActiveWorkout
	}
	delete(s.active, userID)
	return nil
}

// History returns finished workouts, newest first
func (s *Service) History(userID string) []Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Workout(nil), s.history[userID]...)
}

// CreateCompetition registers a competition with an empty leaderboard
func (s *Service) CreateCompetition(name string, start, end time.Time, participants []string) (Competition, error) {
	name = strings.TrimSpace(name)
	if name == "" || !end.After(start) {
		return Competition{}, ErrInvalidCompetition
	}

	c := Competition{
		ID:           uuid.New(),
		Name:         name,
		StartDate:    start.UTC(),
		EndDate:      end.UTC(),
		Participants: append([]string(nil), participants...),
		Leaderboard:  []Entry{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contests = append(s.contests, c)
	return c, nil
}

// Competitions returns every competition in creation order
func (s *Service) Competitions() []Competition {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Competition, len(s.contests))
	for i, c := range s.contests {
		c.Leaderboard = append([]Entry{}, c.Leaderboard...)
		c.Participants = append([]string(nil), c.Participants...)
		out[i] = c
	}
	return out
}

// credit must be called with mu held
func (s *Service) credit(w Workout, at time.Time) int {
	credited := 0
	for i := range s.contests {
		c := &s.contests[i]
		if !c.ActiveAt(at) {
			continue
		}
		credited++

		idx := -1
		for j, e := range c.Leaderboard {
			if e.UserID == w.UserID {
				idx = j
				break
			}
		}
		if idx < 0 {
			c.Leaderboard = append(c.Leaderboard, Entry{
				ID:       uuid.New(),
				UserID:   w.UserID,
				UserName: s.entryName(w.UserID),
			})
			idx = len(c.Leaderboard) - 1
		}

		e := &c.Leaderboard[idx]
		e.TotalSteps += w.Steps
		e.TotalCalories += w.Calories
		e.TotalWorkouts++

		sort.SliceStable(c.Leaderboard, func(a, b int) bool {
			return c.Leaderboard[a].TotalSteps > c.Leaderboard[b].TotalSteps
		})
		for rank := range c.Leaderboard {
			c.Leaderboard[rank].Rank = rank + 1
		}
	}
	return credited
}

func (s *Service) entryName(userID string) string {
	if s.nameOf == nil {
		return defaultEntryName
	}
	if name := s.nameOf(userID); name != "" {
		return name
	}
	return defaultEntryName
}
