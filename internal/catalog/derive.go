package catalog

import (
	"math"
	"strings"
)

// Exercise difficulty levels. FilterAll is accepted by FilterExercises only.
const (
	FilterAll        = "all"
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// FilterLevels is the order the filter buttons appear in.
var FilterLevels = []string{FilterAll, DifficultyEasy, DifficultyMedium, DifficultyHard}

// Issue severities.
const (
	SeverityError      = "error"
	SeverityWarning    = "warning"
	SeveritySuggestion = "suggestion"
)

// ExerciseStats are the headline numbers above the exercise list.
type ExerciseStats struct {
	Completed    int `json:"completed"`
	PointsEarned int `json:"points_earned"`
	AvgSuccess   int `json:"avg_success"` // percent, rounded half up
}

// ComputeExerciseStats summarises the whole exercise set, independent of
// any active filter.
func ComputeExerciseStats(exercises []Exercise) ExerciseStats {
	var stats ExerciseStats
	if len(exercises) == 0 {
		return stats
	}
	sum := 0
	for _, e := range exercises {
		if e.Completed {
			stats.Completed++
			stats.PointsEarned += e.Points
		}
		sum += e.CompletionRate
	}
	stats.AvgSuccess = RoundHalfUp(float64(sum) / float64(len(exercises)))
	return stats
}

// RoundHalfUp rounds x to the nearest integer, with .5 going up.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// FilterExercises keeps exercises of the given difficulty; FilterAll (or
// an empty level) keeps everything.
func FilterExercises(exercises []Exercise, level string) []Exercise {
	if level == "" || level == FilterAll {
		return exercises
	}
	var out []Exercise
	for _, e := range exercises {
		if e.Difficulty == level {
			out = append(out, e)
		}
	}
	return out
}

// FindExercise returns the exercise with the given id, if present.
func FindExercise(exercises []Exercise, id string) (Exercise, bool) {
	for _, e := range exercises {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}

// DifficultyStars returns how many of three stars an exercise earns.
func DifficultyStars(difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	default:
		return 3
	}
}

// Improved reports whether the change is shown as an improvement. Only a
// leading "+" counts.
func (m Metric) Improved() bool {
	return strings.HasPrefix(m.Change, "+")
}

// IssueCounts tallies active issues by severity.
type IssueCounts struct {
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Suggestions int `json:"suggestions"`
}

// Total is the number of active issues.
func (c IssueCounts) Total() int {
	return c.Errors + c.Warnings + c.Suggestions
}

// ActiveIssues drops dismissed issues, preserving order.
func ActiveIssues(issues []Issue, dismissed map[string]bool) []Issue {
	var out []Issue
	for _, is := range issues {
		if !dismissed[is.ID] {
			out = append(out, is)
		}
	}
	return out
}

// CountIssues tallies issues by severity.
func CountIssues(issues []Issue) IssueCounts {
	var c IssueCounts
	for _, is := range issues {
		switch is.Severity {
		case SeverityError:
			c.Errors++
		case SeverityWarning:
			c.Warnings++
		case SeveritySuggestion:
			c.Suggestions++
		}
	}
	return c
}

// FindTutorial returns the tutorial with the given id, if present.
func FindTutorial(tutorials []Tutorial, id string) (Tutorial, bool) {
	for _, t := range tutorials {
		if t.ID == id {
			return t, true
		}
	}
	return Tutorial{}, false
}
