// Package catalog holds the static learning content behind the dashboard:
// tutorials, exercises, mock lint issues and mock analysis figures.
//
// The data is configuration, not state. It is decoded once from YAML (the
// embedded catalog.yaml unless another file is supplied) and never mutated
// afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// ============================================================
// Domain Models
// ============================================================

// Catalog is the complete set of sample content.
type Catalog struct {
	Header    HeaderStats `yaml:"header" json:"header"`
	Tutorials []Tutorial  `yaml:"tutorials" json:"tutorials"`
	Exercises []Exercise  `yaml:"exercises" json:"exercises"`
	Issues    []Issue     `yaml:"issues" json:"issues"`
	Analysis  Analysis    `yaml:"analysis" json:"analysis"`
}

// HeaderStats are the headline labels shown in the top bar.
type HeaderStats struct {
	Brand    string `yaml:"brand" json:"brand"`
	Lessons  string `yaml:"lessons" json:"lessons"`
	Points   string `yaml:"points" json:"points"`
	Students string `yaml:"students" json:"students"`
	Welcome  string `yaml:"welcome" json:"welcome"`
	Tagline  string `yaml:"tagline" json:"tagline"`
}

// Tutorial is a learning path made of ordered lessons.
type Tutorial struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Progress    int      `yaml:"progress" json:"progress"`
	Difficulty  string   `yaml:"difficulty" json:"difficulty"` // beginner, intermediate, advanced
	Completed   bool     `yaml:"completed" json:"completed"`
	Lessons     []Lesson `yaml:"lessons" json:"lessons"`
}

// Lesson is a single step inside a tutorial.
type Lesson struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Completed   bool   `yaml:"completed" json:"completed"`
	Kind        string `yaml:"kind" json:"kind"` // tutorial, exercise, challenge
}

// Exercise is a practice problem with starter code.
type Exercise struct {
	ID             string   `yaml:"id" json:"id"`
	Title          string   `yaml:"title" json:"title"`
	Description    string   `yaml:"description" json:"description"`
	Difficulty     string   `yaml:"difficulty" json:"difficulty"` // easy, medium, hard
	TimeEstimate   string   `yaml:"time_estimate" json:"time_estimate"`
	Points         int      `yaml:"points" json:"points"`
	Completed      bool     `yaml:"completed" json:"completed"`
	CompletionRate int      `yaml:"completion_rate" json:"completion_rate"`
	Tags           []string `yaml:"tags" json:"tags"`
	StarterCode    string   `yaml:"starter_code" json:"starter_code"`
	TestCases      int      `yaml:"test_cases" json:"test_cases"`
}

// Issue is a mock lint finding. It is never derived from the buffer.
type Issue struct {
	ID          string  `yaml:"id" json:"id"`
	Severity    string  `yaml:"severity" json:"severity"` // error, warning, suggestion
	Line        int     `yaml:"line" json:"line"`
	Column      int     `yaml:"column" json:"column"`
	Message     string  `yaml:"message" json:"message"`
	Description string  `yaml:"description" json:"description"`
	Suggestion  *string `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
	Fixable     bool    `yaml:"fixable" json:"fixable"`
}

// Analysis is the mock code-quality dashboard content.
type Analysis struct {
	Grade      string             `yaml:"grade" json:"grade"`
	Quality    []QualityScore     `yaml:"quality" json:"quality"`
	Complexity []ComplexityBucket `yaml:"complexity" json:"complexity"`
	Metrics    []Metric           `yaml:"metrics" json:"metrics"`
	Insights   []Insight          `yaml:"insights" json:"insights"`
}

// QualityScore is one bar of the quality chart.
type QualityScore struct {
	Name  string `yaml:"name" json:"name"`
	Score int    `yaml:"score" json:"score"`
}

// ComplexityBucket is one slice of the complexity distribution.
type ComplexityBucket struct {
	Name  string `yaml:"name" json:"name"`
	Value int    `yaml:"value" json:"value"`
	Color string `yaml:"color" json:"color"`
}

// Metric is a key figure with its change since the previous analysis.
type Metric struct {
	Metric string `yaml:"metric" json:"metric"`
	Value  string `yaml:"value" json:"value"`
	Change string `yaml:"change" json:"change"`
}

// Insight is a short piece of canned feedback.
type Insight struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
	Tone  string `yaml:"tone" json:"tone"` // success, warning, info
}

// ============================================================
// Loading
// ============================================================

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	c, err := Parse(embeddedCatalog)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog file. An empty path selects the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids are unique per kind and enumerations are in range.
func (c *Catalog) Validate() error {
	tutorialIDs := make(map[string]bool)
	lessonIDs := make(map[string]bool)
	for _, t := range c.Tutorials {
		if t.ID == "" || tutorialIDs[t.ID] {
			return fmt.Errorf("tutorial %q: missing or duplicate id", t.ID)
		}
		tutorialIDs[t.ID] = true
		if !oneOf(t.Difficulty, "beginner", "intermediate", "advanced") {
			return fmt.Errorf("tutorial %s: unknown difficulty %q", t.ID, t.Difficulty)
		}
		if t.Progress < 0 || t.Progress > 100 {
			return fmt.Errorf("tutorial %s: progress %d out of range", t.ID, t.Progress)
		}
		for _, l := range t.Lessons {
			if l.ID == "" || lessonIDs[l.ID] {
				return fmt.Errorf("lesson %q: missing or duplicate id", l.ID)
			}
			lessonIDs[l.ID] = true
			if !oneOf(l.Kind, "tutorial", "exercise", "challenge") {
				return fmt.Errorf("lesson %s: unknown kind %q", l.ID, l.Kind)
			}
		}
	}

	exerciseIDs := make(map[string]bool)
	for _, e := range c.Exercises {
		if e.ID == "" || exerciseIDs[e.ID] {
			return fmt.Errorf("exercise %q: missing or duplicate id", e.ID)
		}
		exerciseIDs[e.ID] = true
		if !oneOf(e.Difficulty, DifficultyEasy, DifficultyMedium, DifficultyHard) {
			return fmt.Errorf("exercise %s: unknown difficulty %q", e.ID, e.Difficulty)
		}
		if e.CompletionRate < 0 || e.CompletionRate > 100 {
			return fmt.Errorf("exercise %s: completion rate %d out of range", e.ID, e.CompletionRate)
		}
	}

	issueIDs := make(map[string]bool)
	for _, is := range c.Issues {
		if is.ID == "" || issueIDs[is.ID] {
			return fmt.Errorf("issue %q: missing or duplicate id", is.ID)
		}
		issueIDs[is.ID] = true
		if !oneOf(is.Severity, SeverityError, SeverityWarning, SeveritySuggestion) {
			return fmt.Errorf("issue %s: unknown severity %q", is.ID, is.Severity)
		}
	}

	for _, q := range c.Analysis.Quality {
		if q.Score < 0 || q.Score > 100 {
			return fmt.Errorf("quality score %s: %d out of range", q.Name, q.Score)
		}
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
