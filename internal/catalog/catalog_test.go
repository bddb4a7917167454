package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	if len(c.Tutorials) != 2 {
		t.Fatalf("expected 2 tutorials, got %d", len(c.Tutorials))
	}
	if got := len(c.Tutorials[0].Lessons); got != 4 {
		t.Errorf("expected 4 lessons in first tutorial, got %d", got)
	}
	if len(c.Exercises) != 3 {
		t.Errorf("expected 3 exercises, got %d", len(c.Exercises))
	}
	if len(c.Issues) != 3 {
		t.Errorf("expected 3 issues, got %d", len(c.Issues))
	}
	if c.Analysis.Grade != "A-" {
		t.Errorf("expected grade A-, got %s", c.Analysis.Grade)
	}
	if c.Header.Brand != "Vignan's Code Mentor" {
		t.Errorf("expected brand Vignan's Code Mentor, got %s", c.Header.Brand)
	}

	starter := c.Exercises[0].StarterCode
	want := "function findSecondLargest(arr) {\n  // Your code here\n}"
	if starter != want {
		t.Errorf("starter code mismatch:\n%s", cmp.Diff(want, starter))
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
tutorials:
  - id: "t1"
    title: Go Basics
    difficulty: beginner
    progress: 10
    lessons:
      - {id: "l1", title: Packages, kind: challenge}
exercises:
  - {id: "e1", title: FizzBuzz, difficulty: easy, points: 10, completion_rate: 50}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Tutorials[0].Lessons[0].Kind != "challenge" {
		t.Errorf("expected challenge lesson, got %s", c.Tutorials[0].Lessons[0].Kind)
	}
	if c.Exercises[0].Title != "FizzBuzz" {
		t.Errorf("expected FizzBuzz, got %s", c.Exercises[0].Title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"duplicate exercise", `exercises: [{id: "1", difficulty: easy}, {id: "1", difficulty: easy}]`, "duplicate"},
		{"bad difficulty", `exercises: [{id: "1", difficulty: brutal}]`, "difficulty"},
		{"bad severity", `issues: [{id: "1", severity: fatal}]`, "severity"},
		{"bad progress", `tutorials: [{id: "1", difficulty: beginner, progress: 140}]`, "progress"},
		{"bad lesson kind", `tutorials: [{id: "1", difficulty: beginner, lessons: [{id: "a", kind: quiz}]}]`, "kind"},
		{"bad score", `analysis: {quality: [{name: X, score: 101}]}`, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestComputeExerciseStats(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	got := ComputeExerciseStats(c.Exercises)
	want := ExerciseStats{Completed: 1, PointsEarned: 100, AvgSuccess: 73}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}

	if empty := ComputeExerciseStats(nil); empty != (ExerciseStats{}) {
		t.Errorf("expected zero stats for no exercises, got %+v", empty)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]int{72.5: 73, 72.49: 72, 0: 0, 99.5: 100}
	for in, want := range cases {
		if got := RoundHalfUp(in); got != want {
			t.Errorf("RoundHalfUp(%v) = %d, expected %d", in, got, want)
		}
	}
}

func TestFilterExercises(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	ids := func(es []Exercise) []string {
		var out []string
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	tests := []struct {
		level string
		want  []string
	}{
		{FilterAll, []string{"1", "2", "3"}},
		{"", []string{"1", "2", "3"}},
		{DifficultyEasy, []string{"2"}},
		{DifficultyMedium, []string{"1"}},
		{DifficultyHard, []string{"3"}},
		{"unknown", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ids(FilterExercises(c.Exercises, tt.level))); diff != "" {
			t.Errorf("filter %q mismatch (-want +got):\n%s", tt.level, diff)
		}
	}
}

func TestDifficultyStars(t *testing.T) {
	if DifficultyStars("easy") != 1 || DifficultyStars("medium") != 2 || DifficultyStars("hard") != 3 {
		t.Error("unexpected star counts")
	}
}

func TestMetricImproved(t *testing.T) {
	if !(Metric{Change: "+12"}).Improved() {
		t.Error("expected +12 to be an improvement")
	}
	if (Metric{Change: "-0.8"}).Improved() {
		t.Error("expected -0.8 not to be an improvement")
	}
}

func TestActiveIssuesAndCounts(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	all := CountIssues(ActiveIssues(c.Issues, nil))
	if diff := cmp.Diff(IssueCounts{Errors: 1, Warnings: 1, Suggestions: 1}, all); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}

	active := ActiveIssues(c.Issues, map[string]bool{"1": true})
	if len(active) != 2 || active[0].ID != "2" {
		t.Fatalf("expected issues [2 3] after dismissing 1, got %+v", active)
	}
	counts := CountIssues(active)
	if counts.Errors != 0 || counts.Total() != 2 {
		t.Errorf("expected 0 errors and 2 total, got %+v", counts)
	}
}
