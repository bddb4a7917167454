package database

import (
	"errors"
	"testing"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"
	"github.com/google/go-cmp/cmp"
)

// newSeededStore opens an in-memory store with the embedded catalog.
func newSeededStore(t *testing.T) (*DBService, *catalog.Catalog) {
	t.Helper()

	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default failed: %v", err)
	}
	svc, err := Open(c)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc, c
}

// TestNewDBService verifies that the schema applies to a fresh in-memory database.
func TestNewDBService(t *testing.T) {
	svc, err := NewDBService(MemoryDSN)
	if err != nil {
		t.Fatalf("NewDBService(:memory:) failed: %v", err)
	}
	defer svc.Close()

	tutorials, err := svc.ListTutorials()
	if err != nil {
		t.Fatalf("ListTutorials failed: %v", err)
	}
	if len(tutorials) != 0 {
		t.Errorf("expected empty store, got %d tutorials", len(tutorials))
	}
}

// TestSeedRoundTrip verifies every record comes back exactly as seeded.
func TestSeedRoundTrip(t *testing.T) {
	svc, c := newSeededStore(t)

	tutorials, err := svc.ListTutorials()
	if err != nil {
		t.Fatalf("ListTutorials failed: %v", err)
	}
	if diff := cmp.Diff(c.Tutorials, tutorials); diff != "" {
		t.Errorf("tutorials mismatch (-want +got):\n%s", diff)
	}

	exercises, err := svc.ListExercises(ExerciseFilter{})
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if diff := cmp.Diff(c.Exercises, exercises); diff != "" {
		t.Errorf("exercises mismatch (-want +got):\n%s", diff)
	}

	issues, err := svc.ListIssues()
	if err != nil {
		t.Fatalf("ListIssues failed: %v", err)
	}
	if diff := cmp.Diff(c.Issues, issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}

	analysis, err := svc.GetAnalysis()
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if diff := cmp.Diff(&c.Analysis, analysis); diff != "" {
		t.Errorf("analysis mismatch (-want +got):\n%s", diff)
	}

	header, err := svc.GetHeaderStats()
	if err != nil {
		t.Fatalf("GetHeaderStats failed: %v", err)
	}
	if diff := cmp.Diff(&c.Header, header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestListExercisesFilter(t *testing.T) {
	svc, _ := newSeededStore(t)

	tests := []struct {
		filter ExerciseFilter
		want   []string
	}{
		{ExerciseFilter{Difficulty: "all"}, []string{"1", "2", "3"}},
		{ExerciseFilter{Difficulty: "easy"}, []string{"2"}},
		{ExerciseFilter{Difficulty: "hard"}, []string{"3"}},
		{ExerciseFilter{Limit: 2}, []string{"1", "2"}},
	}
	for _, tt := range tests {
		got, err := svc.ListExercises(tt.filter)
		if err != nil {
			t.Fatalf("ListExercises(%+v) failed: %v", tt.filter, err)
		}
		var ids []string
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		if diff := cmp.Diff(tt.want, ids); diff != "" {
			t.Errorf("filter %+v mismatch (-want +got):\n%s", tt.filter, diff)
		}
	}
}

func TestGetExercise(t *testing.T) {
	svc, _ := newSeededStore(t)

	ex, err := svc.GetExercise("3")
	if err != nil {
		t.Fatalf("GetExercise failed: %v", err)
	}
	if ex.Title != "Binary Tree Traversal" {
		t.Errorf("expected Binary Tree Traversal, got %s", ex.Title)
	}
	if len(ex.Tags) != 3 || ex.Tags[0] != "trees" {
		t.Errorf("expected tags [trees recursion data-structures], got %v", ex.Tags)
	}

	_, err = svc.GetExercise("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchExercises(t *testing.T) {
	svc, _ := newSeededStore(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"palindrome", []string{"2"}},
		{"RECURSION", []string{"3"}},
		{"javascript", []string{"1", "2"}},
		{"no such thing", nil},
		{"_", nil},
		{"%", nil},
		{"array%sum", nil},
	}
	for _, tt := range tests {
		got, err := svc.SearchExercises(tt.query, 0)
		if err != nil {
			t.Fatalf("SearchExercises(%q) failed: %v", tt.query, err)
		}
		var ids []string
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		if diff := cmp.Diff(tt.want, ids); diff != "" {
			t.Errorf("search %q mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

// TestExerciseStatsMatchCatalog checks the SQL aggregate against the
// in-memory computation.
func TestExerciseStatsMatchCatalog(t *testing.T) {
	svc, c := newSeededStore(t)

	stats, err := svc.GetExerciseStats()
	if err != nil {
		t.Fatalf("GetExerciseStats failed: %v", err)
	}
	want := catalog.ComputeExerciseStats(c.Exercises)
	if *stats != want {
		t.Errorf("expected %+v, got %+v", want, *stats)
	}
}

func TestSeedTwiceFailsAtomically(t *testing.T) {
	svc, c := newSeededStore(t)

	if err := svc.SeedCatalog(c); err == nil {
		t.Fatal("expected duplicate seed to fail")
	}

	exercises, err := svc.ListExercises(ExerciseFilter{})
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(exercises) != len(c.Exercises) {
		t.Errorf("expected %d exercises after failed reseed, got %d", len(c.Exercises), len(exercises))
	}
}

func TestSeedNilCatalog(t *testing.T) {
	svc, err := NewDBService(MemoryDSN)
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	if err := svc.SeedCatalog(nil); err == nil {
		t.Error("expected error for nil catalog")
	}
}
