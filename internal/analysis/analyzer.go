// Package analysis assembles the code-quality dashboard from catalog data.
//
// Every figure here is presentation-only mock content: scores, metrics and
// insights are read from the store, never derived from the editor buffer.
// The package only arranges them (averages, shares, highlights, warnings)
// and renders the Markdown report used by `mentor analyze`.
package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"
	"github.com/Mr-Dark-debug/codementor/internal/database"
)

// WarnBelowScore is the quality score under which a category is flagged.
const WarnBelowScore = 80

// highlightNames are the quality categories promoted to summary cards.
var highlightNames = []struct {
	category string
	label    string
}{
	{"Security", "Security Score"},
	{"Performance", "Performance"},
}

// Analyzer builds reports from the catalog store.
type Analyzer struct {
	store database.Store
	now   func() time.Time
}

// NewAnalyzer creates a new analyzer backed by the given store.
func NewAnalyzer(store database.Store) *Analyzer {
	return &Analyzer{store: store, now: time.Now}
}

// Highlight is a single summary card.
type Highlight struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// ComplexityShare is a complexity bucket with its share of the total.
type ComplexityShare struct {
	catalog.ComplexityBucket
	Share float64 `json:"share"` // percent of all buckets
}

// MetricRow is a key metric with its display direction resolved.
type MetricRow struct {
	catalog.Metric
	Improved bool `json:"improved"`
}

// Report is the complete output of `mentor analyze`.
type Report struct {
	GeneratedAt   string                 `json:"generated_at"`
	Grade         string                 `json:"grade"`
	AverageScore  float64                `json:"average_score"`
	Quality       []catalog.QualityScore `json:"quality"`
	Highlights    []Highlight            `json:"highlights"`
	Complexity    []ComplexityShare      `json:"complexity"`
	Metrics       []MetricRow            `json:"metrics"`
	Insights      []catalog.Insight      `json:"insights"`
	ExerciseStats *catalog.ExerciseStats `json:"exercise_stats,omitempty"`
	Warnings      []string               `json:"warnings"`
}

// FullAnalysis gathers every section of the report.
func (a *Analyzer) FullAnalysis() (*Report, error) {
	data, err := a.store.GetAnalysis()
	if err != nil {
		return nil, fmt.Errorf("loading analysis data: %w", err)
	}

	report := Build(data)
	report.GeneratedAt = a.now().Format(time.RFC3339)

	stats, err := a.store.GetExerciseStats()
	if err != nil {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Exercise statistics unavailable: %v", err))
	} else {
		report.ExerciseStats = stats
	}

	return report, nil
}

// Build arranges raw analysis data into a report. It does not touch the store.
func Build(data *catalog.Analysis) *Report {
	report := &Report{
		Grade:    data.Grade,
		Quality:  data.Quality,
		Insights: data.Insights,
	}

	report.AverageScore = averageScore(data.Quality)

	for _, h := range highlightNames {
		for _, q := range data.Quality {
			if q.Name == h.category {
				report.Highlights = append(report.Highlights, Highlight{Label: h.label, Score: q.Score})
				break
			}
		}
	}

	total := 0
	for _, b := range data.Complexity {
		total += b.Value
	}
	for _, b := range data.Complexity {
		share := 0.0
		if total > 0 {
			share = math.Round(float64(b.Value)*1000/float64(total)) / 10
		}
		report.Complexity = append(report.Complexity, ComplexityShare{ComplexityBucket: b, Share: share})
	}

	for _, m := range data.Metrics {
		report.Metrics = append(report.Metrics, MetricRow{Metric: m, Improved: m.Improved()})
	}

	for _, q := range data.Quality {
		if q.Score < WarnBelowScore {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s scored %d/100, below the %d mark.", q.Name, q.Score, WarnBelowScore))
		}
	}

	return report
}

func averageScore(scores []catalog.QualityScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, q := range scores {
		sum += q.Score
	}
	return math.Round(float64(sum)*10/float64(len(scores))) / 10
}

// FormatReport generates a Markdown report.
func FormatReport(report *Report) string {
	var b strings.Builder

	b.WriteString("# Code Analysis Results\n\n")
	fmt.Fprintf(&b, "**Overall Score:** %s  \n", report.Grade)
	fmt.Fprintf(&b, "**Average Quality:** %.1f/100  \n", report.AverageScore)
	if report.GeneratedAt != "" {
		fmt.Fprintf(&b, "**Generated:** %s\n", report.GeneratedAt)
	}
	b.WriteString("\n")

	if len(report.Highlights) > 0 {
		for _, h := range report.Highlights {
			fmt.Fprintf(&b, "- **%s:** %d/100\n", h.Label, h.Score)
		}
		b.WriteString("\n")
	}

	if len(report.Quality) > 0 {
		b.WriteString("## Code Quality Metrics\n\n")
		b.WriteString("| Category | Score |\n")
		b.WriteString("|----------|-------|\n")
		for _, q := range report.Quality {
			fmt.Fprintf(&b, "| %s | %d |\n", q.Name, q.Score)
		}
		b.WriteString("\n")
	}

	if len(report.Metrics) > 0 {
		b.WriteString("## Key Metrics\n\n")
		b.WriteString("| Metric | Value | Change |\n")
		b.WriteString("|--------|-------|--------|\n")
		for _, m := range report.Metrics {
			marker := "▼"
			if m.Improved {
				marker = "▲"
			}
			fmt.Fprintf(&b, "| %s | %s | %s %s |\n", m.Metric.Metric, m.Value, marker, m.Change)
		}
		b.WriteString("\n")
	}

	if len(report.Complexity) > 0 {
		b.WriteString("## Code Complexity Distribution\n\n")
		for _, c := range report.Complexity {
			fmt.Fprintf(&b, "- **%s:** %d%% (%.1f%% of functions)\n", c.Name, c.Value, c.Share)
		}
		b.WriteString("\n")
	}

	if report.ExerciseStats != nil {
		s := report.ExerciseStats
		b.WriteString("## Practice\n\n")
		fmt.Fprintf(&b, "- **Completed:** %d\n", s.Completed)
		fmt.Fprintf(&b, "- **Points Earned:** %d\n", s.PointsEarned)
		fmt.Fprintf(&b, "- **Avg Success:** %d%%\n\n", s.AvgSuccess)
	}

	if len(report.Insights) > 0 {
		b.WriteString("## AI-Powered Insights\n\n")
		for _, in := range report.Insights {
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", in.Title, in.Body)
		}
	}

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	return b.String()
}
