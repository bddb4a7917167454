package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"
	"github.com/Mr-Dark-debug/codementor/internal/database"
	"github.com/Mr-Dark-debug/codementor/pkg/jsonutil"
)

var (
	catalogFormat     string
	catalogDifficulty string
	searchLimit       int
)

// catalogCmd prints catalog records
var catalogCmd = &cobra.Command{
	Use:       "catalog [tutorials|exercises|issues]",
	Short:     "Print tutorials, exercises or issues",
	Long:      `Prints catalog data. Without an argument a summary of every kind is printed.`,
	ValidArgs: []string{"tutorials", "exercises", "issues"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE:      runCatalog,
}

// searchCmd searches exercises
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search exercises by title, description or tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogFormat, "format", "text", "Output format: text or json")
	catalogCmd.Flags().StringVar(&catalogDifficulty, "difficulty", catalog.FilterAll, "Exercise difficulty: all, easy, medium or hard")

	searchCmd.Flags().StringVar(&catalogFormat, "format", "text", "Output format: text or json")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results (0 for all)")
}

func checkFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (valid: text, json)", format)
	}
	return nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if err := checkFormat(catalogFormat); err != nil {
		return err
	}
	validLevel := false
	for _, l := range catalog.FilterLevels {
		if catalogDifficulty == l {
			validLevel = true
		}
	}
	if !validLevel {
		return fmt.Errorf("unknown difficulty %q (valid: %s)", catalogDifficulty, strings.Join(catalog.FilterLevels, ", "))
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	kind := ""
	if len(args) == 1 {
		kind = args[0]
	}
	out := cmd.OutOrStdout()

	switch kind {
	case "tutorials":
		tutorials, err := store.ListTutorials()
		if err != nil {
			return err
		}
		if catalogFormat == "json" {
			return jsonutil.WriteIndented(out, tutorials)
		}
		return printTutorials(out, tutorials)

	case "exercises":
		exercises, err := store.ListExercises(database.ExerciseFilter{Difficulty: catalogDifficulty})
		if err != nil {
			return err
		}
		if catalogFormat == "json" {
			return jsonutil.WriteIndented(out, exercises)
		}
		return printExercises(out, exercises)

	case "issues":
		issues, err := store.ListIssues()
		if err != nil {
			return err
		}
		if catalogFormat == "json" {
			return jsonutil.WriteIndented(out, issues)
		}
		return printIssues(out, issues)
	}

	return printSummary(out, store)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := checkFormat(catalogFormat); err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	exercises, err := store.SearchExercises(args[0], searchLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if catalogFormat == "json" {
		return jsonutil.WriteIndented(out, exercises)
	}
	if len(exercises) == 0 {
		fmt.Fprintf(out, "No exercises match %q.\n", args[0])
		return nil
	}
	return printExercises(out, exercises)
}

// ── text output ──

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func printTutorials(w io.Writer, tutorials []catalog.Tutorial) error {
	t := newTable("ID", "Tutorial", "Difficulty", "Progress", "Lessons")
	for _, tu := range tutorials {
		done := 0
		for _, l := range tu.Lessons {
			if l.Completed {
				done++
			}
		}
		t.Row(tu.ID, tu.Title, tu.Difficulty,
			fmt.Sprintf("%d%%", tu.Progress),
			fmt.Sprintf("%d/%d", done, len(tu.Lessons)))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func printExercises(w io.Writer, exercises []catalog.Exercise) error {
	t := newTable("ID", "Exercise", "Difficulty", "Time", "Points", "Success", "Done", "Tags")
	for _, e := range exercises {
		done := ""
		if e.Completed {
			done = "✓"
		}
		tags := e.Tags
		if len(tags) > 3 {
			tags = tags[:3]
		}
		t.Row(e.ID, e.Title, e.Difficulty, e.TimeEstimate,
			strconv.Itoa(e.Points),
			fmt.Sprintf("%d%%", e.CompletionRate),
			done, strings.Join(tags, ", "))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func printIssues(w io.Writer, issues []catalog.Issue) error {
	t := newTable("ID", "Severity", "Location", "Message", "Fixable")
	for _, is := range issues {
		fixable := ""
		if is.Fixable {
			fixable = "yes"
		}
		t.Row(is.ID, is.Severity,
			fmt.Sprintf("Line %d, Column %d", is.Line, is.Column),
			is.Message, fixable)
	}
	_, err := fmt.Fprintln(w, t.String())
	if err != nil {
		return err
	}
	c := catalog.CountIssues(issues)
	_, err = fmt.Fprintf(w, "%d errors, %d warnings, %d suggestions\n", c.Errors, c.Warnings, c.Suggestions)
	return err
}

func printSummary(w io.Writer, store database.Store) error {
	header, err := store.GetHeaderStats()
	if err != nil {
		return err
	}
	tutorials, err := store.ListTutorials()
	if err != nil {
		return err
	}
	exercises, err := store.ListExercises(database.ExerciseFilter{})
	if err != nil {
		return err
	}
	issues, err := store.ListIssues()
	if err != nil {
		return err
	}
	stats, err := store.GetExerciseStats()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s  %s  %s  %s\n", header.Brand, header.Lessons, header.Points, header.Students)
	fmt.Fprintf(w, "Tutorials: %d\n", len(tutorials))
	fmt.Fprintf(w, "Exercises: %d (%d completed, %d points earned, %d%% avg success)\n",
		len(exercises), stats.Completed, stats.PointsEarned, stats.AvgSuccess)
	fmt.Fprintf(w, "Issues:    %d\n", len(issues))
	return nil
}
