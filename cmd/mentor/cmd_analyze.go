package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/Mr-Dark-debug/codementor/internal/analysis"
	"github.com/Mr-Dark-debug/codementor/pkg/jsonutil"
)

var (
	analyzeFormat string
	analyzeWidth  int
)

// analyzeCmd prints the code analysis report
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print the code analysis report",
	Long: `Prints the analysis dashboard as a report.

Formats:
  markdown  rendered for the terminal
  plain     raw markdown
  json      structured report`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "markdown", "Output format: markdown, plain or json")
	analyzeCmd.Flags().IntVar(&analyzeWidth, "width", 100, "Word wrap width for rendered markdown")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	switch analyzeFormat {
	case "markdown", "plain", "json":
	default:
		return fmt.Errorf("unknown format %q (valid: markdown, plain, json)", analyzeFormat)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := analysis.NewAnalyzer(store).FullAnalysis()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch analyzeFormat {
	case "json":
		return jsonutil.WriteIndented(out, report)
	case "plain":
		_, err := fmt.Fprint(out, analysis.FormatReport(report))
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(analyzeWidth),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(analysis.FormatReport(report))
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
