package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/codementor/internal/execution"
	"github.com/Mr-Dark-debug/codementor/pkg/jsonutil"
	"github.com/Mr-Dark-debug/codementor/pkg/timeutil"
)

var (
	runDelay  time.Duration
	runFormat string
)

// runCmd simulates a run of a file or stdin
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Simulate running code from a file or stdin",
	Long: `Loads the code into the editor buffer and performs a simulated run.
The code is never executed; the run waits for the configured delay and
prints the canned output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCode,
}

func init() {
	runCmd.Flags().DurationVar(&runDelay, "delay", -1, "Run delay (default from config)")
	runCmd.Flags().StringVar(&runFormat, "format", "text", "Output format: text or json")
}

type runReport struct {
	RunID      string `json:"run_id"`
	Language   string `json:"language"`
	Lines      int    `json:"lines"`
	Output     string `json:"output"`
	Failed     bool   `json:"failed"`
	DurationMs int64  `json:"duration_ms"`
}

// newRunSimulator builds a simulator whose buffer starts as code.
func newRunSimulator(code string, delay time.Duration) *execution.Simulator {
	return execution.New(
		execution.WithInitialCode(code),
		execution.WithLanguage(cfg.Editor.Language),
		execution.WithDelay(delay),
		execution.WithLogger(logger),
		execution.OnRunCode(func(text string) {
			logger.Info("running code",
				zap.Int("bytes", len(text)),
				zap.Int("lines", strings.Count(text, "\n")+1))
		}),
	)
}

func runCode(cmd *cobra.Command, args []string) error {
	if runFormat != "text" && runFormat != "json" {
		return fmt.Errorf("unknown format %q (valid: text, json)", runFormat)
	}

	var (
		code []byte
		err  error
	)
	if len(args) == 1 {
		code, err = os.ReadFile(args[0])
	} else {
		code, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading code: %w", err)
	}

	delay := runDelay
	if delay < 0 {
		delay = cfg.GetRunDelay()
	}

	sim := newRunSimulator(string(code), delay)
	exec, err := sim.Begin()
	if err != nil {
		return err
	}
	res := exec.Wait()

	out := cmd.OutOrStdout()
	if runFormat == "json" {
		if err := jsonutil.WriteIndented(out, runReport{
			RunID:      res.RunID,
			Language:   sim.Language(),
			Lines:      len(sim.LineNumbers()),
			Output:     res.Output,
			Failed:     res.Failed,
			DurationMs: res.Duration.Milliseconds(),
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, res.Output)
		fmt.Fprintf(cmd.ErrOrStderr(), "%s  %d lines  run %s  %s\n",
			sim.Language(), len(sim.LineNumbers()), res.RunID, timeutil.FormatDuration(res.Duration))
	}

	if res.Failed {
		return fmt.Errorf("run %s failed", res.RunID)
	}
	return nil
}
