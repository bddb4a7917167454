// Command mentor is the Code Mentor dashboard and its scripting surface.
//
// Usage:
//
//	mentor [flags]              launch the dashboard
//	mentor run [file]           simulate a run of a file (or stdin)
//	mentor catalog [kind]       print tutorials, exercises or issues
//	mentor search <query>       search exercises
//	mentor analyze              print the code analysis report
//	mentor config init|show     write or print the configuration
//	mentor version              print the version
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"
	"github.com/Mr-Dark-debug/codementor/internal/config"
	"github.com/Mr-Dark-debug/codementor/internal/database"
	"github.com/Mr-Dark-debug/codementor/internal/logging"
	"github.com/Mr-Dark-debug/codementor/internal/tui"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	verbose     bool
	configPath  string
	catalogPath string
	logFile     string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mentor",
	Short: "Code Mentor - interactive coding dashboard for the terminal",
	Long: `Code Mentor is a learning dashboard: a code editor with a simulated
run, tutorials, practice exercises, code analysis and a debug panel.

Run without arguments to start the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("catalog") {
			cfg.Catalog.Path = catalogPath
		}
		if cmd.Flags().Changed("log-file") {
			cfg.Logging.File = logFile
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger.Debug("config loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file (default: built-in catalog)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (empty disables logging)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore loads the configured catalog into a fresh in-memory store.
func openStore() (*database.DBService, error) {
	c, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	store, err := database.Open(c)
	if err != nil {
		return nil, fmt.Errorf("opening catalog store: %w", err)
	}
	logger.Debug("catalog store ready",
		zap.Int("tutorials", len(c.Tutorials)),
		zap.Int("exercises", len(c.Exercises)),
		zap.Int("issues", len(c.Issues)))
	return store, nil
}

// runDashboard launches the interactive dashboard.
func runDashboard() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	model := tui.NewModel(store, tui.Options{
		InitialCode: cfg.Editor.InitialCode,
		Language:    cfg.Editor.Language,
		Delay:       cfg.GetRunDelay(),
		SidebarOpen: cfg.UI.SidebarOpen,
		Logger:      logger,
	})

	logger.Info("dashboard started")
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	logger.Info("dashboard closed")
	return nil
}
