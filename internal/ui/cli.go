package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/pillars/internal/config"
	"github.com/javiermolinar/pillars/internal/db"
	"github.com/javiermolinar/pillars/internal/logger"
	"github.com/javiermolinar/pillars/internal/planner"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	planner *planner.Planner
	config  *config.Config
	root    *cobra.Command
	debug   bool // Enable debug logging
	noColor bool
}

// NewApp creates a new CLI application with the given config. The database
// is opened on first use.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "pillars",
		Short: "Plan your week around the pillars of your life",
		Long: `Pillars is a weekly planner. Group activities under pillars (work,
meals, social, ...) and paint them onto the hours of your weeks.

Run without arguments to show the selected week.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShow(cmd, showOpts{})
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (also mirrors logs to stderr)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.pillarCmd())
	a.root.AddCommand(a.activityCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.assignCmd())
	a.root.AddCommand(a.clearCmd())
	a.root.AddCommand(a.cellCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.pruneCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pillars %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setup applies the global flags before any command runs.
func (a *App) setup() error {
	if a.noColor || !a.config.UI.Color {
		DisableColor()
	}
	return logger.Init(logger.Config{
		Debug: a.debug || a.config.Log.Debug,
		File:  a.config.LogFile(),
	})
}

// ensurePlanner opens the database and loads the planner on first use.
func (a *App) ensurePlanner(ctx context.Context) (*planner.Planner, error) {
	if a.planner != nil {
		return a.planner, nil
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	p, err := planner.New(ctx, repo, a.config.SlotGrid())
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("loading planner: %w", err)
	}
	logger.Debug("planner ready", "db", path, "slot_minutes", a.config.Grid.SlotMinutes)

	a.planner = p
	return p, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database and the log file.
func (a *App) Close() error {
	defer logger.Close()
	if a.planner == nil {
		return nil
	}
	err := a.planner.Close()
	a.planner = nil
	return err
}
