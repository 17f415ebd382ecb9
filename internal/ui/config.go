package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/pillars/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Changing slot_minutes on a database that already holds weeks makes the
stored grid unreadable: export first, then start over with a fresh
database.

Example:
  pillars config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "Config file to edit (default ~/.config/pillars/config.toml)")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Grid.SlotMinutes = promptInt(reader, out, "Slot minutes", cfg.Grid.SlotMinutes)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.Log.Dir = promptValue(reader, out, "Log directory", cfg.Log.Dir)
	cfg.Log.Debug = promptBool(reader, out, "Debug logging", cfg.Log.Debug)
	cfg.UI.Color = promptBool(reader, out, "Color output", cfg.UI.Color)
	cfg.UI.ViewStart = promptValue(reader, out, "First hour shown", cfg.UI.ViewStart)
	cfg.UI.ViewEnd = promptValue(reader, out, "Last hour shown", cfg.UI.ViewEnd)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, formatHeader("Current configuration:"))
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[grid]")
	fmt.Fprintf(w, "  slot_minutes = %d\n", cfg.Grid.SlotMinutes)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path      = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  debug        = %t\n", cfg.Log.Debug)
	fmt.Fprintf(w, "  dir          = %s\n", cfg.Log.Dir)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  color        = %t\n", cfg.UI.Color)
	fmt.Fprintf(w, "  view_start   = %s\n", cfg.UI.ViewStart)
	fmt.Fprintf(w, "  view_end     = %s\n", cfg.UI.ViewEnd)
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input := strings.ToLower(readLine(reader))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input := readLine(reader)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Not a number: %q\n", value)
	}
}

func promptBool(reader *bufio.Reader, out io.Writer, label string, current bool) bool {
	for {
		value := promptValue(reader, out, label, strconv.FormatBool(current))
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		fmt.Fprintf(out, "  Expected true or false, got %q\n", value)
	}
}
