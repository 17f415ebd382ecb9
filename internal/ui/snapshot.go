package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/pillars/internal/snapshot"
)

func (a *App) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write pillars, activities and weeks to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}
			doc := p.Snapshot()
			if err := snapshot.WriteFile(args[0], doc); err != nil {
				return fmt.Errorf("exporting: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d pillar(s) and %d week(s) to %s\n",
				len(doc.Pillars), len(doc.Weeks), args[0])
			return nil
		},
	}
}

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace everything with the contents of a JSON export",
		Long: `Replace the stored pillars, activities and weeks with a file written by
'pillars export'. A file that does not validate changes nothing.

The file's slot_minutes must match the configured grid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := snapshot.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}
			if err := p.Import(ctx, doc); err != nil {
				return fmt.Errorf("importing: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d pillar(s) and %d week(s) from %s\n",
				len(doc.Pillars), len(doc.Weeks), args[0])
			return nil
		},
	}
}
