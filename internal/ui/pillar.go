package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) pillarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pillar",
		Short: "Manage pillars",
		Long: `Pillars are the life areas activities belong to.

Deleting a pillar deletes its activities. Slots already booked with them
stay in your weeks as unlabeled time until you run 'pillars prune'.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pillars and their activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), p.Catalog())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "add NAME",
		Short:   "Add a pillar",
		Example: `  pillars pillar add "Health"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}
			pillar, err := p.AddPillar(ctx, args[0])
			if err != nil {
				return fmt.Errorf("adding pillar: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created pillar %s (%s)\n", pillar.Name, pillar.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a pillar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}
			if err := p.RenamePillar(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("renaming pillar: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed pillar %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete a pillar and its activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}
			if err := p.DeletePillar(ctx, args[0]); err != nil {
				return fmt.Errorf("deleting pillar: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted pillar %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func (a *App) activityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage activities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every activity with its pillar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}
			printActivities(cmd.OutOrStdout(), p.Catalog())
			return nil
		},
	})

	var color string
	add := &cobra.Command{
		Use:   "add PILLAR_ID NAME",
		Short: "Add an activity to a pillar",
		Long: `Add an activity to a pillar.

Example:
  pillars activity add 3 "Code review" --color "#74b9ff"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}
			act, err := p.AddActivity(ctx, args[0], args[1], color)
			if err != nil {
				return fmt.Errorf("adding activity: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created activity %s %s (%s)\n", swatch(act.Color), act.Name, act.ID)
			return nil
		},
	}
	add.Flags().StringVar(&color, "color", "", "Color as #rrggbb (required)")
	_ = add.MarkFlagRequired("color")
	cmd.AddCommand(add)

	var newName, newColor string
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Rename or recolor an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if newName == "" && newColor == "" {
				return fmt.Errorf("nothing to change: pass --name and/or --color")
			}
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}
			act, err := p.UpdateActivity(ctx, args[0], newName, newColor)
			if err != nil {
				return fmt.Errorf("updating activity: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s %s (%s)\n", swatch(act.Color), act.Name, act.ID)
			return nil
		},
	}
	edit.Flags().StringVar(&newName, "name", "", "New name")
	edit.Flags().StringVar(&newColor, "color", "", "New color as #rrggbb")
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete an activity",
		Long: `Delete an activity.

Slots already booked with it stay in your weeks as unlabeled time until
you run 'pillars prune'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}
			if err := p.DeleteActivity(ctx, args[0]); err != nil {
				return fmt.Errorf("deleting activity: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %s\n", args[0])
			return nil
		},
	})

	return cmd
}
