package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/pillars/internal/planner"
	"github.com/javiermolinar/pillars/internal/schedule"
)

func (a *App) assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign DAY START END ACTIVITY_ID",
		Short: "Book an activity from START through END on DAY",
		Long: `Book an activity on the selected week.

The block covers the slots from START through END. An END that is not
after START wraps past midnight into the next day, Sunday wrapping to
Monday, so START equal to END books a full day and one more slot.

Slots that are already booked are skipped, never overwritten.

DAY is a weekday name, its short form (mon, tue, ...) or "today".

Examples:
  pillars assign monday 09:00 11:00 7
  pillars assign today 12:00 13:00 4
  pillars assign sun 23:00 06:00 10`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0], time.Now())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}

			claimed, err := p.Assign(ctx, day, args[1], args[2], args[3])
			if err != nil {
				return fmt.Errorf("assigning: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(claimed) == 0 {
				fmt.Fprintln(out, formatWarn("Every slot in that range is already booked."))
				return nil
			}
			act, _ := p.Catalog().FindActivity(args[3])
			fmt.Fprintf(out, "Booked %s %s on %d slot(s), %s to %s\n",
				swatch(act.Color), act.Name, len(claimed), claimed[0], claimed[len(claimed)-1])
			return nil
		},
	}
}

func (a *App) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear DAY TIME",
		Short: "Clear the slot at TIME on DAY",
		Long: `Clear one slot of the selected week. If the slot ends a block, the
block's end marker on the following slot is removed too.

Only the given slot is cleared: clear each slot of a longer block.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0], time.Now())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}

			removed, err := p.Clear(ctx, day, args[1])
			if err != nil {
				return fmt.Errorf("clearing: %w", err)
			}
			out := cmd.OutOrStdout()
			if !removed.Occupied() {
				fmt.Fprintf(out, "%s %s was already empty\n", day, args[1])
				return nil
			}
			fmt.Fprintf(out, "Cleared %s %s (%s)\n", day, args[1], activityLabel(p, removed.ActivityID))
			return nil
		},
	}
}

func (a *App) cellCmd() *cobra.Command {
	var end, activityID string
	cmd := &cobra.Command{
		Use:   "cell DAY TIME",
		Short: "Toggle the slot at TIME on DAY",
		Long: `Act on one slot of the selected week as a click on the grid would:
a booked slot is cleared, an empty slot starts a block that runs to --end
with --activity.

Example:
  pillars cell tue 14:00 --end 16:00 --activity 8`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0], time.Now())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}

			action, err := p.Click(ctx, day, args[1], end, activityID)
			if err != nil {
				return fmt.Errorf("%s: %w", day, err)
			}
			switch action {
			case planner.CellCleared:
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s %s\n", day, args[1])
			case planner.CellAssigned:
				fmt.Fprintf(cmd.OutOrStdout(), "Booked %s from %s %s to %s\n",
					activityLabel(p, activityID), day, args[1], end)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&end, "end", "", "End of the block when the slot is empty")
	cmd.Flags().StringVar(&activityID, "activity", "", "Activity to book when the slot is empty")
	return cmd
}

func (a *App) pruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove bookings of deleted activities from all weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}
			removed, err := p.Prune(ctx)
			if err != nil {
				return fmt.Errorf("pruning: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d slot(s)\n", removed)
			return nil
		},
	}
}

// activityLabel names an activity, falling back to its id when the catalog
// no longer has it.
func activityLabel(p *planner.Planner, id string) string {
	if act, ok := p.Catalog().FindActivity(id); ok {
		return act.Name
	}
	return "#" + id
}

// parseDay reads a DAY argument: a weekday name, its three-letter short
// form, or "today".
func parseDay(s string, now time.Time) (schedule.Day, error) {
	if strings.EqualFold(strings.TrimSpace(s), "today") {
		return schedule.DayOf(now), nil
	}
	return schedule.ParseDay(s)
}
