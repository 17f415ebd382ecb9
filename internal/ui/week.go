package ui

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/pillars/internal/dateutil"
	"github.com/javiermolinar/pillars/internal/schedule"
)

func (a *App) weekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Add, list and select weeks",
		Long: `Weeks are kept in the order they were added. Commands that book or
clear time act on the selected week, marked with * in 'pillars week list'.`,
	}

	var start string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an empty week",
		Long: `Add an empty week after the last one. The selected week does not change.

Without --start the new week begins seven days after the last week.

Date formats for --start:
  this-week, next-week, last-week, today
  monday, tuesday, ... (next occurrence)
  2025-01-13 (YYYY-MM-DD)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}

			date := followingWeekStart(p.State())
			if start != "" {
				date, err = dateutil.ParseWeekStart(start, time.Now())
				if err != nil {
					return fmt.Errorf("invalid --start %q: %w", start, err)
				}
			}

			week, err := p.AddWeek(ctx, date)
			if err != nil {
				return fmt.Errorf("adding week: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added week %d: %s\n", len(p.State().Weeks), weekRange(week))
			return nil
		},
	}
	add.Flags().StringVar(&start, "start", "", "Start date of the new week")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}
			printWeeks(cmd.OutOrStdout(), p.State())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "select N",
		Short: "Select week N (as numbered by 'week list')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid week number %q", args[0])
			}
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}
			if err := p.SelectWeek(ctx, n-1); err != nil {
				if errors.Is(err, schedule.ErrWeekIndexOutOfRange) {
					return fmt.Errorf("no week %d, there are %d", n, len(p.State().Weeks))
				}
				return fmt.Errorf("selecting week: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected week %d: %s\n", n, weekRange(p.CurrentWeek()))
			return nil
		},
	})

	cmd.AddCommand(a.weekMoveCmd("next", "Select the following week", true))
	cmd.AddCommand(a.weekMoveCmd("prev", "Select the preceding week", false))

	cmd.AddCommand(&cobra.Command{
		Use:   "date DATE",
		Short: "Change the start date of the selected week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseWeekStart(args[0], time.Now())
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", args[0], err)
			}
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}
			if err := p.SetWeekStart(ctx, date); err != nil {
				return fmt.Errorf("changing week start: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Week now covers %s\n", weekRange(p.CurrentWeek()))
			return nil
		},
	})

	return cmd
}

func (a *App) weekMoveCmd(use, short string, forward bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := a.ensurePlanner(ctx)
			if err != nil {
				return err
			}

			move := p.PreviousWeek
			if forward {
				move = p.NextWeek
			}
			moved, err := move(ctx)
			if err != nil {
				return fmt.Errorf("changing week: %w", err)
			}

			out := cmd.OutOrStdout()
			if !moved {
				edge := "first"
				if forward {
					edge = "last"
				}
				fmt.Fprintln(out, formatWarn(fmt.Sprintf("Already at the %s week.", edge)))
				return nil
			}
			state := p.State()
			fmt.Fprintf(out, "Selected week %d: %s\n", state.CurrentWeekIndex+1, weekRange(p.CurrentWeek()))
			return nil
		},
	}
}

// followingWeekStart is the date seven days after the start of the last
// week in state.
func followingWeekStart(state schedule.State) time.Time {
	if len(state.Weeks) == 0 {
		return dateutil.StartOfWeek(time.Now())
	}
	return state.Weeks[len(state.Weeks)-1].StartDate.AddDate(0, 0, 7)
}
