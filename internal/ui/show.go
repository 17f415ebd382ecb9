package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

type showOpts struct {
	all       bool // ignore the configured view window
	noSummary bool
}

func (a *App) showCmd() *cobra.Command {
	var opts showOpts

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the selected week",
		Long: `Display the selected week as a grid of time slots by day, followed by
the activity legend and the time booked per pillar.

Only the rows between ui.view_start and ui.view_end are drawn unless
--all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShow(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Show all 24 hours")
	cmd.Flags().BoolVar(&opts.noSummary, "no-summary", false, "Only draw the grid")
	return cmd
}

func (a *App) runShow(cmd *cobra.Command, opts showOpts) error {
	p, err := a.ensurePlanner(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	state := p.State()
	week := p.CurrentWeek()
	fmt.Fprintf(out, "=== %s ===  %s\n\n",
		formatHeader(fmt.Sprintf("Week %d of %d", state.CurrentWeekIndex+1, len(state.Weeks))),
		weekRange(week))

	view := gridOpts{
		ViewStart: a.config.UI.ViewStart,
		ViewEnd:   a.config.UI.ViewEnd,
		CellWidth: cellWidthFor(termWidth()),
	}
	if opts.all {
		view.ViewStart, view.ViewEnd = "00:00", "23:59"
	}
	renderGrid(out, week, p.Grid(), p.Catalog(), view)

	if opts.noSummary {
		return nil
	}
	fmt.Fprintln(out)
	printLegend(out, p.Catalog())
	fmt.Fprintln(out)
	printSummary(out, p.Summary())
	return nil
}

func (a *App) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show time booked per pillar in the selected week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(weekRange(p.CurrentWeek())))
			printSummary(out, p.Summary())
			return nil
		},
	}
}
