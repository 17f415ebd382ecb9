package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/pillars/internal/catalog"
	"github.com/javiermolinar/pillars/internal/schedule"
	"github.com/javiermolinar/pillars/internal/summary"
)

// truncate shortens s to at most width display cells, marking the cut
// with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// swatch renders a small square in the activity color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}

// paint renders text padded to width on the activity's background color.
func paint(a catalog.Activity, text string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color(a.Color)).
		Foreground(lipgloss.Color(catalog.TextColor(a.Color))).
		Render(truncate(text, width))
}

// Bar renders minutes as a share of total in a fixed-width bar.
func Bar(minutes, total, width int) string {
	if total == 0 || minutes <= 0 {
		return "[" + strings.Repeat("░", width) + "]"
	}
	filled := (minutes * width) / total
	if filled > width {
		filled = width
	}
	return "[" + formatStats(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled) + "]"
}

// weekRange formats the dates covered by a week.
func weekRange(w schedule.Week) string {
	return fmt.Sprintf("%s - %s", w.StartDate.Format("Mon Jan 2"), w.EndDate().Format("Mon Jan 2, 2006"))
}

// printCatalog lists every pillar and its activities with their ids.
func printCatalog(w io.Writer, cat catalog.Catalog) {
	if len(cat.Pillars) == 0 {
		fmt.Fprintln(w, "No pillars yet. Add one with 'pillars pillar add NAME'.")
		return
	}
	for i, p := range cat.Pillars {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", formatHeader(p.Name), formatMuted("("+p.ID+")"))
		if len(p.Activities) == 0 {
			fmt.Fprintf(w, "  %s\n", formatMuted("no activities"))
			continue
		}
		for _, a := range p.Activities {
			fmt.Fprintf(w, "  %s %-4s %-28s %s\n", swatch(a.Color), a.ID, truncate(a.Name, 28), formatMuted(a.Color))
		}
	}
}

// printActivities lists every activity on its own line, in catalog order.
func printActivities(w io.Writer, cat catalog.Catalog) {
	acts := cat.Activities()
	if len(acts) == 0 {
		fmt.Fprintln(w, "No activities yet. Add one with 'pillars activity add PILLAR_ID NAME --color #rrggbb'.")
		return
	}
	for _, a := range acts {
		pillar, _ := cat.FindPillar(a.PillarID)
		fmt.Fprintf(w, "%s %-4s %-28s %-14s %s\n", swatch(a.Color), a.ID, truncate(a.Name, 28),
			truncate(pillar.Name, 14), formatMuted(a.Color))
	}
}

// printLegend prints the activities of the catalog on compact lines, one
// pillar per line.
func printLegend(w io.Writer, cat catalog.Catalog) {
	for _, p := range cat.Pillars {
		if len(p.Activities) == 0 {
			continue
		}
		items := make([]string, 0, len(p.Activities))
		for _, a := range p.Activities {
			items = append(items, fmt.Sprintf("%s %s %s", swatch(a.Color), a.Name, formatMuted("#"+a.ID)))
		}
		fmt.Fprintf(w, "  %s  %s\n", formatHeader(fmt.Sprintf("%-12s", truncate(p.Name, 12))), strings.Join(items, "  "))
	}
}

// printWeeks lists the weeks in the order they were added, 1-based.
func printWeeks(w io.Writer, state schedule.State) {
	for i, wk := range state.Weeks {
		marker := " "
		if i == state.CurrentWeekIndex {
			marker = "*"
		}
		line := fmt.Sprintf("%s %2d  %s  %s", marker, i+1, weekRange(wk),
			formatMuted(fmt.Sprintf("%d slots", wk.Schedule.Occupied())))
		if i == state.CurrentWeekIndex {
			line = formatHeader(line)
		}
		fmt.Fprintln(w, line)
	}
}

// printSummary prints time per pillar and activity for one week.
func printSummary(w io.Writer, s *summary.WeekSummary) {
	if s.TotalMinutes == 0 {
		fmt.Fprintln(w, "  Nothing booked this week.")
		return
	}

	for _, p := range s.Pillars {
		fmt.Fprintf(w, "  %-14s %7s %4s  %s\n",
			truncate(p.Name, 14),
			summary.FormatMinutes(p.Minutes),
			fmt.Sprintf("%d%%", s.Percent(p.Minutes)),
			Bar(p.Minutes, s.TotalMinutes, 20))
		for _, at := range p.Activities {
			if at.Minutes == 0 {
				continue
			}
			fmt.Fprintf(w, "    %s %-24s %s\n", swatch(at.Activity.Color), truncate(at.Activity.Name, 24),
				formatMuted(summary.FormatMinutes(at.Minutes)))
		}
	}
	if s.UnlabeledMinutes > 0 {
		fmt.Fprintf(w, "  %s\n", formatWarn(fmt.Sprintf("%-14s %7s  (activities no longer in the catalog, see 'pillars prune')",
			"Unlabeled", summary.FormatMinutes(s.UnlabeledMinutes))))
	}

	line := fmt.Sprintf("  Total: %s", formatStats(summary.FormatMinutes(s.TotalMinutes)))
	if day, m := s.BusiestDay(); day != "" {
		line += fmt.Sprintf("  |  Busiest day: %s (%s)", day, summary.FormatMinutes(m))
	}
	fmt.Fprintln(w, line)
}
