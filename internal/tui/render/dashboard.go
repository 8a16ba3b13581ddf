package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/tui"
	"github.com/thenoetrevino/agency/internal/tui/components"
)

// barWidth is the longest bar of the weekly activity chart
const barWidth = 30

// ViewDashboard renders the analytics summary
func ViewDashboard(m *tui.Model) string {
	res := m.App.AnalyticsService.Collection()
	if !res.Loaded() {
		return components.SubtleStyle.Render("Loading dashboard...")
	}
	d := res.Get()

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Tasks", humanize.Comma(int64(d.TotalTasks))),
		statCard("Completed", humanize.Comma(int64(d.TasksCompleted))),
		statCard("Completion", fmt.Sprintf("%.0f%%", d.CompletionRate)),
		statCard("Hours logged", humanize.FormatFloat("#,###.#", d.TotalHoursLogged)),
		statCard("Active timers", humanize.Comma(int64(d.ActiveTimers))),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		stats,
		lipgloss.JoinHorizontal(lipgloss.Top, statusBreakdown(d), weeklyActivity(d)),
	)
}

func statCard(label, value string) string {
	return components.PanelStyle.Width(18).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			components.SubtleStyle.Render(label),
			components.TitleStyle.Render(value),
		))
}

func statusBreakdown(d models.Dashboard) string {
	lines := []string{components.TitleStyle.Render("By status")}
	for _, s := range models.Statuses() {
		lines = append(lines, fmt.Sprintf("%-12s %4d", s.Title(), d.TasksByStatus[s]))
	}
	return components.PanelStyle.Width(24).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func weeklyActivity(d models.Dashboard) string {
	lines := []string{components.TitleStyle.Render("Hours this week")}
	peak := d.PeakHours()
	for _, day := range d.WeeklyActivity {
		n := 0
		if peak > 0 {
			n = int(day.Hours / peak * barWidth)
		}
		lines = append(lines, fmt.Sprintf("%-10s %s %.1f", day.Date, strings.Repeat("█", n), day.Hours))
	}
	if len(d.WeeklyActivity) == 0 {
		lines = append(lines, components.SubtleStyle.Render("No time logged"))
	}
	return components.PanelStyle.Width(barWidth + 24).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
