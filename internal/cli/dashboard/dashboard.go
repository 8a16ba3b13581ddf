// Package dashboard holds the analytics summary command
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/cli/styles"
	"github.com/thenoetrevino/agency/internal/models"
)

// barWidth is the length of the longest weekly activity bar
const barWidth = 30

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show task counts, logged hours and weekly activity",
		RunE:  handler.Command(handler.HandlerFunc(runDashboard), cli.ErrorKinds{}),
	}
}

type summary models.Dashboard

func (s summary) Present(f *cli.OutputFormatter) error {
	if f.JSON || f.Quiet {
		return f.Envelope(models.Dashboard(s))
	}
	return f.Message(nil, "%s", Render(models.Dashboard(s)))
}

// Render formats the dashboard as a card followed by a bar chart
func Render(d models.Dashboard) string {
	var b strings.Builder

	lines := []string{
		styles.Field("Tasks", fmt.Sprintf("%s total, %s completed (%s%%)",
			humanize.Comma(int64(d.TotalTasks)), humanize.Comma(int64(d.TasksCompleted)),
			humanize.FtoaWithDigits(d.CompletionRate, 1))),
		styles.Field("Hours logged", humanize.FtoaWithDigits(d.TotalHoursLogged, 2)),
		styles.Field("Active timers", fmt.Sprintf("%d", d.ActiveTimers)),
	}
	for _, st := range models.Statuses() {
		lines = append(lines, styles.Field("  "+st.Title(), fmt.Sprintf("%d", d.TasksByStatus[st])))
	}
	b.WriteString(styles.RenderCard(styles.TitleStyle.Render("Dashboard") + "\n\n" + strings.Join(lines, "\n")))

	if len(d.WeeklyActivity) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render("Hours logged, last 7 days"))
		b.WriteString("\n")
		peak := d.PeakHours()
		for _, day := range d.WeeklyActivity {
			n := 0
			if peak > 0 {
				n = int(day.Hours / peak * barWidth)
			}
			fmt.Fprintf(&b, "%s %s %s\n", day.Date, styles.LabelStyle.Render(strings.Repeat("█", n)),
				humanize.FtoaWithDigits(day.Hours, 2))
		}
	}
	return b.String()
}

func runDashboard(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	d, err := c.App.AnalyticsService.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return summary(d), nil
}
