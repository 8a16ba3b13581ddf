package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/styles"
	"github.com/thenoetrevino/agency/internal/models"
)

// taskList renders as a table with one row per task
type taskList []models.Task

func (l taskList) Present(f *cli.OutputFormatter) error {
	ids := make([]int, len(l))
	rows := make([][]string, len(l))
	now := time.Now()
	for i, t := range l {
		ids[i] = t.GetID()
		rows[i] = []string{
			t.ID.String(),
			t.Title,
			styles.RenderStatus(t.Status),
			styles.RenderPriority(t.Priority),
			fmt.Sprintf("%d%%", t.Progress),
			orDash(t.AssigneeName()),
			dueLabel(t, now),
		}
	}
	return f.List([]models.Task(l), ids, []string{"ID", "TITLE", "STATUS", "PRIORITY", "PROGRESS", "ASSIGNEE", "DUE"}, rows)
}

// taskCard renders one task in detail
type taskCard struct {
	task    models.Task
	message string
}

func (c taskCard) Present(f *cli.OutputFormatter) error {
	if f.JSON || f.Quiet {
		return f.Success(c.task)
	}
	if c.message != "" {
		return f.Message(c.task, "%s", c.message)
	}
	return f.Message(c.task, "%s", renderCard(c.task, time.Now()))
}

func renderCard(t models.Task, now time.Time) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	b.WriteString("\n\n")

	lines := []string{
		styles.Field("Status", styles.RenderStatus(t.Status)),
		styles.Field("Priority", styles.RenderPriority(t.Priority)),
		styles.Field("Progress", fmt.Sprintf("%d%%", t.Progress)),
		styles.Field("Assignee", orDash(t.AssigneeName())),
		styles.Field("Due", dueLabel(t, now)),
		styles.Field("Logged", loggedLabel(t.LoggedMinutes())),
	}
	if t.TimerRunning() {
		lines = append(lines, styles.Field("Timer", "running since "+humanize.Time(t.ActiveTimerStart.Time)))
	}
	b.WriteString(strings.Join(lines, "\n"))

	if t.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.SubtitleStyle.Render(t.Description))
	}
	return styles.RenderCard(b.String())
}

func dueLabel(t models.Task, now time.Time) string {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return "-"
	}
	label := t.DueDate.Date()
	if t.Overdue(now) {
		return styles.ErrorStyle.Render(label + " overdue")
	}
	return label
}

func loggedLabel(minutes int) string {
	if minutes == 0 {
		return "-"
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
