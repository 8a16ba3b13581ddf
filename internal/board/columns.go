package board

import (
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/models"
)

// Column is one lane of the board
type Column struct {
	Status models.Status
	Tasks  []models.Task
}

// Title is the lane heading
func (c Column) Title() string {
	return c.Status.Title()
}

// Target is the drop target for the lane
func (c Column) Target() TargetID {
	return ColumnTarget(c.Status)
}

// Group partitions tasks into the four lanes, in lane order, keeping input
// order inside each lane. Tasks with an unknown status are left out.
func Group(tasks []models.Task) []Column {
	statuses := models.Statuses()
	cols := make([]Column, len(statuses))
	for i, s := range statuses {
		cols[i] = Column{Status: s}
	}
	for _, t := range tasks {
		if i := t.Status.Index(); i >= 0 {
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}

// Neighbor returns the lane delta steps away from s, clamped to the board.
// ok is false when there is no such lane.
func Neighbor(s models.Status, delta int) (models.Status, bool) {
	statuses := models.Statuses()
	i := s.Index()
	if i < 0 {
		return "", false
	}
	j := i + delta
	if j < 0 || j >= len(statuses) || j == i {
		return "", false
	}
	return statuses[j], true
}

// ApplyStatusPolicy builds the update for moving task to status. Moving to
// COMPLETED forces progress to 100; moving to ASSIGNED from progress 100
// resets it to 0. Every other transition leaves progress alone.
func ApplyStatusPolicy(task models.Task, status models.Status) api.TaskUpdate {
	update := api.TaskUpdate{Status: &status}

	switch {
	case status == models.StatusCompleted:
		full := 100
		update.Progress = &full
	case status == models.StatusAssigned && task.Progress == 100:
		zero := 0
		update.Progress = &zero
	}
	return update
}
