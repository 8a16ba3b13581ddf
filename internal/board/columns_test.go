package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/models"
)

func TestGroup(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Status: models.StatusReview},
		{ID: 2, Status: models.StatusAssigned},
		{ID: 3, Status: models.StatusReview},
		{ID: 4, Status: "ARCHIVED"},
	}

	cols := Group(tasks)
	require.Len(t, cols, 4)

	assert.Equal(t, "To Do", cols[0].Title())
	assert.Equal(t, "Done", cols[3].Title())
	assert.Equal(t, ColumnTarget(models.StatusInProgress), cols[1].Target())

	require.Len(t, cols[2].Tasks, 2)
	assert.Equal(t, 1, int(cols[2].Tasks[0].ID), "input order kept within a lane")
	assert.Equal(t, 3, int(cols[2].Tasks[1].ID))
	assert.Len(t, cols[0].Tasks, 1)
	assert.Empty(t, cols[1].Tasks)
}

func TestNeighbor(t *testing.T) {
	s, ok := Neighbor(models.StatusAssigned, 1)
	require.True(t, ok)
	assert.Equal(t, models.StatusInProgress, s)

	_, ok = Neighbor(models.StatusAssigned, -1)
	assert.False(t, ok)

	_, ok = Neighbor(models.StatusCompleted, 1)
	assert.False(t, ok)

	_, ok = Neighbor("NOPE", 1)
	assert.False(t, ok)
}

func TestApplyStatusPolicy(t *testing.T) {
	tests := []struct {
		name         string
		progress     int
		to           models.Status
		wantProgress *int
	}{
		{"to completed forces 100", 30, models.StatusCompleted, intPtr(100)},
		{"completed back to assigned resets", 100, models.StatusAssigned, intPtr(0)},
		{"assigned with partial progress keeps it", 60, models.StatusAssigned, nil},
		{"completed to in progress keeps 100", 100, models.StatusInProgress, nil},
		{"completed to review keeps 100", 100, models.StatusReview, nil},
		{"plain move keeps progress", 20, models.StatusReview, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update := ApplyStatusPolicy(models.Task{ID: 7, Progress: tt.progress}, tt.to)

			require.NotNil(t, update.Status)
			assert.Equal(t, tt.to, *update.Status)
			if tt.wantProgress == nil {
				assert.Nil(t, update.Progress)
				return
			}
			require.NotNil(t, update.Progress)
			assert.Equal(t, *tt.wantProgress, *update.Progress)
		})
	}
}

func intPtr(v int) *int { return &v }
