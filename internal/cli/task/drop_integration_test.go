package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/fakeapi"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/testutil"
	clitest "github.com/thenoetrevino/agency/internal/testutil/cli"
)

func TestDrop_OntoLane(t *testing.T) {
	backend, c := clitest.SetupCLITest(t, fakeapi.EmployeeEmpID)
	task := backend.Fake.SeedTask(assignedTask("Shoot B-roll", models.StatusAssigned))

	output, err := clitest.ExecuteCLICommand(t, c, DropCmd(), []string{"--id", task.ID.String(), "--onto", "review", "--json"})
	require.NoError(t, err)

	result := testutil.ParseJSON(t, output)
	data := result["data"].(map[string]any)
	assert.Equal(t, true, data["moved"])
	assert.Equal(t, "REVIEW", data["status"])

	stored, _ := backend.Fake.Task(task.ID)
	assert.Equal(t, models.StatusReview, stored.Status)
}

func TestDrop_OntoTaskTakesItsLane(t *testing.T) {
	backend, c := clitest.SetupCLITest(t, fakeapi.EmployeeEmpID)
	held := backend.Fake.SeedTask(assignedTask("a", models.StatusAssigned))
	target := backend.Fake.SeedTask(assignedTask("b", models.StatusCompleted))

	output, err := clitest.ExecuteCLICommand(t, c, DropCmd(), []string{"--id", held.ID.String(), "--onto", target.ID.String()})
	require.NoError(t, err)
	assert.Contains(t, output, "dropped into 'Done'")

	stored, _ := backend.Fake.Task(held.ID)
	assert.Equal(t, models.StatusCompleted, stored.Status)
	assert.Equal(t, 100, stored.Progress)
}

func TestDrop_NoOpsMakeNoRequest(t *testing.T) {
	backend, c := clitest.SetupCLITest(t, fakeapi.EmployeeEmpID)
	task := backend.Fake.SeedTask(assignedTask("a", models.StatusReview))

	tests := []struct {
		name string
		args []string
	}{
		{"same lane", []string{"--onto", "review"}},
		{"onto itself", []string{"--onto", task.ID.String()}},
		{"unknown target", []string{"--onto", "9999"}},
		{"no target", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--id", task.ID.String(), "--json"}, tt.args...)
			output, err := clitest.ExecuteCLICommand(t, c, DropCmd(), args)
			require.NoError(t, err)

			data := testutil.ParseJSON(t, output)["data"].(map[string]any)
			assert.Equal(t, false, data["moved"])
			assert.NotEmpty(t, data["reason"])
		})
	}
	assert.Equal(t, 0, backend.Fake.Calls("PUT /tasks/{id}"))
}
