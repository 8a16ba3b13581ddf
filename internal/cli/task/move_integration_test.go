package task

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/fakeapi"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/testutil"
	clitest "github.com/thenoetrevino/agency/internal/testutil/cli"
)

func assignedTask(title string, status models.Status) models.Task {
	id := fakeapi.EmployeeID
	return models.Task{Title: title, Status: status, AssignedToID: &id}
}

func TestMove_NextAndPrev(t *testing.T) {
	backend, c := clitest.SetupCLITest(t, fakeapi.EmployeeEmpID)
	task := backend.Fake.SeedTask(assignedTask("Edit", models.StatusAssigned))
	id := task.ID.String()

	output, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), []string{"--id", id, "next"})
	require.NoError(t, err)
	assert.Contains(t, output, "moved from 'To Do' to 'In Progress'")

	_, err = clitest.ExecuteCLICommand(t, c, MoveCmd(), []string{"--id", id, "prev"})
	require.NoError(t, err)

	stored, _ := backend.Fake.Task(task.ID)
	assert.Equal(t, models.StatusAssigned, stored.Status)
}

func TestMove_ByName(t *testing.T) {
	backend, c := clitest.SetupCLITest(t, fakeapi.EmployeeEmpID)
	task := backend.Fake.SeedTask(assignedTask("Edit", models.StatusAssigned))

	output, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), []string{"--id", task.ID.String(), "In Progress", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, task.ID.String(), strings.TrimSpace(output))
}

func TestMove_Errors(t *testing.T) {
	backend, c := clitest.SetupCLITest(t, fakeapi.EmployeeEmpID)
	task := backend.Fake.SeedTask(assignedTask("Edit", models.StatusAssigned))
	id := task.ID.String()

	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantCode string
	}{
		{"no lane before To Do", []string{"--id", id, "prev"}, cli.ExitValidation, "VALIDATION_ERROR"},
		{"unknown status", []string{"--id", id, "archived"}, cli.ExitValidation, "VALIDATION_ERROR"},
		{"already there", []string{"--id", id, "todo"}, cli.ExitValidation, "VALIDATION_ERROR"},
		{"unknown task", []string{"--id", "404", "next"}, cli.ExitNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), append(tt.args, "--json"))
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, cli.ExitCode(err))

			result := testutil.ParseJSON(t, output)
			assert.Equal(t, false, result["success"])
			assert.Equal(t, tt.wantCode, result["error"].(map[string]any)["code"])
		})
	}
	assert.Equal(t, 0, backend.Fake.Calls("PUT /tasks/{id}"))
}

func TestMove_ServerRejectionShowsDetail(t *testing.T) {
	backend, c := clitest.SetupCLITest(t, fakeapi.EmployeeEmpID)
	task := backend.Fake.SeedTask(assignedTask("Edit", models.StatusAssigned))
	backend.Fake.FailNext("PUT /tasks/{id}", http.StatusBadRequest, "Task is locked")

	output, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), []string{"--id", task.ID.String(), "next", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	assert.Equal(t, "Task is locked", testutil.ParseJSON(t, output)["error"].(map[string]any)["message"])
}

func TestMove_RequiresLogin(t *testing.T) {
	backend, c := clitest.SetupCLITest(t, "")
	task := backend.Fake.SeedTask(models.Task{Title: "x"})

	_, err := clitest.ExecuteCLICommand(t, c, MoveCmd(), []string{"--id", task.ID.String(), "next", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitAuth, cli.ExitCode(err))
}
