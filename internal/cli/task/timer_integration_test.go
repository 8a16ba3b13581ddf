package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/fakeapi"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/testutil"
	clitest "github.com/thenoetrevino/agency/internal/testutil/cli"
)

func TestTimer_StartStop(t *testing.T) {
	backend, c := clitest.SetupCLITest(t, fakeapi.EmployeeEmpID)
	task := backend.Fake.SeedTask(assignedTask("Edit", models.StatusInProgress))
	id := task.ID.String()

	output, err := clitest.ExecuteCLICommand(t, c, timerCmd("start", "", runTimerStart), []string{"--id", id})
	require.NoError(t, err)
	assert.Contains(t, output, "Timer started on task "+id)

	output, err = clitest.ExecuteCLICommand(t, c, timerCmd("start", "", runTimerStart), []string{"--id", id, "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	assert.Equal(t, "Timer already running", testutil.ParseJSON(t, output)["error"].(map[string]any)["message"])

	output, err = clitest.ExecuteCLICommand(t, c, timerCmd("stop", "", runTimerStop), []string{"--id", id})
	require.NoError(t, err)
	assert.Contains(t, output, "Timer stopped on task "+id)
}

func TestProgress(t *testing.T) {
	backend, c := clitest.SetupCLITest(t, fakeapi.EmployeeEmpID)
	task := backend.Fake.SeedTask(assignedTask("Edit", models.StatusInProgress))
	id := task.ID.String()

	output, err := clitest.ExecuteCLICommand(t, c, ProgressCmd(), []string{"--id", id, "--value", "40"})
	require.NoError(t, err)
	assert.Contains(t, output, "is 40% done")

	_, err = clitest.ExecuteCLICommand(t, c, ProgressCmd(), []string{"--id", id, "--value", "140", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))

	stored, _ := backend.Fake.Task(task.ID)
	assert.Equal(t, 40, stored.Progress)
}
