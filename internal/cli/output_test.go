package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/session"
)

// ============================================================================
// Test Helpers
// ============================================================================

type withID struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (w withID) GetID() int { return w.ID }

type named struct{ Name string }

func (n named) String() string { return "named:" + n.Name }

func newFormatter(jsonOut, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &OutputFormatter{JSON: jsonOut, Quiet: quiet, Out: &out, Err: &errOut}, &out, &errOut
}

func decode(t *testing.T, b *bytes.Buffer) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &result), "output: %s", b.String())
	return result
}

// ============================================================================
// Success
// ============================================================================

func TestSuccess_JSON(t *testing.T) {
	f, out, _ := newFormatter(true, false)

	require.NoError(t, f.Success(withID{ID: 42, Name: "Launch video"}))

	result := decode(t, out)
	assert.Equal(t, true, result["success"])
	data := result["data"].(map[string]any)
	assert.Equal(t, float64(42), data["id"])
	assert.Equal(t, "Launch video", data["name"])
}

func TestSuccess_JSONNilData(t *testing.T) {
	f, out, _ := newFormatter(true, false)

	require.NoError(t, f.Success(nil))

	result := decode(t, out)
	assert.Equal(t, true, result["success"])
	assert.Nil(t, result["data"])
}

func TestSuccess_QuietPrintsID(t *testing.T) {
	for _, data := range []any{withID{ID: 7}, &withID{ID: 7}} {
		f, out, _ := newFormatter(false, true)
		require.NoError(t, f.Success(data))
		assert.Equal(t, "7\n", out.String())
	}
}

func TestSuccess_QuietWinsOverJSON(t *testing.T) {
	f, out, _ := newFormatter(true, true)

	require.NoError(t, f.Success(withID{ID: 3}))
	assert.Equal(t, "3\n", out.String())
}

func TestSuccess_QuietWithoutIDFallsThrough(t *testing.T) {
	f, out, _ := newFormatter(false, true)

	require.NoError(t, f.Success(named{Name: "x"}))
	assert.Equal(t, "named:x\n", out.String())
}

func TestSuccess_HumanUsesStringer(t *testing.T) {
	f, out, _ := newFormatter(false, false)

	require.NoError(t, f.Success(named{Name: "board"}))
	assert.Equal(t, "named:board\n", out.String())

	out.Reset()
	require.NoError(t, f.Success(42))
	assert.Equal(t, "42\n", out.String())
}

// ============================================================================
// List & Message
// ============================================================================

func TestList(t *testing.T) {
	data := []withID{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	ids := []int{1, 2}
	headers := []string{"ID", "Name"}
	rows := [][]string{{"1", "a"}, {"2", "b"}}

	t.Run("quiet", func(t *testing.T) {
		f, out, _ := newFormatter(false, true)
		require.NoError(t, f.List(data, ids, headers, rows))
		assert.Equal(t, "1\n2\n", out.String())
	})

	t.Run("json", func(t *testing.T) {
		f, out, _ := newFormatter(true, false)
		require.NoError(t, f.List(data, ids, headers, rows))
		result := decode(t, out)
		assert.Len(t, result["data"], 2)
	})

	t.Run("table", func(t *testing.T) {
		f, out, _ := newFormatter(false, false)
		require.NoError(t, f.List(data, ids, headers, rows))
		assert.Contains(t, out.String(), "Name")
		assert.Contains(t, out.String(), "b")
	})

	t.Run("empty", func(t *testing.T) {
		f, out, _ := newFormatter(false, false)
		require.NoError(t, f.List(nil, nil, headers, nil))
		assert.Equal(t, "Nothing found\n", out.String())
	})
}

func TestMessage(t *testing.T) {
	f, out, _ := newFormatter(false, false)
	require.NoError(t, f.Message(withID{ID: 5}, "Moved task #%d", 5))
	assert.Equal(t, "Moved task #5\n", out.String())

	f, out, _ = newFormatter(false, true)
	require.NoError(t, f.Message(withID{ID: 5}, "Moved task #%d", 5))
	assert.Equal(t, "5\n", out.String())
}

// ============================================================================
// Errors
// ============================================================================

func TestErrorWithSuggestion_JSON(t *testing.T) {
	f, out, errOut := newFormatter(true, false)

	require.NoError(t, f.ErrorWithSuggestion("NOT_FOUND", "task 9 not found", "Run: agency task list"))

	result := decode(t, out)
	assert.Equal(t, false, result["success"])
	e := result["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", e["code"])
	assert.Equal(t, "task 9 not found", e["message"])
	assert.Equal(t, "Run: agency task list", e["suggestion"])
	assert.Empty(t, errOut.String())
}

func TestError_JSONOmitsSuggestion(t *testing.T) {
	f, out, _ := newFormatter(true, false)

	require.NoError(t, f.Error("CODE", "message"))

	e := decode(t, out)["error"].(map[string]any)
	_, exists := e["suggestion"]
	assert.False(t, exists)
}

func TestError_HumanGoesToStderr(t *testing.T) {
	f, out, errOut := newFormatter(false, false)

	require.NoError(t, f.ErrorWithSuggestion("X", "Timer already running", "Stop it first"))

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error: Timer already running")
	assert.Contains(t, errOut.String(), "Suggestion: Stop it first")
}

func TestFail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kinds    ErrorKinds
		wantCode string
		wantExit int
	}{
		{
			name:     "server rejection",
			err:      fmt.Errorf("failed to start timer: %w", &api.Error{StatusCode: http.StatusBadRequest, Detail: "Timer already running"}),
			wantCode: "VALIDATION_ERROR",
			wantExit: ExitValidation,
		},
		{
			name:     "unauthorized",
			err:      &api.Error{StatusCode: http.StatusUnauthorized, Detail: "Could not validate credentials"},
			wantCode: "NOT_AUTHENTICATED",
			wantExit: ExitAuth,
		},
		{
			name:     "expired token",
			err:      &api.Error{StatusCode: http.StatusForbidden, Detail: api.InvalidCredentials},
			wantCode: "NOT_AUTHENTICATED",
			wantExit: ExitAuth,
		},
		{
			name:     "anonymous session",
			err:      session.ErrAnonymous,
			wantCode: "NOT_AUTHENTICATED",
			wantExit: ExitAuth,
		},
		{
			name:     "forbidden",
			err:      &api.Error{StatusCode: http.StatusForbidden, Detail: "Managers only"},
			wantCode: "FORBIDDEN",
			wantExit: ExitAuth,
		},
		{
			name:     "command sentinel",
			err:      errTestMissing,
			kinds:    ErrorKinds{NotFound: []error{errTestMissing}},
			wantCode: "NOT_FOUND",
			wantExit: ExitNotFound,
		},
		{
			name:     "server failure",
			err:      &api.Error{StatusCode: http.StatusInternalServerError},
			wantCode: "API_ERROR",
			wantExit: ExitError,
		},
		{
			name:     "anything else",
			err:      errors.New("dial tcp: connection refused"),
			wantCode: "ERROR",
			wantExit: ExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, out, _ := newFormatter(true, false)

			err := f.Fail(tt.err, tt.kinds)

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantExit, ExitCode(err))
			assert.True(t, Reported(err))

			e := decode(t, out)["error"].(map[string]any)
			assert.Equal(t, tt.wantCode, e["code"])
			assert.Equal(t, api.Detail(tt.err), e["message"])
		})
	}
}

var errTestMissing = errors.New("venture not found")

func TestUsage(t *testing.T) {
	f, _, errOut := newFormatter(false, false)

	err := f.Usage(errors.New("--title is required"), "agency task create --title ...")

	assert.Equal(t, ExitUsage, ExitCode(err))
	assert.Contains(t, errOut.String(), "--title is required")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("plain")))
	assert.False(t, Reported(errors.New("plain")))
	assert.Equal(t, "exit status 4", (&ExitStatusError{Code: 4}).Error())
}
