package handler

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/agency/internal/models"
)

// ============================================================================
// Test Helpers
// ============================================================================

// createTestCommand creates a mock cobra.Command with specified flags
func createTestCommand() *cobra.Command {
	return &cobra.Command{
		Use: "test",
		Run: func(cmd *cobra.Command, args []string) {},
	}
}

// ============================================================================
// ParseID Tests
// ============================================================================

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flagValue int
		wantErr   bool
	}{
		{name: "valid ID", flagValue: 42},
		{name: "valid ID = 1", flagValue: 1},
		{name: "zero ID", flagValue: 0, wantErr: true},
		{name: "negative ID", flagValue: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := createTestCommand()
			cmd.Flags().Int("id", tt.flagValue, "task id")

			result, err := NewFlagParser(cmd).ParseID("id")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFlag)
				assert.Contains(t, err.Error(), "must be greater than 0")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.flagValue, result)
		})
	}
}

func TestParseIDArg(t *testing.T) {
	t.Parallel()

	id, err := ParseIDArg(" 17 ")
	require.NoError(t, err)
	assert.Equal(t, 17, id)

	for _, bad := range []string{"", "abc", "0", "-4"} {
		_, err := ParseIDArg(bad)
		assert.ErrorIs(t, err, ErrInvalidFlag, "input %q", bad)
	}
}

// ============================================================================
// ParseString Tests
// ============================================================================

func TestParseString(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	cmd.Flags().String("title", "  Launch video  ", "")
	cmd.Flags().String("empty", "   ", "")

	p := NewFlagParser(cmd)

	got, err := p.ParseString("title")
	require.NoError(t, err)
	assert.Equal(t, "Launch video", got)

	_, err = p.ParseString("empty")
	assert.ErrorIs(t, err, ErrInvalidFlag)
	assert.Contains(t, err.Error(), "empty is required")
}

func TestParseString_NonExistentFlag(t *testing.T) {
	t.Parallel()

	_, err := NewFlagParser(createTestCommand()).ParseString("missing")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidFlag), "a missing definition is a programming error, not bad input")
}

// ============================================================================
// Enum Tests
// ============================================================================

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want models.Status
	}{
		{"todo", models.StatusAssigned},
		{"To Do", models.StatusAssigned},
		{"in-progress", models.StatusInProgress},
		{"REVIEW", models.StatusReview},
		{"done", models.StatusCompleted},
		{"COMPLETED", models.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			cmd := createTestCommand()
			cmd.Flags().String("status", tt.raw, "")

			got, err := NewFlagParser(cmd).ParseStatus("status")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStatusArg("archived")
	assert.ErrorIs(t, err, ErrInvalidFlag)
	assert.Contains(t, err.Error(), "must be: todo, in-progress, review, done")
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	cmd.Flags().String("priority", "", "")
	p := NewFlagParser(cmd)

	got, err := p.ParsePriority("priority")
	require.NoError(t, err)
	assert.Empty(t, got, "unset priority stays empty")

	require.NoError(t, cmd.Flags().Set("priority", "high"))
	got, err = p.ParsePriority("priority")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, got)

	require.NoError(t, cmd.Flags().Set("priority", "critical"))
	_, err = p.ParsePriority("priority")
	assert.ErrorIs(t, err, ErrInvalidFlag)
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	cmd.Flags().String("role", "manager", "")
	p := NewFlagParser(cmd)

	got, err := p.ParseRole("role")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, got)

	require.NoError(t, cmd.Flags().Set("role", "intern"))
	_, err = p.ParseRole("role")
	assert.ErrorIs(t, err, ErrInvalidFlag)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	cmd := createTestCommand()
	cmd.Flags().String("from", "2026-11-20", "")
	cmd.Flags().String("to", "20/11/2026", "")
	p := NewFlagParser(cmd)

	d, err := p.ParseDate("from")
	require.NoError(t, err)
	assert.Equal(t, "2026-11-20", d.Format("2006-01-02"))

	_, err = p.ParseDate("to")
	assert.ErrorIs(t, err, ErrInvalidFlag)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

// ============================================================================
// OutputFormats Tests
// ============================================================================

func TestOutputFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		jsonFlag  bool
		quietFlag bool
	}{
		{"both false", false, false},
		{"json only", true, false},
		{"quiet only", false, true},
		{"both true", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := createTestCommand()
			cmd.Flags().Bool("json", tt.jsonFlag, "")
			cmd.Flags().Bool("quiet", tt.quietFlag, "")

			jsonOut, quiet, err := NewFlagParser(cmd).OutputFormats()
			require.NoError(t, err)
			assert.Equal(t, tt.jsonFlag, jsonOut)
			assert.Equal(t, tt.quietFlag, quiet)
		})
	}
}

func TestOutputFormats_MissingFlags(t *testing.T) {
	t.Parallel()

	_, _, err := NewFlagParser(createTestCommand()).OutputFormats()
	assert.Error(t, err)
}
