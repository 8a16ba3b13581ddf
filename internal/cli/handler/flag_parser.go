// Package handler provides flag parsing utilities
package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/models"
)

// ErrInvalidFlag wraps every flag value the parser rejects
var ErrInvalidFlag = errors.New("invalid flag value")

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseID extracts a positive resource ID from an int flag
func (p *FlagParser) ParseID(flagName string) (int, error) {
	id, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %s must be greater than 0", ErrInvalidFlag, flagName)
	}
	return id, nil
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidFlag, flagName)
	}
	return value, nil
}

// ParseStatus extracts a task status. Lane titles ("done") and wire names
// ("COMPLETED") are both accepted.
func (p *FlagParser) ParseStatus(flagName string) (models.Status, error) {
	raw, err := p.ParseString(flagName)
	if err != nil {
		return "", err
	}
	return ParseStatusArg(raw)
}

// ParseStatusArg parses a status given positionally
func ParseStatusArg(raw string) (models.Status, error) {
	s, err := models.ParseStatus(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v (must be: todo, in-progress, review, done)", ErrInvalidFlag, err)
	}
	return s, nil
}

// ParsePriority extracts an optional priority; empty means unset
func (p *FlagParser) ParsePriority(flagName string) (models.Priority, error) {
	raw, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	pr, err := models.ParsePriority(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v (must be: low, medium, high, urgent)", ErrInvalidFlag, err)
	}
	return pr, nil
}

// ParseRole extracts an optional role; empty means unset
func (p *FlagParser) ParseRole(flagName string) (models.Role, error) {
	raw, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	r, err := models.ParseRole(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v (must be: admin, manager, employee)", ErrInvalidFlag, err)
	}
	return r, nil
}

// ParseDate extracts a required YYYY-MM-DD flag
func (p *FlagParser) ParseDate(flagName string) (time.Time, error) {
	raw, err := p.ParseString(flagName)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD, got %q", ErrInvalidFlag, flagName, raw)
	}
	return d, nil
}

// ParseIDArg parses a positional resource ID
func ParseIDArg(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid ID", ErrInvalidFlag, raw)
	}
	return id, nil
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}
