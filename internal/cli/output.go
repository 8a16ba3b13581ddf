package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/cli/styles"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	// Out and Err default to os.Stdout and os.Stderr at write time
	Out io.Writer
	Err io.Writer
}

func (f *OutputFormatter) stdout() io.Writer {
	if f.Out != nil {
		return f.Out
	}
	return os.Stdout
}

func (f *OutputFormatter) stderr() io.Writer {
	if f.Err != nil {
		return f.Err
	}
	return os.Stderr
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			_, err := fmt.Fprintf(f.stdout(), "%d\n", idGetter.GetID())
			return err
		}
	}

	if f.JSON {
		return f.Envelope(data)
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Envelope writes {"success": true, "data": data}
func (f *OutputFormatter) Envelope(data any) error {
	return json.NewEncoder(f.stdout()).Encode(map[string]any{
		"success": true,
		"data":    data,
	})
}

// List prints ids in quiet mode, the envelope in JSON mode and a table
// otherwise. ids and rows are parallel.
func (f *OutputFormatter) List(data any, ids []int, headers []string, rows [][]string) error {
	switch {
	case f.Quiet:
		for _, id := range ids {
			if _, err := fmt.Fprintf(f.stdout(), "%d\n", id); err != nil {
				return err
			}
		}
		return nil
	case f.JSON:
		return f.Envelope(data)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(f.stdout(), "Nothing found")
		return err
	}
	return f.Table(headers, rows)
}

// Table renders rows as a bordered table
func (f *OutputFormatter) Table(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.SubtitleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.LabelStyle.Padding(0, 1)
			}
			return styles.ValueStyle.Padding(0, 1)
		})
	_, err := fmt.Fprintln(f.stdout(), t.String())
	return err
}

// Message prints a one-line confirmation in human mode, the envelope in
// JSON mode and the ID in quiet mode
func (f *OutputFormatter) Message(data any, format string, args ...any) error {
	if f.JSON || f.Quiet {
		return f.Success(data)
	}
	_, err := fmt.Fprintf(f.stdout(), format+"\n", args...)
	return err
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.stdout()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(f.stderr(), "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.stderr(), "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err and returns it wrapped in an ExitStatusError with the matching
// exit status. The server's detail text is shown verbatim.
func (f *OutputFormatter) Fail(err error, kinds ErrorKinds) error {
	code, exit, suggestion := Classify(err, kinds)
	_ = f.ErrorWithSuggestion(code, api.Detail(err), suggestion)
	return &ExitStatusError{Code: exit, Err: err}
}

// Usage reports a usage problem and returns an ExitStatusError with ExitUsage
func (f *OutputFormatter) Usage(err error, suggestion string) error {
	_ = f.ErrorWithSuggestion("USAGE_ERROR", err.Error(), suggestion)
	return &ExitStatusError{Code: ExitUsage, Err: err}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	if s, ok := data.(fmt.Stringer); ok {
		_, err := fmt.Fprintln(f.stdout(), s.String())
		return err
	}
	_, err := fmt.Fprintf(f.stdout(), "%+v\n", data)
	return err
}
