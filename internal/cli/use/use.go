// Package use holds all cli commands related to setting contextual information
// e.g., agency use ...
package use

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli/handler"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings for the current shell",
		Long: `Set contextual information for the current shell session.

Available contexts:
  - api: Point this shell at another CMS backend

Examples:
  eval $(agency use api http://localhost:8000/api/v1)
  eval $(agency use api --clear)
  agency use api --show`,
		Annotations: map[string]string{handler.SkipInit: "true"},
	}

	cmd.AddCommand(APICmd())

	return cmd
}

// APICmd returns the use api subcommand
func APICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api [url]",
		Short: "Set the API address for the current shell session",
		Long: `Set the API address using an environment variable.
This command outputs shell commands that should be evaluated:

  eval $(agency use api https://cms.example.com/api/v1)
  eval $(agency use api --clear)
  agency use api --show

AGENCY_API_URL overrides the config file for this shell only. Stored
tokens are kept per API address, so switching back restores the session.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{handler.SkipInit: "true"},
		RunE:        runUseAPI,
	}

	cmd.Flags().Bool("clear", false, "Clear the API override")
	cmd.Flags().Bool("show", false, "Show the current API override")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseAPI(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	// Handle --show flag
	if showFlag {
		if current := os.Getenv("AGENCY_API_URL"); current != "" {
			fmt.Fprintf(out, "Current API: %s\n", current)
			return nil
		}
		fmt.Fprintln(out, "No API override set")
		fmt.Fprintln(out, "Use 'eval $(agency use api <url>)' to set one")
		return nil
	}

	// Handle --clear flag
	if clearFlag {
		if dryRun {
			fmt.Fprintln(errOut, "Would clear AGENCY_API_URL")
			return nil
		}
		fmt.Fprintln(out, "unset AGENCY_API_URL")
		fmt.Fprintln(errOut, "Cleared API override")
		return nil
	}

	formatter := handler.Formatter(cmd)
	if len(args) == 0 {
		return formatter.Usage(fmt.Errorf("API URL required"), "Usage: eval $(agency use api <url>)")
	}

	raw := strings.TrimRight(strings.TrimSpace(args[0]), "/")
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return formatter.Fail(fmt.Errorf("%w: %q is not an http(s) URL", handler.ErrInvalidFlag, raw), handler.Kinds())
	}

	if dryRun {
		fmt.Fprintf(errOut, "Would set AGENCY_API_URL=%s\n", raw)
		return nil
	}

	fmt.Fprintf(out, "export AGENCY_API_URL=%q\n", raw)
	fmt.Fprintf(errOut, "Now using %s\n", raw)
	return nil
}
