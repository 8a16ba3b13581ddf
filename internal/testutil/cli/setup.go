// Package cli holds helpers for command tests. It is separate from
// testutil so service tests do not import the CLI.
package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/testutil"
	"github.com/thenoetrevino/agency/internal/testutil/apptest"
)

// SetupCLITest starts a fake CMS and returns a CLI logged in as empID.
// An empty empID leaves the CLI anonymous.
func SetupCLITest(t *testing.T, empID string) (*testutil.Backend, *cli.CLI) {
	t.Helper()
	backend := testutil.NewBackend(t)
	return backend, &cli.CLI{App: apptest.NewApp(t, backend, empID)}
}

// ExecuteCLICommand runs cmd with args against c and returns what it
// printed to stdout
func ExecuteCLICommand(t *testing.T, c *cli.CLI, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	ctx := cli.WithCLI(context.Background(), c)

	// Output flags live on the root command; tests run subcommands directly
	if cmd.Flags().Lookup("json") == nil {
		cmd.Flags().Bool("json", false, "")
	}
	if cmd.Flags().Lookup("quiet") == nil {
		cmd.Flags().Bool("quiet", false, "")
	}

	testutil.SetupCobraCommand(cmd, args)
	cmd.SetContext(ctx)

	output, _, err := testutil.ExecuteCommand(t, cmd)
	return output, err
}
