package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/announcement"
	"github.com/thenoetrevino/agency/internal/cli/auth"
	"github.com/thenoetrevino/agency/internal/cli/dashboard"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/cli/leave"
	"github.com/thenoetrevino/agency/internal/cli/setup"
	"github.com/thenoetrevino/agency/internal/cli/styles"
	"github.com/thenoetrevino/agency/internal/cli/task"
	"github.com/thenoetrevino/agency/internal/cli/tutorial"
	"github.com/thenoetrevino/agency/internal/cli/use"
	"github.com/thenoetrevino/agency/internal/cli/user"
	"github.com/thenoetrevino/agency/internal/cli/venture"
	"github.com/thenoetrevino/agency/internal/config"
	"github.com/thenoetrevino/agency/internal/launcher"
	"github.com/thenoetrevino/agency/internal/logging"
)

// state shared between the pre-run hook and Execute
var (
	active  *cli.CLI
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "agency",
	Short: "Agency - the CMS client for tasks, leaves and announcements",
	Long: `Agency is a terminal client for the agency CMS.

Run without arguments to open the board; use the subcommands to script
against the same API.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initCLI,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return launcher.Launch(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("quiet", false, "Minimal output (IDs only)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level to ~/.agency/logs/agency.log")

	rootCmd.AddCommand(auth.LoginCmd())
	rootCmd.AddCommand(auth.LogoutCmd())
	rootCmd.AddCommand(auth.WhoamiCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(announcement.AnnouncementCmd())
	rootCmd.AddCommand(user.UserCmd())
	rootCmd.AddCommand(venture.VentureCmd())
	rootCmd.AddCommand(leave.LeaveCmd())
	rootCmd.AddCommand(leave.HolidayCmd())
	rootCmd.AddCommand(dashboard.DashboardCmd())
	rootCmd.AddCommand(setup.SetupCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())
}

// initCLI opens the app for every subcommand that talks to the API
func initCLI(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	closer, err := logging.Init(debug)
	if err != nil {
		logging.Discard()
	} else {
		logFile = closer
	}

	if cmd == rootCmd || skipsInit(cmd) {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return handler.Formatter(cmd).Fail(err, handler.Kinds())
	}
	styles.Init(cfg.ColorScheme)

	c, err := cli.NewCLI(cmd.Context(), cfg)
	if err != nil {
		return handler.Formatter(cmd).Fail(err, handler.Kinds())
	}
	active = c
	cmd.SetContext(cli.WithCLI(cmd.Context(), c))
	return nil
}

func skipsInit(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[handler.SkipInit] == "true" {
			return true
		}
	}
	return false
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)

	if active != nil {
		if cerr := active.Close(); cerr != nil {
			slog.Error("failed to close CLI", "error", cerr)
		}
	}
	if logFile != nil {
		_ = logFile.Close()
	}

	if err != nil && !cli.Reported(err) {
		// cobra usage errors (unknown flags, missing required flags)
		_ = handler.Formatter(rootCmd).Usage(err, "Run with --help for usage")
		return cli.ExitUsage
	}
	return cli.ExitCode(err)
}
