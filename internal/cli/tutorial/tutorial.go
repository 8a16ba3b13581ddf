package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli/handler"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Output scripting workflow context",
		Long: `Output the agency command workflow in markdown, for scripts and
automation that drive the CLI with --json.`,
		Annotations: map[string]string{handler.SkipInit: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), tutorialContent)
		},
	}
	return cmd
}
