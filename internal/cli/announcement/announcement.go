// Package announcement holds the announcement commands
package announcement

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	annservice "github.com/thenoetrevino/agency/internal/services/announcement"
)

// AnnouncementCmd returns the announcement parent command
func AnnouncementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "announcement",
		Aliases: []string{"ann"},
		Short:   "Read, post and acknowledge announcements",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(AckCmd())

	return cmd
}

var errorKinds = cli.ErrorKinds{
	Auth:       []error{annservice.ErrNotLoggedIn},
	Validation: []error{annservice.ErrEmptyTitle, annservice.ErrEmptyContent, annservice.ErrAlreadyAcknowledged},
	NotFound:   []error{errNotFound},
	Permission: []error{annservice.ErrNotPermitted},
}
