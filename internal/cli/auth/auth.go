// Package auth holds the login, logout and whoami commands
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/cli/styles"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/session"
)

var (
	errNoPassword    = errors.New("no password given")
	errLoginRejected = errors.New("login rejected")
)

var errorKinds = cli.ErrorKinds{
	Auth:       []error{session.ErrAnonymous, errLoginRejected},
	Validation: []error{errNoPassword},
}

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the CMS",
		Long: `Log in with your employee ID. The token is stored in ~/.agency/agency.db
and reused until it expires or you log out.

Without --password the password is read from the terminal, or from the
first line of stdin when stdin is not a terminal.

Examples:
  agency login --emp-id EMP001
  echo "$PASSWORD" | agency login --emp-id EMP001`,
		RunE: handler.Command(handler.HandlerFunc(runLogin), errorKinds),
	}

	cmd.Flags().String("emp-id", "", "Employee ID (required)")
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	if err := cmd.MarkFlagRequired("emp-id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	return cmd
}

func runLogin(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	empID, err := handler.NewFlagParser(args.GetCmd()).ParseString("emp-id")
	if err != nil {
		return nil, err
	}

	password := args.GetString("password", "")
	if password == "" {
		password, err = readPassword(args.GetCmd().InOrStdin())
		if err != nil {
			return nil, err
		}
	}

	user, err := c.App.Session.Login(ctx, empID, password)
	if err != nil {
		if api.StatusCode(err) == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %w", errLoginRejected, err)
		}
		return nil, err
	}
	return profile{user: *user, message: fmt.Sprintf("Logged in as %s (%s)", user.FullName, user.Role)}, nil
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE:  handler.Command(handler.HandlerFunc(runLogout), errorKinds),
	}
}

type loggedOut struct {
	LoggedOut bool `json:"logged_out"`
}

func (l loggedOut) Present(f *cli.OutputFormatter) error {
	if f.Quiet {
		return nil
	}
	return f.Message(l, "Logged out")
}

func runLogout(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	if err := c.App.Session.Logout(ctx); err != nil {
		return nil, err
	}
	return loggedOut{LoggedOut: true}, nil
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE:  handler.Command(handler.HandlerFunc(runWhoami), errorKinds),
	}
}

func runWhoami(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	user := c.App.Session.User()
	if user == nil {
		return nil, session.ErrAnonymous
	}
	return profile{user: *user}, nil
}

// profile renders a user card
type profile struct {
	user    models.User
	message string
}

func (p profile) Present(f *cli.OutputFormatter) error {
	if f.JSON || f.Quiet {
		return f.Success(p.user)
	}
	if p.message != "" {
		return f.Message(p.user, "%s", p.message)
	}

	venture := "-"
	if p.user.VentureID != nil {
		venture = p.user.VentureID.String()
	}
	card := styles.TitleStyle.Render(p.user.FullName) + "\n\n" +
		styles.Field("Employee ID", p.user.EmpID) + "\n" +
		styles.Field("Role", string(p.user.Role)) + "\n" +
		styles.Field("Venture", venture)
	return f.Message(p.user, "%s", styles.RenderCard(card))
}
