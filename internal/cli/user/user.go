// Package user holds the user administration commands
package user

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/models"
	userservice "github.com/thenoetrevino/agency/internal/services/user"
	"github.com/thenoetrevino/agency/internal/types"
)

var errorKinds = cli.ErrorKinds{
	Validation: []error{
		userservice.ErrEmptyEmpID,
		userservice.ErrEmptyName,
		userservice.ErrEmptyPassword,
		userservice.ErrInvalidRole,
		userservice.ErrNothingToSave,
	},
	Permission: []error{
		userservice.ErrNotPermitted,
		userservice.ErrCannotCreateAdmin,
		userservice.ErrCannotEditAdmin,
		userservice.ErrCannotPromote,
		userservice.ErrOtherVenture,
	},
}

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users (managers and admins)",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())

	return cmd
}

// ListCmd returns the user list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users. Managers only see their own venture.",
		RunE:  handler.Command(handler.HandlerFunc(runList), errorKinds),
	}
	cmd.Flags().String("role", "", "Only show this role (admin, manager, employee)")
	return cmd
}

type userList struct {
	users    []models.User
	ventures func(*types.VentureID) string
}

func (l userList) Present(f *cli.OutputFormatter) error {
	ids := make([]int, len(l.users))
	rows := make([][]string, len(l.users))
	for i, u := range l.users {
		ids[i] = u.GetID()
		active := "yes"
		if !u.IsActive {
			active = "no"
		}
		rows[i] = []string{u.ID.String(), u.EmpID, u.FullName, string(u.Role), l.ventures(u.VentureID), active}
	}
	return f.List(l.users, ids, []string{"ID", "EMP ID", "NAME", "ROLE", "VENTURE", "ACTIVE"}, rows)
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	role, err := handler.NewFlagParser(args.GetCmd()).ParseRole("role")
	if err != nil {
		return nil, err
	}

	users, err := c.App.UserService.List(ctx)
	if err != nil {
		return nil, err
	}
	if role != "" {
		users = userservice.Filter(users, role)
	}

	return userList{
		users: users,
		ventures: func(id *types.VentureID) string {
			return c.App.VentureService.Name(ctx, id)
		},
	}, nil
}

// CreateCmd returns the user create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long: `Create a user. Managers can only create employees and managers in their
own venture; the venture defaults to theirs.

Examples:
  agency user create --emp-id EMP042 --name "Sam Doe" --password changeme
  agency user create --emp-id MGR007 --name "Kim Lee" --password pw --role manager --venture 2`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), errorKinds),
	}

	cmd.Flags().String("emp-id", "", "Employee ID (required)")
	cmd.Flags().String("name", "", "Full name (required)")
	cmd.Flags().String("password", "", "Initial password (required)")
	cmd.Flags().String("role", "", "Role: admin, manager, employee (default employee)")
	cmd.Flags().Int("venture", 0, "Venture ID")
	cmd.Flags().Bool("inactive", false, "Create the account disabled")
	for _, name := range []string{"emp-id", "name", "password"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "error", err)
		}
	}

	return cmd
}

type savedUser struct {
	user models.User
	verb string
}

func (s savedUser) Present(f *cli.OutputFormatter) error {
	return f.Message(s.user, "%s user %d (%s, %s)", s.verb, s.user.ID, s.user.FullName, s.user.Role)
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	role, err := handler.NewFlagParser(args.GetCmd()).ParseRole("role")
	if err != nil {
		return nil, err
	}

	req := userservice.CreateUserRequest{
		EmpID:    args.GetString("emp-id", ""),
		FullName: args.GetString("name", ""),
		Password: args.GetString("password", ""),
		Role:     role,
		Inactive: args.GetBool("inactive"),
	}
	if args.Has("venture") {
		v := types.VentureID(args.GetInt("venture", 0))
		req.VentureID = &v
	}

	created, err := c.App.UserService.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return savedUser{user: *created, verb: "Created"}, nil
}

// UpdateCmd returns the user update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a user; only the given flags change",
		Long: `Update a user. Only the flags you pass are sent.

Examples:
  agency user update --id 7 --role manager
  agency user update --id 7 --active=false`,
		RunE: handler.Command(handler.HandlerFunc(runUpdate), errorKinds),
	}

	cmd.Flags().Int("id", 0, "User ID (required)")
	cmd.Flags().String("name", "", "New full name")
	cmd.Flags().String("password", "", "New password")
	cmd.Flags().String("role", "", "New role")
	cmd.Flags().Int("venture", 0, "New venture ID")
	cmd.Flags().Bool("active", true, "Enable or disable the account")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	parser := handler.NewFlagParser(args.GetCmd())
	id, err := parser.ParseID("id")
	if err != nil {
		return nil, err
	}

	req := userservice.UpdateUserRequest{ID: types.UserID(id)}
	if args.Has("name") {
		name := args.GetString("name", "")
		req.FullName = &name
	}
	if args.Has("password") {
		pw := args.GetString("password", "")
		req.Password = &pw
	}
	if args.Has("role") {
		role, err := parser.ParseRole("role")
		if err != nil {
			return nil, err
		}
		req.Role = &role
	}
	if args.Has("venture") {
		v := types.VentureID(args.GetInt("venture", 0))
		req.VentureID = &v
	}
	if args.Has("active") {
		active := args.GetBool("active")
		req.IsActive = &active
	}

	updated, err := c.App.UserService.Update(ctx, req)
	if err != nil {
		return nil, err
	}
	return savedUser{user: *updated, verb: "Updated"}, nil
}
