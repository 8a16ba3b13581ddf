// Package venture holds the venture commands
package venture

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/models"
	ventureservice "github.com/thenoetrevino/agency/internal/services/venture"
	"github.com/thenoetrevino/agency/internal/types"
)

var errorKinds = cli.ErrorKinds{
	Validation: []error{ventureservice.ErrEmptyName},
	Permission: []error{ventureservice.ErrNotPermitted},
}

// VentureCmd returns the venture parent command
func VentureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venture",
		Short: "List ventures; admins can create and rename them",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List ventures",
		RunE:  handler.Command(handler.HandlerFunc(runList), errorKinds),
	})
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())

	return cmd
}

type ventureList []models.Venture

func (l ventureList) Present(f *cli.OutputFormatter) error {
	ids := make([]int, len(l))
	rows := make([][]string, len(l))
	for i, v := range l {
		ids[i] = v.GetID()
		rows[i] = []string{v.ID.String(), v.Name, v.Description}
	}
	return f.List([]models.Venture(l), ids, []string{"ID", "NAME", "DESCRIPTION"}, rows)
}

func runList(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	ventures, err := c.App.VentureService.List(ctx)
	if err != nil {
		return nil, err
	}
	return ventureList(ventures), nil
}

// CreateCmd returns the venture create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a venture (admins)",
		RunE:  handler.Command(handler.HandlerFunc(runCreate), errorKinds),
	}
	cmd.Flags().String("name", "", "Venture name (required)")
	cmd.Flags().String("description", "", "Description")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	return cmd
}

type savedVenture struct {
	venture models.Venture
	verb    string
}

func (s savedVenture) Present(f *cli.OutputFormatter) error {
	return f.Message(s.venture, "%s venture %d: %s", s.verb, s.venture.ID, s.venture.Name)
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	v, err := c.App.VentureService.Create(ctx, args.GetString("name", ""), args.GetString("description", ""))
	if err != nil {
		return nil, err
	}
	return savedVenture{venture: *v, verb: "Created"}, nil
}

// UpdateCmd returns the venture update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rename a venture (admins)",
		RunE:  handler.Command(handler.HandlerFunc(runUpdate), errorKinds),
	}
	cmd.Flags().Int("id", 0, "Venture ID (required)")
	cmd.Flags().String("name", "", "New name (required)")
	cmd.Flags().String("description", "", "New description")
	for _, name := range []string{"id", "name"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "error", err)
		}
	}
	return cmd
}

func runUpdate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseID("id")
	if err != nil {
		return nil, err
	}
	v, err := c.App.VentureService.Update(ctx, types.VentureID(id), args.GetString("name", ""), args.GetString("description", ""))
	if err != nil {
		return nil, err
	}
	return savedVenture{venture: *v, verb: "Updated"}, nil
}
