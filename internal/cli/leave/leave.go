// Package leave holds the leave and holiday commands
package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/models"
	leaveservice "github.com/thenoetrevino/agency/internal/services/leave"
	"github.com/thenoetrevino/agency/internal/types"
)

var errorKinds = cli.ErrorKinds{
	Validation: []error{
		leaveservice.ErrInvalidType,
		leaveservice.ErrInvalidDate,
		leaveservice.ErrEndBeforeFrom,
		leaveservice.ErrInvalidReview,
	},
	Permission: []error{leaveservice.ErrNotPermitted},
}

// LeaveCmd returns the leave parent command
func LeaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Apply for leave and review requests",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List leave requests (yours, or your team's for managers)",
		RunE:  handler.Command(handler.HandlerFunc(runList), errorKinds),
	})
	cmd.AddCommand(ApplyCmd())
	cmd.AddCommand(ReviewCmd())

	return cmd
}

// HolidayCmd returns the holiday parent command
func HolidayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Company holidays",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List holidays in date order",
		RunE:  handler.Command(handler.HandlerFunc(runHolidays), errorKinds),
	})
	return cmd
}

type leaveList []models.Leave

func (l leaveList) Present(f *cli.OutputFormatter) error {
	ids := make([]int, len(l))
	rows := make([][]string, len(l))
	for i, lv := range l {
		ids[i] = lv.GetID()
		rows[i] = []string{
			fmt.Sprintf("%d", lv.ID),
			lv.UserID.String(),
			string(lv.LeaveType),
			lv.StartDate.Date(),
			lv.EndDate.Date(),
			fmt.Sprintf("%d", lv.Days()),
			string(lv.Status),
			lv.Reason,
		}
	}
	return f.List([]models.Leave(l), ids, []string{"ID", "USER", "TYPE", "FROM", "TO", "DAYS", "STATUS", "REASON"}, rows)
}

func runList(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	overview, err := c.App.LeaveService.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return leaveList(overview.Leaves), nil
}

type holidayList []models.Holiday

func (l holidayList) Present(f *cli.OutputFormatter) error {
	ids := make([]int, len(l))
	rows := make([][]string, len(l))
	for i, h := range l {
		ids[i] = h.GetID()
		scope := "all"
		if h.VentureID != nil {
			scope = h.VentureID.String()
		}
		rows[i] = []string{h.Date.Date(), h.Date.Weekday().String(), h.Name, scope}
	}
	return f.List([]models.Holiday(l), ids, []string{"DATE", "DAY", "NAME", "VENTURE"}, rows)
}

func runHolidays(ctx context.Context, c *cli.CLI, _ *handler.Arguments) (any, error) {
	holidays, err := c.App.LeaveService.Holidays(ctx)
	if err != nil {
		return nil, err
	}
	return holidayList(holidays), nil
}

// ApplyCmd returns the leave apply subcommand
func ApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Request time off",
		Long: `Request time off. Dates are inclusive.

Examples:
  agency leave apply --type annual --from 2026-12-22 --to 2026-12-31 --reason "Family"`,
		RunE: handler.Command(handler.HandlerFunc(runApply), errorKinds),
	}
	cmd.Flags().String("type", "", "SICK, CASUAL, ANNUAL or OTHER (required)")
	cmd.Flags().String("from", "", "First day, YYYY-MM-DD (required)")
	cmd.Flags().String("to", "", "Last day, YYYY-MM-DD (required)")
	cmd.Flags().String("reason", "", "Reason")
	for _, name := range []string{"type", "from", "to"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "error", err)
		}
	}
	return cmd
}

type savedLeave struct {
	leave   models.Leave
	message string
}

func (s savedLeave) Present(f *cli.OutputFormatter) error {
	return f.Message(s.leave, "%s", s.message)
}

func runApply(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	l, err := c.App.LeaveService.Apply(ctx, leaveservice.ApplyRequest{
		Type:   models.LeaveType(strings.ToUpper(strings.TrimSpace(args.GetString("type", "")))),
		From:   args.GetString("from", ""),
		To:     args.GetString("to", ""),
		Reason: args.GetString("reason", ""),
	})
	if err != nil {
		return nil, err
	}
	return savedLeave{leave: *l, message: fmt.Sprintf("Leave %d requested for %d day(s), status %s", l.ID, l.Days(), l.Status)}, nil
}

// ReviewCmd returns the leave review subcommand
func ReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Approve or reject a leave request (managers and admins)",
		Long: `Approve or reject a leave request.

Examples:
  agency leave review --id 4 approve
  agency leave review --id 4 reject`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"approve", "reject"},
		RunE:      handler.Command(handler.HandlerFunc(runReview), errorKinds),
	}
	cmd.Flags().Int("id", 0, "Leave ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	return cmd
}

func runReview(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseID("id")
	if err != nil {
		return nil, err
	}

	var status models.LeaveStatus
	switch strings.ToLower(args.Args[0]) {
	case "approve", "approved":
		status = models.LeaveApproved
	case "reject", "rejected":
		status = models.LeaveRejected
	default:
		return nil, handler.Usage("Use approve or reject", "unknown decision %q", args.Args[0])
	}

	l, err := c.App.LeaveService.Review(ctx, types.LeaveID(id), status)
	if err != nil {
		return nil, err
	}
	return savedLeave{leave: *l, message: fmt.Sprintf("Leave %d %s", l.ID, strings.ToLower(string(l.Status)))}, nil
}
