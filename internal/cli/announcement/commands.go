package announcement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/agency/internal/cli"
	"github.com/thenoetrevino/agency/internal/cli/handler"
	"github.com/thenoetrevino/agency/internal/cli/styles"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

var errNotFound = errors.New("announcement not found")

// ListCmd returns the announcement list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active announcements",
		RunE:  handler.Command(handler.HandlerFunc(runList), errorKinds),
	}
	cmd.Flags().Bool("unread", false, "Only show announcements you have not acknowledged")
	return cmd
}

type announcementList struct {
	items []models.Announcement
	me    types.UserID
}

func (l announcementList) Present(f *cli.OutputFormatter) error {
	ids := make([]int, len(l.items))
	rows := make([][]string, len(l.items))
	for i, a := range l.items {
		ids[i] = a.GetID()
		read := ""
		if a.AcknowledgedBy(l.me) {
			read = "✓"
		}
		rows[i] = []string{
			a.ID.String(),
			a.Title,
			humanize.Time(a.CreatedAt.Time),
			fmt.Sprintf("%d", a.AckCount()),
			read,
		}
	}
	return f.List(l.items, ids, []string{"ID", "TITLE", "POSTED", "ACKS", "READ"}, rows)
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	items, err := c.App.AnnouncementService.List(ctx)
	if err != nil {
		return nil, err
	}

	var me types.UserID
	if u := c.App.Session.User(); u != nil {
		me = u.ID
	}

	out := announcementList{me: me, items: make([]models.Announcement, 0, len(items))}
	for _, a := range items {
		if args.GetBool("unread") && a.AcknowledgedBy(me) {
			continue
		}
		out.items = append(out.items, a)
	}
	return out, nil
}

// ShowCmd returns the announcement show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show an announcement, rendering its markdown",
		RunE:  handler.Command(handler.HandlerFunc(runShow), errorKinds),
	}
	requireID(cmd)
	return cmd
}

type announcementCard models.Announcement

func (a announcementCard) Present(f *cli.OutputFormatter) error {
	if f.JSON || f.Quiet {
		return f.Success(models.Announcement(a))
	}

	body, err := glamour.Render(a.Content, "dark")
	if err != nil {
		slog.Debug("markdown render failed", "error", err)
		body = a.Content
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(a.Title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("posted %s, %d acknowledged",
		humanize.Time(a.CreatedAt.Time), models.Announcement(a).AckCount())))
	b.WriteString("\n")
	b.WriteString(body)
	return f.Message(models.Announcement(a), "%s", b.String())
}

func runShow(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	ann, err := find(ctx, c, args)
	if err != nil {
		return nil, err
	}
	return announcementCard(ann), nil
}

// CreateCmd returns the announcement create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post an announcement (managers and admins)",
		Long: `Post an announcement. The content is markdown.

Examples:
  agency announcement create --title "Office closed" --content "Friday **only**"`,
		RunE: handler.Command(handler.HandlerFunc(runCreate), errorKinds),
	}
	cmd.Flags().String("title", "", "Title (required)")
	cmd.Flags().String("content", "", "Markdown body (required)")
	for _, name := range []string{"title", "content"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "error", err)
		}
	}
	return cmd
}

type posted models.Announcement

func (p posted) GetID() int { return int(p.ID) }

func (p posted) Present(f *cli.OutputFormatter) error {
	return f.Message(models.Announcement(p), "Posted announcement %d: %s", p.ID, p.Title)
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	created, err := c.App.AnnouncementService.Create(ctx, args.GetString("title", ""), args.GetString("content", ""))
	if err != nil {
		return nil, err
	}
	return posted(*created), nil
}

// AckCmd returns the announcement ack subcommand
func AckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ack",
		Short: "Acknowledge an announcement",
		RunE:  handler.Command(handler.HandlerFunc(runAck), errorKinds),
	}
	requireID(cmd)
	return cmd
}

type acknowledged models.Ack

func (a acknowledged) GetID() int { return int(a.AnnouncementID) }

func (a acknowledged) Present(f *cli.OutputFormatter) error {
	return f.Message(a, "Acknowledged announcement %d", a.AnnouncementID)
}

func runAck(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	ann, err := find(ctx, c, args)
	if err != nil {
		return nil, err
	}
	ack, err := c.App.AnnouncementService.Acknowledge(ctx, ann)
	if err != nil {
		return nil, err
	}
	return acknowledged(*ack), nil
}

func requireID(cmd *cobra.Command) {
	cmd.Flags().Int("id", 0, "Announcement ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
}

func find(ctx context.Context, c *cli.CLI, args *handler.Arguments) (models.Announcement, error) {
	id, err := handler.NewFlagParser(args.GetCmd()).ParseID("id")
	if err != nil {
		return models.Announcement{}, err
	}
	ann, ok, err := c.App.AnnouncementService.Find(ctx, types.AnnouncementID(id))
	if err != nil {
		return models.Announcement{}, err
	}
	if !ok {
		return models.Announcement{}, fmt.Errorf("%w: %d", errNotFound, id)
	}
	return ann, nil
}
