package announcement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/cache"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

// Client is the part of the REST client the announcement service uses
type Client interface {
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, in api.AnnouncementCreate) (*models.Announcement, error)
	Acknowledge(ctx context.Context, id types.AnnouncementID) (*models.Ack, error)
}

// Viewer supplies the logged-in user
type Viewer interface {
	User() *models.User
}

// Service defines announcement operations
type Service interface {
	Collection() *cache.Resource[[]models.Announcement]
	List(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, title, content string) (*models.Announcement, error)
	// Acknowledge is suppressed locally, without a request, when the
	// announcement already carries an ack from the current user
	Acknowledge(ctx context.Context, ann models.Announcement) (*models.Ack, error)
	Find(ctx context.Context, id types.AnnouncementID) (models.Announcement, bool, error)
}

type service struct {
	client Client
	viewer Viewer
	store  *cache.Store
	items  *cache.Resource[[]models.Announcement]
}

// NewService creates the service and registers the announcement collection
func NewService(client Client, viewer Viewer, store *cache.Store, every time.Duration) Service {
	return &service{
		client: client,
		viewer: viewer,
		store:  store,
		items:  cache.Register(store, cache.Announcements, every, client.ListAnnouncements),
	}
}

func (s *service) Collection() *cache.Resource[[]models.Announcement] {
	return s.items
}

func (s *service) List(ctx context.Context) ([]models.Announcement, error) {
	if err := s.items.Ensure(ctx); err != nil {
		return nil, fmt.Errorf("failed to load announcements: %w", err)
	}
	return s.items.Get(), nil
}

func (s *service) Find(ctx context.Context, id types.AnnouncementID) (models.Announcement, bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		return models.Announcement{}, false, err
	}
	for _, a := range items {
		if a.ID == id {
			return a, true, nil
		}
	}
	return models.Announcement{}, false, nil
}

func (s *service) Create(ctx context.Context, title, content string) (*models.Announcement, error) {
	if u := s.viewer.User(); u == nil || !u.Role.Includes(models.RoleManager) {
		return nil, ErrNotPermitted
	}
	in := api.AnnouncementCreate{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	if in.Title == "" {
		return nil, ErrEmptyTitle
	}
	if in.Content == "" {
		return nil, ErrEmptyContent
	}

	created, err := cache.Mutate(ctx, s.store, func(ctx context.Context) (*models.Announcement, error) {
		return s.client.CreateAnnouncement(ctx, in)
	}, cache.Announcements)
	if err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return created, nil
}

func (s *service) Acknowledge(ctx context.Context, ann models.Announcement) (*models.Ack, error) {
	u := s.viewer.User()
	if u == nil {
		return nil, ErrNotLoggedIn
	}
	if ann.AcknowledgedBy(u.ID) {
		return nil, ErrAlreadyAcknowledged
	}

	ack, err := cache.Mutate(ctx, s.store, func(ctx context.Context) (*models.Ack, error) {
		return s.client.Acknowledge(ctx, ann.ID)
	}, cache.Announcements)
	if err != nil {
		return nil, fmt.Errorf("failed to acknowledge: %w", err)
	}
	return ack, nil
}
