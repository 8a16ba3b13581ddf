// Package venture administers ventures (admin only)
package venture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/cache"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
)

var (
	ErrEmptyName    = errors.New("venture name cannot be empty")
	ErrNotPermitted = errors.New("only admins can manage ventures")
)

// Client is the part of the REST client the venture service uses
type Client interface {
	ListVentures(ctx context.Context) ([]models.Venture, error)
	CreateVenture(ctx context.Context, in api.VentureInput) (*models.Venture, error)
	UpdateVenture(ctx context.Context, id types.VentureID, in api.VentureInput) (*models.Venture, error)
}

// Viewer supplies the logged-in user
type Viewer interface {
	User() *models.User
}

// Service defines venture operations
type Service interface {
	Collection() *cache.Resource[[]models.Venture]
	List(ctx context.Context) ([]models.Venture, error)
	Name(ctx context.Context, id *types.VentureID) string
	Create(ctx context.Context, name, description string) (*models.Venture, error)
	Update(ctx context.Context, id types.VentureID, name, description string) (*models.Venture, error)
}

type service struct {
	client   Client
	viewer   Viewer
	store    *cache.Store
	ventures *cache.Resource[[]models.Venture]
}

// NewService creates the service. Ventures are fetched on demand unless every is set.
func NewService(client Client, viewer Viewer, store *cache.Store, every time.Duration) Service {
	return &service{
		client:   client,
		viewer:   viewer,
		store:    store,
		ventures: cache.Register(store, cache.Ventures, every, client.ListVentures),
	}
}

func (s *service) Collection() *cache.Resource[[]models.Venture] {
	return s.ventures
}

// List is open to every logged-in user; the backend lists ventures for
// anyone so names can be shown next to users
func (s *service) List(ctx context.Context) ([]models.Venture, error) {
	if err := s.ventures.Ensure(ctx); err != nil {
		return nil, fmt.Errorf("failed to load ventures: %w", err)
	}
	return s.ventures.Get(), nil
}

// Name resolves a venture ID for display, "-" when unset or unknown
func (s *service) Name(ctx context.Context, id *types.VentureID) string {
	if id == nil {
		return "-"
	}
	ventures, err := s.List(ctx)
	if err != nil {
		return id.String()
	}
	for _, v := range ventures {
		if v.ID == *id {
			return v.Name
		}
	}
	return id.String()
}

func (s *service) Create(ctx context.Context, name, description string) (*models.Venture, error) {
	if err := s.checkAdmin(); err != nil {
		return nil, err
	}
	in := api.VentureInput{Name: strings.TrimSpace(name), Description: strings.TrimSpace(description)}
	if in.Name == "" {
		return nil, ErrEmptyName
	}

	v, err := cache.Mutate(ctx, s.store, func(ctx context.Context) (*models.Venture, error) {
		return s.client.CreateVenture(ctx, in)
	}, cache.Ventures)
	if err != nil {
		return nil, fmt.Errorf("failed to create venture: %w", err)
	}
	return v, nil
}

// Update renames a venture; an empty description leaves it unchanged
func (s *service) Update(ctx context.Context, id types.VentureID, name, description string) (*models.Venture, error) {
	if err := s.checkAdmin(); err != nil {
		return nil, err
	}
	in := api.VentureInput{Name: strings.TrimSpace(name), Description: strings.TrimSpace(description)}
	if in.Name == "" {
		return nil, ErrEmptyName
	}

	v, err := cache.Mutate(ctx, s.store, func(ctx context.Context) (*models.Venture, error) {
		return s.client.UpdateVenture(ctx, id, in)
	}, cache.Ventures)
	if err != nil {
		return nil, fmt.Errorf("failed to update venture: %w", err)
	}
	return v, nil
}

func (s *service) checkAdmin() error {
	if u := s.viewer.User(); u == nil || u.Role != models.RoleAdmin {
		return ErrNotPermitted
	}
	return nil
}
