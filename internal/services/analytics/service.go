// Package analytics serves the dashboard figures
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/thenoetrevino/agency/internal/cache"
	"github.com/thenoetrevino/agency/internal/models"
)

// Client is the part of the REST client the analytics service uses
type Client interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

// Service defines dashboard reads
type Service interface {
	Collection() *cache.Resource[models.Dashboard]
	Dashboard(ctx context.Context) (models.Dashboard, error)
	Refresh(ctx context.Context) (models.Dashboard, error)
}

type service struct {
	dashboard *cache.Resource[models.Dashboard]
}

// NewService registers the dashboard resource, polled every interval
func NewService(client Client, store *cache.Store, every time.Duration) Service {
	fetch := func(ctx context.Context) (models.Dashboard, error) {
		d, err := client.Dashboard(ctx)
		if err != nil {
			return models.Dashboard{}, err
		}
		return *d, nil
	}
	return &service{dashboard: cache.Register(store, cache.Dashboard, every, fetch)}
}

func (s *service) Collection() *cache.Resource[models.Dashboard] {
	return s.dashboard
}

// Dashboard returns the cached figures, loading them on first use
func (s *service) Dashboard(ctx context.Context) (models.Dashboard, error) {
	if err := s.dashboard.Ensure(ctx); err != nil {
		return models.Dashboard{}, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return s.dashboard.Get(), nil
}

// Refresh forces a refetch
func (s *service) Refresh(ctx context.Context) (models.Dashboard, error) {
	if err := s.dashboard.Invalidate(ctx); err != nil {
		return models.Dashboard{}, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return s.dashboard.Get(), nil
}
