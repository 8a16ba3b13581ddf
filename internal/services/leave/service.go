// Package leave lists leave requests and holidays and files new requests
package leave

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/agency/internal/api"
	"github.com/thenoetrevino/agency/internal/cache"
	"github.com/thenoetrevino/agency/internal/models"
	"github.com/thenoetrevino/agency/internal/types"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidType   = errors.New("leave type must be SICK, CASUAL, ANNUAL or OTHER")
	ErrInvalidDate   = errors.New("dates must be YYYY-MM-DD")
	ErrEndBeforeFrom = errors.New("leave cannot end before it starts")
	ErrInvalidReview = errors.New("a leave can only be approved or rejected")
	ErrNotPermitted  = errors.New("only managers and admins can review leaves")
)

// Client is the part of the REST client the leave service uses
type Client interface {
	ListLeaves(ctx context.Context) ([]models.Leave, error)
	ListHolidays(ctx context.Context) ([]models.Holiday, error)
	ApplyLeave(ctx context.Context, in api.LeaveCreate) (*models.Leave, error)
	ReviewLeave(ctx context.Context, id types.LeaveID, status models.LeaveStatus) (*models.Leave, error)
}

// Viewer supplies the logged-in user
type Viewer interface {
	User() *models.User
}

// Overview is what the leaves page shows
type Overview struct {
	Leaves   []models.Leave
	Holidays []models.Holiday
}

// Service defines leave operations
type Service interface {
	Overview(ctx context.Context) (Overview, error)
	Holidays(ctx context.Context) ([]models.Holiday, error)
	Apply(ctx context.Context, req ApplyRequest) (*models.Leave, error)
	Review(ctx context.Context, id types.LeaveID, status models.LeaveStatus) (*models.Leave, error)
}

// ApplyRequest is a leave request; dates are YYYY-MM-DD
type ApplyRequest struct {
	Type   models.LeaveType
	From   string
	To     string
	Reason string
}

type service struct {
	client   Client
	viewer   Viewer
	store    *cache.Store
	leaves   *cache.Resource[[]models.Leave]
	holidays *cache.Resource[[]models.Holiday]
}

// NewService creates the service. Both collections are fetched on demand.
func NewService(client Client, viewer Viewer, store *cache.Store) Service {
	return &service{
		client:   client,
		viewer:   viewer,
		store:    store,
		leaves:   cache.Register(store, cache.Leaves, 0, client.ListLeaves),
		holidays: cache.Register(store, cache.Holidays, 0, client.ListHolidays),
	}
}

// Overview refetches leaves and holidays in parallel. Leaves come back
// newest first, holidays in date order.
func (s *service) Overview(ctx context.Context) (Overview, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.leaves.Refresh(gctx) })
	g.Go(func() error { return s.holidays.Refresh(gctx) })
	if err := g.Wait(); err != nil {
		return Overview{}, fmt.Errorf("failed to load leaves: %w", err)
	}

	leaves := slices.Clone(s.leaves.Get())
	slices.SortStableFunc(leaves, func(a, b models.Leave) int {
		return b.StartDate.Compare(a.StartDate.Time)
	})
	return Overview{Leaves: leaves, Holidays: sortHolidays(s.holidays.Get())}, nil
}

func (s *service) Holidays(ctx context.Context) ([]models.Holiday, error) {
	if err := s.holidays.Ensure(ctx); err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	return sortHolidays(s.holidays.Get()), nil
}

func (s *service) Apply(ctx context.Context, req ApplyRequest) (*models.Leave, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}
	from, err := time.Parse("2006-01-02", strings.TrimSpace(req.From))
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := time.Parse("2006-01-02", strings.TrimSpace(req.To))
	if err != nil {
		return nil, ErrInvalidDate
	}
	if to.Before(from) {
		return nil, ErrEndBeforeFrom
	}

	in := api.LeaveCreate{
		LeaveType: req.Type,
		StartDate: from.Format("2006-01-02"),
		EndDate:   to.Format("2006-01-02"),
		Reason:    strings.TrimSpace(req.Reason),
	}
	l, err := cache.Mutate(ctx, s.store, func(ctx context.Context) (*models.Leave, error) {
		return s.client.ApplyLeave(ctx, in)
	}, cache.Leaves)
	if err != nil {
		return nil, fmt.Errorf("failed to apply for leave: %w", err)
	}
	return l, nil
}

func (s *service) Review(ctx context.Context, id types.LeaveID, status models.LeaveStatus) (*models.Leave, error) {
	if u := s.viewer.User(); u == nil || !u.Role.Includes(models.RoleManager) {
		return nil, ErrNotPermitted
	}
	if status != models.LeaveApproved && status != models.LeaveRejected {
		return nil, ErrInvalidReview
	}

	l, err := cache.Mutate(ctx, s.store, func(ctx context.Context) (*models.Leave, error) {
		return s.client.ReviewLeave(ctx, id, status)
	}, cache.Leaves)
	if err != nil {
		return nil, fmt.Errorf("failed to review leave: %w", err)
	}
	return l, nil
}

func sortHolidays(in []models.Holiday) []models.Holiday {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b models.Holiday) int {
		return a.Date.Compare(b.Date.Time)
	})
	return out
}
