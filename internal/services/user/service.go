// Package user is the user administration service. It mirrors the server's
// manager restrictions so obvious rejections never leave the client.
package user

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

// Client is the part of the REST client the user service uses
type Client interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, in api.UserCreate) (*models.User, error)
	UpdateUser(ctx context.Context, id types.UserID, in api.UserUpdate) (*models.User, error)
}

// Viewer supplies the logged-in user
type Viewer interface {
	User() *models.User
}

// Service defines user administration
type Service interface {
	Collection() *cache.Resource[[]models.User]
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, req CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, req UpdateUserRequest) (*models.User, error)
}

// CreateUserRequest encapsulates all data needed to create a user
type CreateUserRequest struct {
	EmpID     string
	Password  string
	FullName  string
	Role      models.Role      // empty means EMPLOYEE
	VentureID *types.VentureID // nil for a manager means the manager's venture
	Inactive  bool
}

// UpdateUserRequest is a partial update; nil fields are left alone
type UpdateUserRequest struct {
	ID        types.UserID
	FullName  *string
	Password  *string
	Role      *models.Role
	VentureID *types.VentureID
	IsActive  *bool
}

type service struct {
	client Client
	viewer Viewer
	store  *cache.Store
	users  *cache.Resource[[]models.User]
}

// NewService creates the service. Users are fetched on demand unless every is set.
func NewService(client Client, viewer Viewer, store *cache.Store, every time.Duration) Service {
	return &service{
		client: client,
		viewer: viewer,
		store:  store,
		users:  cache.Register(store, cache.Users, every, client.ListUsers),
	}
}

func (s *service) Collection() *cache.Resource[[]models.User] {
	return s.users
}

func (s *service) List(ctx context.Context) ([]models.User, error) {
	if _, err := s.admin(); err != nil {
		return nil, err
	}
	if err := s.users.Ensure(ctx); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return s.users.Get(), nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	actor, err := s.admin()
	if err != nil {
		return nil, err
	}

	in := api.UserCreate{
		EmpID:     strings.TrimSpace(req.EmpID),
		Password:  req.Password,
		FullName:  strings.TrimSpace(req.FullName),
		Role:      req.Role,
		VentureID: req.VentureID,
		IsActive:  !req.Inactive,
	}
	if in.Role == "" {
		in.Role = models.RoleEmployee
	}

	switch {
	case in.EmpID == "":
		return nil, ErrEmptyEmpID
	case in.FullName == "":
		return nil, ErrEmptyName
	case in.Password == "":
		return nil, ErrEmptyPassword
	case !in.Role.Valid():
		return nil, ErrInvalidRole
	}

	if actor.Role == models.RoleManager {
		if in.Role == models.RoleAdmin {
			return nil, ErrCannotCreateAdmin
		}
		if in.VentureID == nil {
			in.VentureID = actor.VentureID
		}
		if !sameVenture(in.VentureID, actor.VentureID) {
			return nil, ErrOtherVenture
		}
	}

	created, err := cache.Mutate(ctx, s.store, func(ctx context.Context) (*models.User, error) {
		return s.client.CreateUser(ctx, in)
	}, cache.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdateUserRequest) (*models.User, error) {
	actor, err := s.admin()
	if err != nil {
		return nil, err
	}

	in := api.UserUpdate{
		FullName:  req.FullName,
		Password:  req.Password,
		Role:      req.Role,
		VentureID: req.VentureID,
		IsActive:  req.IsActive,
	}
	if in.FullName == nil && in.Password == nil && in.Role == nil && in.VentureID == nil && in.IsActive == nil {
		return nil, ErrNothingToSave
	}
	if in.FullName != nil && strings.TrimSpace(*in.FullName) == "" {
		return nil, ErrEmptyName
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if actor.Role == models.RoleManager {
		if err := s.checkManagerEdit(ctx, *actor, req); err != nil {
			return nil, err
		}
	}

	updated, err := cache.Mutate(ctx, s.store, func(ctx context.Context) (*models.User, error) {
		return s.client.UpdateUser(ctx, req.ID, in)
	}, cache.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

func (s *service) checkManagerEdit(ctx context.Context, actor models.User, req UpdateUserRequest) error {
	if req.Role != nil && *req.Role == models.RoleAdmin {
		return ErrCannotPromote
	}
	if req.VentureID != nil && !sameVenture(req.VentureID, actor.VentureID) {
		return ErrOtherVenture
	}

	if err := s.users.Ensure(ctx); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range s.users.Get() {
		if u.ID != req.ID {
			continue
		}
		if u.Role == models.RoleAdmin {
			return ErrCannotEditAdmin
		}
		return nil
	}
	// managers only ever list their own venture
	return ErrOtherVenture
}

func (s *service) admin() (*models.User, error) {
	u := s.viewer.User()
	if u == nil || !u.Role.Includes(models.RoleManager) {
		return nil, ErrNotPermitted
	}
	return u, nil
}

func sameVenture(a, b *types.VentureID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Filter returns the users holding role; an empty role keeps everyone
func Filter(users []models.User, role models.Role) []models.User {
	if role == "" {
		return users
	}
	var out []models.User
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}
