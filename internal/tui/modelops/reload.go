package modelops

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/agency/internal/routes"
	"github.com/thenoetrevino/agency/internal/tui"
	"golang.org/x/sync/errgroup"
)

// LoadRoute makes sure the data behind route r is cached. Already loaded
// resources are not refetched.
func LoadRoute(m *tui.Model, r routes.Route) tea.Cmd {
	if !m.App.Session.Authenticated() || r == routes.Login {
		return nil
	}
	ctx := m.Ctx
	return func() tea.Msg {
		return tui.LoadedMsg{Route: r, Err: m.App.Store.Ensure(ctx, RouteKeys(r)...)}
	}
}

// Refresh refetches everything route r shows, concurrently
func Refresh(m *tui.Model, r routes.Route) tea.Cmd {
	if !m.App.Session.Authenticated() || r == routes.Login {
		return nil
	}
	ctx := m.Ctx
	keys := RouteKeys(r)
	return func() tea.Msg {
		g, gctx := errgroup.WithContext(ctx)
		for _, key := range keys {
			g.Go(func() error {
				return m.App.Store.Invalidate(gctx, key)
			})
		}
		return tui.LoadedMsg{Route: r, Err: g.Wait()}
	}
}
