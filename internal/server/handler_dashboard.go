package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/me/baraza/internal/api"
	"github.com/me/baraza/pkg/model"
)

// dashboardTTL bounds how stale a cached dashboard aggregate may be.
const dashboardTTL = 30 * time.Second

// handleLoginPage serves the sign-in page.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := SessionFromContext(r.Context()); sess != nil {
		http.Redirect(w, r, sess.Session.Role.LandingPath(), http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, loginPage)
}

const loginPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Baraza - Sign in</title></head>
<body>
<h1>Baraza Console</h1>
<form id="login">
  <input type="email" name="email" placeholder="Email" required>
  <input type="password" name="password" placeholder="Password" required>
  <button type="submit">Sign in</button>
  <p id="error"></p>
</form>
<script>
document.getElementById('login').addEventListener('submit', async (e) => {
  e.preventDefault();
  const form = new FormData(e.target);
  const res = await fetch('/api/v1/auth/login', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({email: form.get('email'), password: form.get('password')}),
  });
  const body = await res.json();
  if (res.ok) {
    window.location = body.data.landing_path;
  } else {
    document.getElementById('error').textContent = body.error.message;
  }
});
</script>
</body>
</html>
`

// dashboard fetches the role's aggregate, consulting the cache first.
// The aggregate is assembled from concurrent platform calls; one failed
// call fails the whole dashboard.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request, build func(*api.Client, *model.ServerSession) (any, error)) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	key := fmt.Sprintf("dash:%s:%d", sess.Session.Role, sess.Session.ScopeID())
	if s.cache != nil {
		if raw, ok := s.cache.Get(r.Context(), key); ok {
			var cached json.RawMessage = raw
			respondOK(w, reqID, cached)
			return
		}
	}

	data, err := build(s.platformFor(sess), sess)
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}

	if s.cache != nil {
		if raw, err := json.Marshal(data); err == nil {
			s.cache.Set(r.Context(), key, raw, dashboardTTL)
		}
	}
	respondOK(w, reqID, data)
}

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	s.dashboard(w, r, func(pc *api.Client, sess *model.ServerSession) (any, error) {
		var (
			clients  []model.Client
			listings []model.Listing
			logins   []*model.LoginEvent
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			clients, err = pc.ListClients(ctx, model.DefaultListOptions())
			return err
		})
		g.Go(func() (err error) {
			listings, err = pc.ListListings(ctx, model.DefaultListOptions())
			return err
		})
		g.Go(func() (err error) {
			logins, _, err = s.store.ListLoginEvents(ctx, model.ListOptions{Limit: 10})
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return map[string]any{
			"clients":       clients,
			"listings":      listings,
			"recent_logins": logins,
		}, nil
	})
}

func (s *Server) handleSalesDashboard(w http.ResponseWriter, r *http.Request) {
	s.dashboard(w, r, func(pc *api.Client, sess *model.ServerSession) (any, error) {
		var (
			clients  []model.Client
			projects []model.Project
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			clients, err = pc.ListClients(ctx, model.DefaultListOptions())
			return err
		})
		g.Go(func() (err error) {
			projects, err = pc.ListProjects(ctx, sess.Session.ScopeID(), model.DefaultListOptions())
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return map[string]any{
			"clients":  clients,
			"projects": projects,
		}, nil
	})
}

func (s *Server) handlePMDashboard(w http.ResponseWriter, r *http.Request) {
	s.dashboard(w, r, func(pc *api.Client, sess *model.ServerSession) (any, error) {
		var (
			projects []model.Project
			docs     []model.Document
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			projects, err = pc.ListProjects(ctx, sess.Session.ScopeID(), model.DefaultListOptions())
			return err
		})
		g.Go(func() (err error) {
			docs, err = pc.ListDocuments(ctx, sess.Session.ScopeID())
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return map[string]any{
			"projects":  projects,
			"documents": docs,
		}, nil
	})
}

func (s *Server) handleClientDashboard(w http.ResponseWriter, r *http.Request) {
	s.dashboard(w, r, func(pc *api.Client, sess *model.ServerSession) (any, error) {
		scope := sess.Session.ScopeID()
		var (
			projects []model.Project
			docs     []model.Document
			payments []model.Payment
			results  []model.TokenizationResult
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			projects, err = pc.ListProjects(ctx, scope, model.DefaultListOptions())
			return err
		})
		g.Go(func() (err error) {
			docs, err = pc.ListDocuments(ctx, scope)
			return err
		})
		g.Go(func() (err error) {
			payments, err = pc.ListPayments(ctx, scope)
			return err
		})
		g.Go(func() (err error) {
			results, err = pc.TokenizationResults(ctx, scope)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return map[string]any{
			"projects":     projects,
			"documents":    docs,
			"payments":     payments,
			"tokenization": results,
		}, nil
	})
}
