package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/me/baraza/internal/store"
	"github.com/me/baraza/pkg/model"
)

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "baraza_session"
	// DefaultSessionTTL is the default server session lifetime.
	DefaultSessionTTL = 24 * time.Hour
)

// SessionManager handles cookie session creation, validation, and cleanup
// against the SQLite store.
type SessionManager struct {
	store store.Store
	ttl   time.Duration
}

// NewSessionManager creates a session manager with the given lifetime.
// A zero ttl falls back to the default.
func NewSessionManager(st store.Store, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{store: st, ttl: ttl}
}

// CreateSession persists a cookie session wrapping the authenticated
// identity. The identity must already be validated.
func (sm *SessionManager) CreateSession(ctx context.Context, identity model.Session) (*model.ServerSession, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now()
	sess := &model.ServerSession{
		ID:        id,
		Session:   identity,
		CreatedAt: now,
		ExpiresAt: now.Add(sm.ttl),
	}
	if err := sm.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// GetSession retrieves a session by ID from the store.
// Returns nil if the session doesn't exist or has expired.
func (sm *SessionManager) GetSession(ctx context.Context, id string) (*model.ServerSession, error) {
	sess, err := sm.store.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}

	if sess.IsExpired() {
		_ = sm.store.DeleteSession(ctx, id)
		return nil, nil
	}
	// Never hand out a record that rebuilt into a partial identity.
	if err := sess.Session.Validate(); err != nil {
		_ = sm.store.DeleteSession(ctx, id)
		return nil, nil
	}

	return sess, nil
}

// DeleteSession removes a session from the store.
func (sm *SessionManager) DeleteSession(ctx context.Context, id string) error {
	return sm.store.DeleteSession(ctx, id)
}

// CleanupExpiredSessions removes all expired sessions from the store.
func (sm *SessionManager) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return sm.store.DeleteExpiredSessions(ctx)
}

// GetSessionFromRequest extracts the session from the request cookie.
func (sm *SessionManager) GetSessionFromRequest(r *http.Request) (*model.ServerSession, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, nil // No cookie, no session
	}
	return sm.GetSession(r.Context(), cookie.Value)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, sess *model.ServerSession, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  sess.ExpiresAt,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateSessionID generates a cryptographically secure random session ID.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sess_" + hex.EncodeToString(b), nil
}
