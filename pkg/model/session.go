package model

import (
	"fmt"
	"time"
)

// Session is the in-memory record of an authenticated identity.
// A session is either fully absent or fully populated; Validate enforces
// the latter before any session is committed or trusted.
type Session struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Token  string `json:"-"` // bearer credential, never serialized to clients

	// ClientID is the business "client entity" id, only meaningful for
	// client-role accounts. Zero means no separate client entity was
	// issued and the login account id is the scoping identity.
	ClientID int64 `json:"client_id,omitempty"`
}

// Validate reports whether the session is fully populated with valid
// values. ClientID is intentionally not required.
func (s *Session) Validate() error {
	if s.UserID <= 0 {
		return fmt.Errorf("session missing user id")
	}
	if s.Email == "" {
		return fmt.Errorf("session missing email")
	}
	if !s.Role.Valid() {
		return fmt.Errorf("session has invalid role %q", s.Role)
	}
	if s.Token == "" {
		return fmt.Errorf("session missing token")
	}
	return nil
}

// ScopeID returns the identity used for client-scoped platform calls:
// ClientID when a separate client entity was issued, otherwise UserID.
func (s *Session) ScopeID() int64 {
	if s.ClientID != 0 {
		return s.ClientID
	}
	return s.UserID
}

// IsAdmin reports whether the session has admin role.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// ServerSession is a cookie-backed session record held by the Baraza
// server. It wraps the identity session with transport bookkeeping
// (random id, expiry); the identity fields keep the same invariants.
type ServerSession struct {
	ID        string    `json:"id"`
	Session   Session   `json:"session"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the server session has expired.
func (s *ServerSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
