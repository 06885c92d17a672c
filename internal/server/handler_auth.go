package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/baraza/pkg/model"
)

type loginResponse struct {
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	LandingPath string `json:"landing_path"`
}

// handleLogin authenticates against the platform, mints a cookie
// session, and records the attempt in the audit log.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("email and password are required"))
		return
	}

	result, err := s.platform.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.recordLogin(r, req.Email, false, "")
		respondAPIError(w, reqID, err)
		return
	}

	role, err := model.ParseExternalRole(result.Role)
	if err != nil {
		// The platform handed back a vocabulary we do not serve.
		s.logger.Error("login rejected", "error", err, "request_id", reqID)
		s.recordLogin(r, req.Email, false, "")
		respondError(w, reqID, http.StatusBadGateway, model.NewUpstreamError("unrecognized role from platform"))
		return
	}

	identity := model.Session{
		UserID:   result.ID,
		Email:    result.Email,
		Role:     role,
		Token:    result.Token,
		ClientID: result.ClientID,
	}
	if err := identity.Validate(); err != nil {
		s.logger.Error("login produced invalid identity", "error", err, "request_id", reqID)
		s.recordLogin(r, req.Email, false, "")
		respondError(w, reqID, http.StatusBadGateway, model.NewUpstreamError("incomplete identity from platform"))
		return
	}

	sess, err := s.sessions.CreateSession(r.Context(), identity)
	if err != nil {
		s.logger.Error("session create failed", "error", err, "request_id", reqID)
		respondError(w, reqID, http.StatusInternalServerError, &model.APIError{
			Code:    model.ErrInternal,
			Message: "could not create session",
		})
		return
	}

	s.recordLogin(r, req.Email, true, role)
	SetSessionCookie(w, sess, s.config.SecureCookies)
	respondOK(w, reqID, loginResponse{
		UserID:      identity.UserID,
		Email:       identity.Email,
		Role:        string(role),
		LandingPath: role.LandingPath(),
	})
}

// handleLogout deletes the session and clears the cookie. Logging out
// twice is fine.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := s.sessions.DeleteSession(r.Context(), cookie.Value); err != nil {
			s.logger.Error("session delete failed", "error", err, "request_id", reqID)
		}
	}
	ClearSessionCookie(w)
	respondOK(w, reqID, map[string]string{"status": "signed_out"})
}

// handleSessionInfo returns the caller's identity without the token.
func (s *Server) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	respondOK(w, reqID, map[string]any{
		"user_id":      sess.Session.UserID,
		"email":        sess.Session.Email,
		"role":         sess.Session.Role,
		"client_id":    sess.Session.ClientID,
		"scope_id":     sess.Session.ScopeID(),
		"landing_path": sess.Session.Role.LandingPath(),
		"expires_at":   sess.ExpiresAt,
	})
}

// recordLogin writes a login attempt to the audit log. Failures are
// logged, not surfaced; auditing never blocks the auth flow.
func (s *Server) recordLogin(r *http.Request, email string, success bool, role model.Role) {
	ev := &model.LoginEvent{
		Email:     email,
		Success:   success,
		Role:      role,
		RequestID: RequestIDFromContext(r.Context()),
	}
	if err := s.store.RecordLoginEvent(r.Context(), ev); err != nil {
		s.logger.Error("audit write failed", "error", err)
	}
}
