package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/me/baraza/internal/auth"
	"github.com/me/baraza/pkg/model"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeySession   ctxKey = "session"
)

// RequestIDFromContext extracts the request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// SessionFromContext extracts the authenticated session from request context.
// Returns nil for anonymous requests.
func SessionFromContext(ctx context.Context) *model.ServerSession {
	if sess, ok := ctx.Value(ctxKeySession).(*model.ServerSession); ok {
		return sess
	}
	return nil
}

// requestIDMiddleware generates a request_id and stores it in context.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := requestID()
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs HTTP requests at INFO level (method, path, status, duration).
func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
				"request_id", RequestIDFromContext(r.Context()),
			)
		})
	}
}

// sessionMiddleware resolves the session cookie and, when the record is
// valid and unexpired, attaches the session to the request context.
// Anonymous requests pass through untouched.
func sessionMiddleware(sm *SessionManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sm.GetSessionFromRequest(r)
			if err != nil {
				logger.Error("session lookup failed",
					"error", err,
					"request_id", RequestIDFromContext(r.Context()))
			}
			if sess == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireView gates a dashboard route on the given roles. Anonymous
// requests are sent to the login page; a signed-in user holding a
// different role lands on their own dashboard instead of an error page.
func requireView(allowed ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identity *model.Session
			if sess := SessionFromContext(r.Context()); sess != nil {
				identity = &sess.Session
			}

			v := auth.Evaluate(auth.StateActive, identity, allowed...)
			switch v.Decision {
			case auth.DecisionAllow:
				next.ServeHTTP(w, r)
			case auth.DecisionLogin, auth.DecisionRedirect:
				http.Redirect(w, r, v.Redirect, http.StatusSeeOther)
			default:
				http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
			}
		})
	}
}

// requireRoles gates an API route on the given roles, responding with
// JSON errors rather than redirects. An empty role list means any
// authenticated user.
func requireRoles(allowed ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := RequestIDFromContext(r.Context())

			sess := SessionFromContext(r.Context())
			if sess == nil {
				respondError(w, reqID, http.StatusUnauthorized, model.NewUnauthorizedError(""))
				return
			}

			v := auth.Evaluate(auth.StateActive, &sess.Session, allowed...)
			if v.Decision != auth.DecisionAllow {
				respondError(w, reqID, http.StatusForbidden, &model.APIError{
					Code:    model.ErrForbidden,
					Message: "insufficient role",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
