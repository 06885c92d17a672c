package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/me/baraza/pkg/model"
)

// scopeFor resolves the client entity a request operates on. Clients
// are pinned to their own scope; staff roles may name any client via
// the client_id query param and default to their own scope otherwise.
func scopeFor(r *http.Request, sess *model.ServerSession) int64 {
	if sess.Session.Role == model.RoleClient {
		return sess.Session.ScopeID()
	}
	if v := r.URL.Query().Get("client_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return sess.Session.ScopeID()
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	projects, err := s.platformFor(sess).ListProjects(r.Context(), scopeFor(r, sess), parseListOptions(r))
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondOK(w, reqID, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	var req model.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}
	if apiErr := req.Validate(); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	project, err := s.platformFor(sess).CreateProject(r.Context(), req)
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondCreated(w, reqID, project)
}
