package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/me/baraza/pkg/model"
)

// parseListOptions reads limit/offset/status query params.
func parseListOptions(r *http.Request) model.ListOptions {
	opts := model.DefaultListOptions()
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Offset = n
		}
	}
	opts.Status = q.Get("status")
	opts.Clamp()
	return opts
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	clients, err := s.platformFor(sess).ListClients(r.Context(), parseListOptions(r))
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondOK(w, reqID, clients)
}

func (s *Server) handleOnboardClient(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	var req model.OnboardClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}
	if apiErr := req.Validate(); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	client, err := s.platformFor(sess).OnboardClient(r.Context(), req)
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondCreated(w, reqID, client)
}
