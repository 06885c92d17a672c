package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/baraza/pkg/model"
)

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	listings, err := s.platformFor(sess).ListListings(r.Context(), parseListOptions(r))
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondOK(w, reqID, listings)
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	var req model.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}
	if apiErr := req.Validate(); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	listing, err := s.platformFor(sess).CreateListing(r.Context(), scopeFor(r, sess), req)
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondCreated(w, reqID, listing)
}
