package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/baraza/pkg/model"
)

// Valuation numbers come back computed; nothing here re-derives NPV,
// earned value, or token pricing.
func (s *Server) handleTokenizationResults(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	results, err := s.platformFor(sess).TokenizationResults(r.Context(), scopeFor(r, sess))
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondOK(w, reqID, results)
}

func (s *Server) handleRequestTokenization(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	var req model.TokenizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}
	if apiErr := req.Validate(); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	result, err := s.platformFor(sess).RequestTokenization(r.Context(), scopeFor(r, sess), req)
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondCreated(w, reqID, result)
}
