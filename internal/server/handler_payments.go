package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/baraza/pkg/model"
)

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	payments, err := s.platformFor(sess).ListPayments(r.Context(), scopeFor(r, sess))
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondOK(w, reqID, payments)
}

func (s *Server) handleInitiatePayment(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	var req model.InitiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid JSON body: "+err.Error()))
		return
	}
	if apiErr := req.Validate(); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	payment, err := s.platformFor(sess).InitiatePayment(r.Context(), scopeFor(r, sess), req)
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondCreated(w, reqID, payment)
}
