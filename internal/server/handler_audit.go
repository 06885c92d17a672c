package server

import (
	"net/http"

	"github.com/me/baraza/pkg/model"
)

// handleListLoginEvents serves the admin audit feed, newest first.
func (s *Server) handleListLoginEvents(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	opts := parseListOptions(r)

	events, total, err := s.store.ListLoginEvents(r.Context(), opts)
	if err != nil {
		s.logger.Error("audit read failed", "error", err, "request_id", reqID)
		respondError(w, reqID, http.StatusInternalServerError, &model.APIError{
			Code:    model.ErrInternal,
			Message: "could not read audit log",
		})
		return
	}

	respondList(w, reqID, events, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+len(events) < total,
	})
}
