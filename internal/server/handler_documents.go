package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/me/baraza/pkg/model"
)

// maxUploadBytes caps multipart document uploads at 32 MiB.
const maxUploadBytes = 32 << 20

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	docs, err := s.platformFor(sess).ListDocuments(r.Context(), scopeFor(r, sess))
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondOK(w, reqID, docs)
}

// handleUploadDocument streams a multipart file into object storage and
// registers the resulting key with the platform.
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	sess := SessionFromContext(r.Context())

	if s.uploader == nil {
		respondError(w, reqID, http.StatusServiceUnavailable, &model.APIError{
			Code:    model.ErrInternal,
			Message: "document storage is not configured",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("multipart 'file' field required: "+err.Error()))
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if name == "" || name == "." || name == "/" {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("file name required"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	scope := scopeFor(r, sess)
	key := fmt.Sprintf("clients/%d/%s%s", scope, uuid.New().String(), strings.ToLower(filepath.Ext(name)))

	if err := s.uploader.Upload(r.Context(), key, file, contentType); err != nil {
		s.logger.Error("document upload failed", "error", err, "key", key, "request_id", reqID)
		respondError(w, reqID, http.StatusBadGateway, model.NewUpstreamError("object storage unavailable"))
		return
	}

	doc, err := s.platformFor(sess).RegisterDocument(r.Context(), model.RegisterDocumentRequest{
		ClientID:    scope,
		Name:        name,
		ContentType: contentType,
		SizeBytes:   header.Size,
		StorageKey:  key,
	})
	if err != nil {
		respondAPIError(w, reqID, err)
		return
	}
	respondCreated(w, reqID, doc)
}
