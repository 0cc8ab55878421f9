package api

import (
	"encoding/json"
	"net"
	"net/http"

	apperrors "github.com/heritageatlas/heritage-server/internal/errors"
)

// registerUploadRoutes wires the dataset upload endpoint. This is a chi
// handler (not Huma) because Huma doesn't easily support multipart forms.
// Both slash forms are registered since chi matches paths exactly.
func (s *Server) registerUploadRoutes() {
	s.router.Post("/sites/upload-xls", s.handleUploadDataset)
	s.router.Post("/sites/upload-xls/", s.handleUploadDataset)
}

// handleUploadDataset accepts an XLSX workbook in the "file" field of a
// multipart form and replaces the whole dataset with its contents. Any
// invalid row rejects the upload and leaves the current dataset in place.
func (s *Server) handleUploadDataset(w http.ResponseWriter, r *http.Request) {
	key := clientIP(r)
	if !s.uploadLimiter.Allow(key) {
		s.logger.Warn("upload rate limit exceeded", "ip", key)
		writeError(w, apperrors.TooManyRequests("too many uploads, try again later"), s.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.uploadMaxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperrors.Validation("expected an .xlsx file in the 'file' multipart field"), s.logger)
		return
	}
	defer file.Close()

	rev, err := s.services.Ingest.ReplaceFromXLSX(r.Context(), "upload:"+header.Filename, file)
	if err != nil {
		var appErr *apperrors.Error
		if apperrors.As(err, &appErr) {
			writeError(w, appErr, s.logger)
			return
		}
		s.logger.Error("upload failed", "error", err)
		writeError(w, apperrors.Internal("upload failed"), s.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{"revision": rev}); err != nil {
		s.logger.Error("failed to encode upload response", "error", err)
	}
}

// clientIP returns the request's client address without the port. The
// RealIP middleware has already resolved forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
