// backup.go implements GET and POST /backup.
// The backup code is the whole trip as one JSON document. Clients copy it
// out of GET and paste it back into POST; it travels as text/plain so it can
// be shared through chat apps untouched.
package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ExportBackup handles GET /backup.
func (s *Server) ExportBackup(w http.ResponseWriter, r *http.Request) {
	code, err := s.backup.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trip-backup.txt"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // the status line is already sent.
	io.WriteString(w, code)
}

// ImportBackup handles POST /backup.
// A malformed code is rejected with 422 decode_error and changes nothing.
func (s *Server) ImportBackup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, tooLargeBody("backup code is too large"))
			return
		}
		s.writeError(w, r, fmt.Errorf("handler.Server.ImportBackup: read body: %w", err))
		return
	}
	code := strings.TrimSpace(string(body))
	if code == "" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("backup code is required"))
		return
	}

	info, err := s.backup.Import(r.Context(), code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
