package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// imageFormMemory is how much of a multipart upload is kept in memory before
// spilling to temp files. The body cap itself comes from the middleware.
const imageFormMemory = 8 << 20

// ImageResponse is the body of POST /images.
type ImageResponse struct {
	DataURI     string `json:"dataUri"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

// UploadImage handles POST /images.
// It takes the multipart field "file" and returns it as a base64 data URI,
// which clients then store in any photo field. Nothing is saved here.
func (s *Server) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(imageFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, tooLargeBody("image is too large"))
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("multipart form with a file field is required"))
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("file is required"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// The declared part type is not trusted; the bytes decide.
	ct := http.DetectContentType(data)
	if !domain.IsImageContentType(ct) {
		writeJSON(w, http.StatusUnsupportedMediaType,
			ErrorResponse{Error: ErrorDetail{Code: "unsupported_media_type", Message: "file is not an image"}})
		return
	}

	writeJSON(w, http.StatusOK, ImageResponse{
		DataURI:     domain.ImageDataURI(ct, data),
		ContentType: ct,
		Size:        len(data),
	})
}
