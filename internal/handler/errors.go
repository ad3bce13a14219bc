package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ErrorDetail is the code and human-readable message of a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// decodeFailedMessage is what a user sees when a pasted backup code is rejected.
const decodeFailedMessage = "backup code format incorrect"

// unavailableMessage tells the user their edits are kept only for this session.
const unavailableMessage = "storage unavailable: changes are not being saved"

// notFoundBody returns an ErrorResponse for a missing item.
func notFoundBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: unwrapMessage(err)}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

// tooLargeBody returns the ErrorResponse for a body cut off by the size
// limit. The code matches the one written by middleware.NewMaxBodySizeHandler.
func tooLargeBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "body_too_large", Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.ShoppingService.Add: validation error: name: name is required."
// → "name: name is required."
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrNotFound, domain.ErrInvalidRange} {
		prefix := sentinel.Error() + ": "
		if _, after, ok := strings.Cut(msg, prefix); ok && after != "" {
			return after
		}
	}
	return msg
}

// writeError maps a service error to its status and body.
// Anything not mapped is logged and reported as 500 without details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(err))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrDecode):
		writeJSON(w, http.StatusUnprocessableEntity,
			ErrorResponse{Error: ErrorDetail{Code: "decode_error", Message: decodeFailedMessage}})
	case errors.Is(err, domain.ErrInvalidRange):
		writeJSON(w, http.StatusUnprocessableEntity,
			ErrorResponse{Error: ErrorDetail{Code: "invalid_range", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrUnavailable):
		s.log.WarnContext(r.Context(), "request served without saving",
			"path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeJSON(w, http.StatusServiceUnavailable,
			ErrorResponse{Error: ErrorDetail{Code: "storage_unavailable", Message: unavailableMessage}})
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError,
			ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
	}
}

// writeJSON writes v as the JSON body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the status line is already sent
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst. Unknown fields are ignored.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("request body is not valid JSON: " + err.Error())
	}
	return nil
}
