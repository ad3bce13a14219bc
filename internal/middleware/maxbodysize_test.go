package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/middleware"
)

// backupDecoder stands in for POST /backup: it decodes a backup code and
// answers 413 only when the body was cut off by the size limit.
type backupDecoder struct {
	called    bool
	homeImage string
}

func (d *backupDecoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	var doc struct {
		HomeImage string `json:"homeImage"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	d.homeImage = doc.HomeImage
	w.WriteHeader(http.StatusOK)
}

// backupWithPhoto returns a backup code whose cover photo is a PNG data URI
// of n bytes before encoding.
func backupWithPhoto(n int) string {
	photo := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, n)...)
	return fmt.Sprintf(`{"version":1,"homeImage":%q}`, domain.ImageDataURI("image/png", photo))
}

func postBackup(body string, contentLength int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/backup", strings.NewReader(body))
	req.ContentLength = contentLength
	return req
}

func TestMaxBodySizeHandler_BackupAtLimit_PassesThrough(t *testing.T) {
	body := backupWithPhoto(4096)
	next := &backupDecoder{}
	h := middleware.NewMaxBodySizeHandler(int64(len(body)))(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postBackup(body, int64(len(body))))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(next.homeImage, "data:image/png;base64,"))
}

func TestMaxBodySizeHandler_ContentLengthOverLimit_RejectedWithJSON(t *testing.T) {
	body := backupWithPhoto(4096)
	next := &backupDecoder{}
	h := middleware.NewMaxBodySizeHandler(int64(len(body)) - 1)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postBackup(body, int64(len(body))))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, next.called, "oversized backup must not reach the handler")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "body_too_large", resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Message)
}

// A streamed body has no Content-Length, so the cut-off happens inside the
// handler's read.
func TestMaxBodySizeHandler_StreamedBackupOneByteOver_CutOff(t *testing.T) {
	body := backupWithPhoto(4096)
	next := &backupDecoder{}
	h := middleware.NewMaxBodySizeHandler(int64(len(body)))(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postBackup(body+" ", -1))

	assert.True(t, next.called)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, next.homeImage)
}

func TestMaxBodySizeHandler_StreamedBackupUnderLimit_PassesThrough(t *testing.T) {
	body := backupWithPhoto(1024)
	next := &backupDecoder{}
	h := middleware.NewMaxBodySizeHandler(16 << 10)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postBackup(body, -1))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, next.homeImage)
}
