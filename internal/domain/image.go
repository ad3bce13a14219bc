package domain

import (
	"encoding/base64"
	"strings"
)

// ImageDataURI encodes raw image bytes as a self-contained data URI, the
// form in which every photo field of the trip is stored.
func ImageDataURI(contentType string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(contentType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(contentType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// IsImageContentType reports whether ct is an image/* media type.
func IsImageContentType(ct string) bool {
	return strings.HasPrefix(ct, "image/")
}
