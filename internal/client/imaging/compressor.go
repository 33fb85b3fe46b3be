// Package imaging defines the image-compression collaborator consumed by
// the capture flow. The quality and dimension policy lives outside the
// sync core; implementations only have to be deterministic pure functions
// from raw bytes to an encoded payload plus its content type.
package imaging

import (
	"encoding/base64"
	"net/http"

	"github.com/dmitrijs2005/docsync/internal/common"
)

// Compressor turns raw image bytes into a transportable encoded string and
// a mime type.
type Compressor interface {
	Compress(raw []byte) (data string, mimeType string, err error)
}

// Base64Compressor is the default collaborator: it detects the content type
// and base64-encodes the bytes unchanged.
type Base64Compressor struct{}

func NewBase64Compressor() *Base64Compressor {
	return &Base64Compressor{}
}

func (c *Base64Compressor) Compress(raw []byte) (string, string, error) {
	if len(raw) == 0 {
		return "", "", common.ErrValidation
	}
	mimeType := http.DetectContentType(raw)
	return base64.StdEncoding.EncodeToString(raw), mimeType, nil
}
