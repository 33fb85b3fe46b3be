package imaging

import (
	"encoding/base64"
	"testing"

	"github.com/dmitrijs2005/docsync/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64Compressor_DetectsJPEG(t *testing.T) {
	raw := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)

	data, mime, err := NewBase64Compressor().Compress(raw)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	decoded, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestBase64Compressor_UnknownBytes(t *testing.T) {
	_, mime, err := NewBase64Compressor().Compress([]byte("plain text payload"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", mime)
}

func TestBase64Compressor_EmptyInput(t *testing.T) {
	_, _, err := NewBase64Compressor().Compress(nil)
	require.ErrorIs(t, err, common.ErrValidation)
}
