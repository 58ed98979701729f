package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectContentType_TrustsDeclaredType(t *testing.T) {
	ct, r, err := DetectContentType("image/png", strings.NewReader("not really a png"))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	data, _ := io.ReadAll(r)
	assert.Equal(t, "not really a png", string(data))
}

func TestDetectContentType_StripsParameters(t *testing.T) {
	ct, _, err := DetectContentType("image/jpeg; charset=utf-8", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)
}

func TestDetectContentType_SniffsWhenMissing(t *testing.T) {
	jpegHeader := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x00}, 32)...)

	for _, declared := range []string{"", "application/octet-stream"} {
		ct, r, err := DetectContentType(declared, bytes.NewReader(jpegHeader))
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", ct)

		// The sniffed prefix must still be part of the returned reader.
		data, _ := io.ReadAll(r)
		assert.Equal(t, jpegHeader, data)
	}
}

func TestDetectContentType_UnknownFallsBackToOctetStream(t *testing.T) {
	ct, _, err := DetectContentType("", bytes.NewReader([]byte{0x01, 0x02, 0x03}))
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", ct)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", ExtensionFor("image/jpeg"))
	assert.Equal(t, ".png", ExtensionFor("image/png"))
	assert.Equal(t, ".pdf", ExtensionFor("application/pdf"))
	assert.Equal(t, "", ExtensionFor("application/x-nonexistent-type"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		forced string
		want   string
	}{
		{"plain name kept", "felge.jpg", "", "felge.jpg"},
		{"path stripped", "../../etc/passwd", "", "passwd"},
		{"windows path stripped", `C:\Users\kunde\bild.png`, "", "bild.png"},
		{"spaces collapsed", "vorder rad  links.jpg", "", "vorder_rad_links.jpg"},
		{"umlauts replaced", "räder.jpg", "", "r_der.jpg"},
		{"extension forced", "upload.bin", ".jpg", "upload.jpg"},
		{"empty base gets default", "???.png", "", "datei.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in, tt.forced))
		})
	}
}
