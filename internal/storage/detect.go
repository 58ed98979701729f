package storage

import (
	"bytes"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLen = 3072

// DetectContentType resolves the effective MIME type of an upload.
// A concrete declared type is trusted as-is; only when the client sent
// nothing or the generic application/octet-stream is the content sniffed.
// Returns the resolved type and a reader equivalent to the original data.
func DetectContentType(declared string, data io.Reader) (string, io.Reader, error) {
	declared = strings.TrimSpace(declared)
	if trimmed, _, ok := strings.Cut(declared, ";"); ok {
		declared = strings.TrimSpace(trimmed)
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared, data, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(data, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", nil, err
	}
	head = head[:n]

	restored := io.MultiReader(bytes.NewReader(head), data)

	mtype := mimetype.Detect(head)
	if mtype == nil {
		return "application/octet-stream", restored, nil
	}
	return mtype.String(), restored, nil
}

// ExtensionFor returns the canonical file extension (with dot) for a MIME
// type, or "" when none is known.
func ExtensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/avif":
		return ".avif"
	case "image/heic":
		return ".heic"
	case "image/heif":
		return ".heif"
	case "application/pdf":
		return ".pdf"
	}
	if mtype := mimetype.Lookup(contentType); mtype != nil {
		return mtype.Extension()
	}
	return ""
}
