// Package ingest turns uploaded office documents into plain text. Format
// parsing is dispatch-by-extension; each reader concatenates the document's
// visible text with newlines. A document that cannot be read aborts only the
// request that carried it.
package ingest

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/common"
)

// ReadDocument extracts plain text from an uploaded document. The filename is
// used only for extension dispatch.
func ReadDocument(filename string, data []byte) (string, error) {
	ext := constants.NormalizeExt(filepath.Ext(filename))
	switch ext {
	case "docx":
		return readDocx(data)
	case "pdf":
		return readPDF(data)
	case "txt":
		return readTxt(data)
	case "hwp":
		return readHWP(data)
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
}

// Allowed reports whether the extension is accepted for upload.
func Allowed(filename string) bool {
	ext := constants.NormalizeExt(filepath.Ext(filename))
	_, ok := constants.AllowedExtensions[ext]
	return ok
}

// HashDocument returns the sha256 content hash used for upload dedup.
func HashDocument(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// Ext returns the normalized extension of a filename.
func Ext(filename string) string {
	return constants.NormalizeExt(filepath.Ext(filename))
}

// joinNonEmpty joins parts with newlines, skipping empties.
func joinNonEmpty(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
