package constants

import "strings"

// FileFormats holds the allowed source document formats for generate_job rows.
var FileFormats = []string{"DOCX", "PDF", "TXT", "HWP"}

// AllowedExtensions holds the default allowed extensions for document ingestion.
var AllowedExtensions = map[string]struct{}{
	"docx": {},
	"pdf":  {},
	"txt":  {},
	"hwp":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to its canonical format string.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "docx":
		return "DOCX"
	case "pdf":
		return "PDF"
	case "txt":
		return "TXT"
	case "hwp":
		return "HWP"
	default:
		return ""
	}
}
