package ingest

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/unicode"

	"github.com/elephantfactory/promogen/internal/common"
)

// readHWP extracts text from a binary HWP v5 document. The file is an OLE
// compound container; every stream under BodyText holds one section,
// raw-deflated, with UTF-16LE text interleaved with control records. The
// control noise is dealt with by keeping only Korean/Latin/digit/basic
// punctuation and collapsing the leftover whitespace.
func readHWP(data []byte) (string, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: open compound file: %v", common.ErrUnreadableUpload, err)
	}

	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

	var sections []string
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if len(entry.Path) == 0 || entry.Path[0] != "BodyText" {
			continue
		}
		raw, rerr := io.ReadAll(doc)
		if rerr != nil || len(raw) == 0 {
			continue
		}
		inflated, ierr := io.ReadAll(flate.NewReader(bytes.NewReader(raw)))
		if ierr != nil || len(inflated) == 0 {
			// Uncompressed documents store sections as-is.
			inflated = raw
		}
		decoded, derr := utf16le.Bytes(inflated)
		if derr != nil {
			continue
		}
		if text := cleanHWPText(string(decoded)); text != "" {
			sections = append(sections, text)
		}
	}

	if len(sections) == 0 {
		return "", fmt.Errorf("%w: no readable BodyText sections", common.ErrUnreadableUpload)
	}
	return strings.Join(sections, "\n"), nil
}

var hwpSpaceRuns = regexp.MustCompile(`[ \t]+`)
var hwpLineRuns = regexp.MustCompile(`\s*\n\s*`)

// cleanHWPText drops everything outside Korean, Latin, digits and basic
// punctuation, then collapses whitespace runs.
func cleanHWPText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0xAC00 && r <= 0xD7A3: // Hangul syllables
			b.WriteRune(r)
		case r >= 0x3130 && r <= 0x318F: // Hangul compatibility jamo
			b.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune(".,:;!?()[]%-/~·&+", r):
			b.WriteRune(r)
		case r == '\n' || r == '\r':
			b.WriteByte('\n')
		case r == ' ' || r == '\t':
			b.WriteByte(' ')
		default:
			// Control records and anything else become separators.
			b.WriteByte(' ')
		}
	}
	out := hwpSpaceRuns.ReplaceAllString(b.String(), " ")
	out = hwpLineRuns.ReplaceAllString(out, "\n")
	return strings.TrimSpace(out)
}
