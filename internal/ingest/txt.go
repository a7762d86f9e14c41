package ingest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/elephantfactory/promogen/internal/common"
)

// readTxt decodes UTF-8 plain text. Invalid encodings are an input-read
// failure, not something to silently repair.
func readTxt(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8", common.ErrUnreadableUpload)
	}
	text := string(data)
	// Strip a BOM if an editor left one behind.
	text = strings.TrimPrefix(text, "\uFEFF")
	return text, nil
}
