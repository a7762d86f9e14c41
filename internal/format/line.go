// Package format turns an extracted Record into display text: a labeled
// summary and a promotional rewrite. Each produced line carries an emphasis
// class so renderers style lines without ever pattern-matching on glyphs.
package format

import "strings"

// EmphasisClass drives a content line's rendering style.
type EmphasisClass int

const (
	// EmphasisPlain renders as regular text.
	EmphasisPlain EmphasisClass = iota
	// EmphasisBoxed renders bold inside a neutral box.
	EmphasisBoxed
	// EmphasisHighlight renders bold inside a highlight box; used for the
	// key-information lines (date, location, contact, confirmation).
	EmphasisHighlight
)

// Line is one formatted output line with its emphasis class.
type Line struct {
	Text  string
	Class EmphasisClass
}

// Text joins lines back into the plain string form.
func Text(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// highlightMarkers prefix the key-information lines.
var highlightMarkers = []string{"📅", "🕐", "📍", "📞", "✅"}

// boxedMarkers prefix the remaining emphasized lines.
var boxedMarkers = []string{"📢", "👥", "✍️", "💙", "🎉", "🎊", "📚", "🙌", "✨"}

// classOf classifies a single line by its leading marker. Kept inside this
// package so glyph knowledge never leaks into renderers.
func classOf(text string) EmphasisClass {
	trimmed := strings.TrimSpace(text)
	for _, m := range highlightMarkers {
		if strings.HasPrefix(trimmed, m) {
			return EmphasisHighlight
		}
	}
	for _, m := range boxedMarkers {
		if strings.HasPrefix(trimmed, m) {
			return EmphasisBoxed
		}
	}
	return EmphasisPlain
}

// Body returns the line text without its leading marker glyph, for renderers
// whose fonts have no emoji coverage. Glyph knowledge stays in this package.
func (l Line) Body() string {
	trimmed := strings.TrimSpace(l.Text)
	for _, m := range highlightMarkers {
		if strings.HasPrefix(trimmed, m) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, m))
		}
	}
	for _, m := range boxedMarkers {
		if strings.HasPrefix(trimmed, m) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, m))
		}
	}
	return trimmed
}

// Relabel rebuilds classed lines for text derived from a classed original,
// typically machine-translated output. When the line count is preserved the
// original classes carry over positionally; otherwise each line is classified
// by its leading marker, which survives translation.
func Relabel(text string, ref []Line) []Line {
	split := strings.Split(text, "\n")
	out := make([]Line, len(split))
	positional := len(split) == len(ref)
	for i, s := range split {
		if positional {
			out[i] = Line{Text: s, Class: ref[i].Class}
			continue
		}
		out[i] = Line{Text: s, Class: classOf(s)}
	}
	return out
}
