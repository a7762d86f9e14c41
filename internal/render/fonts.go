package render

import (
	"log/slog"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontSet resolves faces from one parsed source font. When no candidate path
// yields a usable font, every Face call answers with the minimal built-in
// face instead of failing the render.
type FontSet struct {
	source *opentype.Font
}

// ResolveFont walks the candidate paths in order and parses the first font
// that loads. Collections (.ttc) contribute their first font.
func ResolveFont(paths []string, log *slog.Logger) *FontSet {
	if log == nil {
		log = slog.Default()
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if f, err := opentype.Parse(data); err == nil {
			return &FontSet{source: f}
		}
		if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
			if f, err := coll.Font(0); err == nil {
				return &FontSet{source: f}
			}
		}
		log.Warn("render.font.unparseable", "path", path)
	}
	log.Warn("render.font.fallback", "candidates", len(paths))
	return &FontSet{}
}

// Face returns a face at the given pixel size.
func (fs *FontSet) Face(size float64) font.Face {
	if fs.source == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(fs.source, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
