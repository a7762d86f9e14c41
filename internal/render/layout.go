package render

import (
	"fmt"

	"github.com/elephantfactory/promogen/constants"
)

// Layout is the resolved zone geometry for one profile. It is a pure function
// of the profile dimensions, which keeps rendering deterministic and the
// geometry testable without drawing anything.
type Layout struct {
	W, H int

	HeaderH int // brand bar across the top
	FooterH int // accent bar across the bottom (raster only)

	LogoMargin int
	LogoW      int // target logo width, aspect preserved

	TitleY    int // title baseline anchor
	TitleSize float64

	ContentY int // first content line
	LineH    int
	BodySize float64

	BoxInset int // left/right inset of emphasis boxes
	BoxPad   int // vertical padding above the text inside a box

	MaxLines      int
	TitleMaxRunes int
	BoxedMaxRunes int
	PlainMaxRunes int
}

// LayoutFor derives the zone geometry for a profile.
func LayoutFor(p constants.Profile) (Layout, error) {
	d, ok := constants.ProfileDimensions(p)
	if !ok {
		return Layout{}, fmt.Errorf("unknown profile %q", p)
	}
	w, h := d.Width, d.Height

	headerFrac := 0.15
	if p == constants.ProfileCard {
		// The tall profile trades header for content room.
		headerFrac = 0.12
	}

	return Layout{
		W:             w,
		H:             h,
		HeaderH:       int(float64(h) * headerFrac),
		FooterH:       int(float64(h) * 0.05),
		LogoMargin:    30,
		LogoW:         int(float64(w) * 0.3),
		TitleY:        int(float64(h) * 0.2),
		TitleSize:     float64(h) * 0.05,
		ContentY:      int(float64(h) * 0.35),
		LineH:         int(float64(h) * 0.06),
		BodySize:      float64(h) * 0.03,
		BoxInset:      50,
		BoxPad:        10,
		MaxLines:      10,
		TitleMaxRunes: 50,
		BoxedMaxRunes: 50,
		PlainMaxRunes: 60,
	}, nil
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
