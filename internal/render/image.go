package render

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"unicode"

	"github.com/fogleman/gg"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/format"
	"github.com/elephantfactory/promogen/internal/theme"
)

// RenderImage draws the title/content composition onto a PNG canvas for the
// given profile. Content is capped at Layout.MaxLines entries (blank lines
// count against the cap but are not drawn). The result is a pure function of
// (title, lines, profile, theme): rendering twice yields identical bytes.
func RenderImage(title string, lines []format.Line, profile constants.Profile, th theme.Theme) ([]byte, error) {
	lo, err := LayoutFor(profile)
	if err != nil {
		return nil, err
	}

	fonts := ResolveFont(th.FontPaths, nil)
	dc := gg.NewContext(lo.W, lo.H)

	dc.SetHexColor("#FFFFFF")
	dc.Clear()

	dc.SetHexColor(th.BrandColor)
	dc.DrawRectangle(0, 0, float64(lo.W), float64(lo.HeaderH))
	dc.Fill()

	dc.SetHexColor(th.AccentColor)
	dc.DrawRectangle(0, float64(lo.H-lo.FooterH), float64(lo.W), float64(lo.FooterH))
	dc.Fill()

	drawLogo(dc, th.Logo, float64(lo.LogoMargin), float64(lo.LogoMargin), lo.LogoW)

	drawTitle(dc, fonts, lo, th, title)
	drawContent(dc, fonts, lo, th, lines)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawTitle(dc *gg.Context, fonts *FontSet, lo Layout, th theme.Theme, title string) {
	clean := truncateRunes(stripDecorations(title), lo.TitleMaxRunes)
	if clean == "" {
		return
	}
	dc.SetFontFace(fonts.Face(lo.TitleSize))
	dc.SetHexColor(th.TextColor)
	x := float64(lo.W) / 2
	y := float64(lo.TitleY)
	// Faux bold: most candidate fonts ship a single weight.
	dc.DrawStringAnchored(clean, x, y, 0.5, 0.5)
	dc.DrawStringAnchored(clean, x+1, y, 0.5, 0.5)
}

func drawContent(dc *gg.Context, fonts *FontSet, lo Layout, th theme.Theme, lines []format.Line) {
	dc.SetFontFace(fonts.Face(lo.BodySize))
	y := float64(lo.ContentY)

	for i, line := range lines {
		if i >= lo.MaxLines {
			break
		}
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}

		switch line.Class {
		case format.EmphasisHighlight:
			drawBoxedLine(dc, lo, th, line, y, th.HighlightFill, th.HighlightBorder)
		case format.EmphasisBoxed:
			drawBoxedLine(dc, lo, th, line, y, th.BoxFill, th.BoxBorder)
		default:
			plain := truncateRunes(stripPlainLine(text), lo.PlainMaxRunes)
			dc.SetHexColor(th.TextColor)
			dc.DrawString(plain, float64(lo.BoxInset+20), y)
		}
		y += float64(lo.LineH)
	}
}

func drawBoxedLine(dc *gg.Context, lo Layout, th theme.Theme, line format.Line, y float64, fill, border string) {
	x1 := float64(lo.BoxInset)
	x2 := float64(lo.W - lo.BoxInset)
	top := y - float64(lo.BoxPad) - lo.BodySize
	h := float64(lo.LineH) - float64(lo.BoxPad)

	dc.DrawRectangle(x1, top, x2-x1, h)
	dc.SetHexColor(fill)
	dc.FillPreserve()
	dc.SetHexColor(border)
	dc.SetLineWidth(2)
	dc.Stroke()

	text := truncateRunes(line.Body(), lo.BoxedMaxRunes)
	dc.SetHexColor(th.TextColor)
	dc.DrawString(text, x1+60, y)
	dc.DrawString(text, x1+61, y)
}

// drawLogo scales and places the logo top-left. Any decode failure is
// tolerated: the artifact just ships without the logo.
func drawLogo(dc *gg.Context, logo *theme.Logo, x, y float64, targetW int) {
	if logo == nil {
		return
	}
	img, _, err := image.Decode(bytes.NewReader(logo.Data))
	if err != nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	scale := float64(targetW) / float64(b.Dx())
	dc.Push()
	dc.ScaleAbout(scale, scale, x, y)
	dc.DrawImageAnchored(img, int(x), int(y), 0, 0)
	dc.Pop()
}

// stripDecorations keeps word characters, spaces and Hangul; everything
// decorative around the title goes away.
func stripDecorations(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// stripPlainLine keeps word characters plus the punctuation that shows up in
// schedules (colon, slash, dash).
func stripPlainLine(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			r == ':' || r == '/' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
