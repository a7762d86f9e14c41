package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fogleman/gg"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/entity"
	"github.com/elephantfactory/promogen/internal/theme"
)

// Card-news sequence: a cover plus three content cards, all square, built
// straight from the record. The sequence is monolingual: translated body text
// never feeds the cards, a language tag only ever names the files.

const (
	cardSize      = 1080
	cardWrapRunes = 15

	captionSchedule = "일정 및 장소"
	captionApply    = "신청 방법"
	captionContact  = "문의"
	cardClosing     = "많은 참여 바랍니다!"
)

// RenderCardSequence renders the fixed four-card sequence for a record.
func RenderCardSequence(rec entity.Record, th theme.Theme) ([]Artifact, error) {
	fonts := ResolveFont(th.FontPaths, nil)

	cards := []struct {
		name string
		draw func(*gg.Context)
	}{
		{"cover", func(dc *gg.Context) { drawCover(dc, fonts, th, rec) }},
		{"schedule", func(dc *gg.Context) { drawScheduleCard(dc, fonts, th, rec) }},
		{"apply", func(dc *gg.Context) { drawApplyCard(dc, fonts, th, rec) }},
		{"contact", func(dc *gg.Context) { drawContactCard(dc, fonts, th, rec) }},
	}

	out := make([]Artifact, 0, len(cards))
	for i, c := range cards {
		dc := gg.NewContext(cardSize, cardSize)
		dc.SetHexColor("#FFFFFF")
		dc.Clear()
		c.draw(dc)

		var buf bytes.Buffer
		if err := dc.EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("encode card %d: %w", i+1, err)
		}
		out = append(out, Artifact{
			Name:    fmt.Sprintf("card_%d_%s.png", i+1, c.name),
			Kind:    KindCard,
			Lang:    constants.SourceLanguage,
			Profile: constants.ProfileSocial,
			Data:    buf.Bytes(),
		})
	}
	return out, nil
}

func drawCover(dc *gg.Context, fonts *FontSet, th theme.Theme, rec entity.Record) {
	w, h := float64(cardSize), float64(cardSize)

	dc.SetHexColor(th.BrandColor)
	dc.DrawRectangle(0, 0, w, h*0.25)
	dc.Fill()
	dc.SetHexColor(th.AccentColor)
	dc.DrawRectangle(0, h*0.95, w, h*0.05)
	dc.Fill()

	drawLogo(dc, th.Logo, 30, 30, int(w*0.25))

	title := stripDecorations(rec.Title)
	if title == "" {
		title = "코끼리공장 소식"
	}
	dc.SetFontFace(fonts.Face(h * 0.055))
	dc.SetHexColor(th.TextColor)
	y := h * 0.45
	for _, seg := range wrapRunes(title, cardWrapRunes) {
		dc.DrawStringAnchored(seg, w/2, y, 0.5, 0.5)
		dc.DrawStringAnchored(seg, w/2+1, y, 0.5, 0.5)
		y += h * 0.09
	}
}

func drawScheduleCard(dc *gg.Context, fonts *FontSet, th theme.Theme, rec entity.Record) {
	drawCardHeader(dc, fonts, th, captionSchedule)

	entries := make([]string, 0, 3)
	if rec.Date != "" {
		entries = append(entries, rec.Date)
	}
	if rec.Time != "" {
		entries = append(entries, rec.Time)
	}
	if rec.Location != "" {
		entries = append(entries, stripPlainLine(rec.Location))
	}
	drawCardEntries(dc, fonts, th, entries)
	drawPageIndicator(dc, fonts, th, "1/3")
}

func drawApplyCard(dc *gg.Context, fonts *FontSet, th theme.Theme, rec entity.Record) {
	drawCardHeader(dc, fonts, th, captionApply)

	entries := make([]string, 0, 2)
	if rec.Target != "" {
		entries = append(entries, stripPlainLine(rec.Target))
	}
	if rec.HowToApply != "" {
		apply := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(rec.HowToApply, "신청:", ""), "신청", ""))
		entries = append(entries, stripPlainLine(apply))
	}
	drawCardEntries(dc, fonts, th, entries)
	drawPageIndicator(dc, fonts, th, "2/3")
}

func drawContactCard(dc *gg.Context, fonts *FontSet, th theme.Theme, rec entity.Record) {
	drawCardHeader(dc, fonts, th, captionContact)

	entries := make([]string, 0, 2)
	if rec.Contact != "" {
		entries = append(entries, stripPlainLine(rec.Contact))
	}
	entries = append(entries, cardClosing)
	drawCardEntries(dc, fonts, th, entries)

	if th.Logo != nil {
		w, h := float64(cardSize), float64(cardSize)
		logoW := int(w * 0.2)
		drawLogo(dc, th.Logo, w/2-float64(logoW)/2, h*0.78, logoW)
	}
	drawPageIndicator(dc, fonts, th, "3/3")
}

func drawCardHeader(dc *gg.Context, fonts *FontSet, th theme.Theme, caption string) {
	w, h := float64(cardSize), float64(cardSize)
	dc.SetHexColor(th.BrandColor)
	dc.DrawRectangle(0, 0, w, h*0.18)
	dc.Fill()

	dc.SetFontFace(fonts.Face(h * 0.05))
	dc.SetHexColor("#FFFFFF")
	dc.DrawStringAnchored(caption, w/2, h*0.09, 0.5, 0.5)
	dc.DrawStringAnchored(caption, w/2+1, h*0.09, 0.5, 0.5)
}

// drawCardEntries lists entries with a brand-colored tab as the icon, spaced
// by a fixed vertical step.
func drawCardEntries(dc *gg.Context, fonts *FontSet, th theme.Theme, entries []string) {
	w, h := float64(cardSize), float64(cardSize)
	dc.SetFontFace(fonts.Face(h * 0.035))
	y := h * 0.35
	for _, e := range entries {
		if e == "" {
			continue
		}
		dc.SetHexColor(th.BrandColor)
		dc.DrawRectangle(w*0.08, y-h*0.02, h*0.012, h*0.04)
		dc.Fill()

		dc.SetHexColor(th.TextColor)
		dc.DrawStringAnchored(truncateRunes(e, 50), w*0.12, y, 0, 0.5)
		y += h * 0.12
	}
}

func drawPageIndicator(dc *gg.Context, fonts *FontSet, th theme.Theme, label string) {
	w, h := float64(cardSize), float64(cardSize)
	dc.SetFontFace(fonts.Face(h * 0.025))
	dc.SetHexColor(th.TextColor)
	dc.DrawStringAnchored(label, w*0.92, h*0.93, 0.5, 0.5)
}

// wrapRunes soft-wraps s into segments of at most max runes, preferring
// space boundaries.
func wrapRunes(s string, max int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var segs []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
			curLen = 0
		}
	}
	for _, word := range words {
		wl := len([]rune(word))
		if curLen > 0 && curLen+1+wl > max {
			flush()
		}
		for wl > max {
			// A single oversized word is hard-cut.
			flush()
			runes := []rune(word)
			segs = append(segs, string(runes[:max]))
			word = string(runes[max:])
			wl = len([]rune(word))
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += wl
	}
	flush()
	return segs
}
