package format

import (
	"strings"

	"github.com/elephantfactory/promogen/internal/entity"
)

// Fixed promotional copy. Hook selection checks the content keywords in this
// exact order; the first hit wins.
const (
	defaultPromoTitle = "🎉 코끼리공장에서 알려드립니다! 🎉"
	defaultHook       = "코끼리공장에서 이주민 여러분을 위한 프로그램을 준비했습니다! 💙"
	educationHook     = "이주민을 위한 무료 교육 프로그램에 참여하세요! 📚"
	recruitmentHook   = "여러분의 참여를 기다립니다! 함께해요! 🙌"
	eventHook         = "즐거운 행사에 여러분을 초대합니다! 🎊"
	defaultApplyLine  = "✅ 지금 바로 신청하세요!"
	closingAppeal     = "💙 많은 참여 바랍니다! 💙"
)

// PromoLines rewrites a record as promotional copy. The structure, the blank
// separators, the prefix stripping and the omission rules are a fixed contract
// shared with the published material, so every step here is deliberate.
func PromoLines(rec entity.Record) []Line {
	var lines []Line
	blank := func() { lines = append(lines, Line{Class: EmphasisPlain}) }

	if rec.Title != "" {
		title := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(rec.Title, "안내", ""), "공고", ""))
		lines = append(lines, Line{Text: "🎉 " + title + " 🎉", Class: EmphasisBoxed})
	} else {
		lines = append(lines, Line{Text: defaultPromoTitle, Class: EmphasisBoxed})
	}
	blank()

	lines = append(lines, Line{Text: hookFor(rec.Content), Class: EmphasisPlain})
	blank()

	if rec.Date != "" || rec.Time != "" {
		lines = append(lines, Line{
			Text:  strings.TrimSpace("📅 " + strings.TrimSpace(rec.Date+" "+rec.Time)),
			Class: EmphasisHighlight,
		})
	}
	if rec.Location != "" {
		loc := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(rec.Location, "장소:", ""), "장소", ""))
		lines = append(lines, Line{Text: "📍 " + loc, Class: EmphasisHighlight})
	}
	blank()

	if rec.HowToApply != "" {
		apply := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(rec.HowToApply, "신청:", ""), "신청", ""))
		lines = append(lines, Line{Text: "✅ " + apply, Class: EmphasisHighlight})
	} else {
		lines = append(lines, Line{Text: defaultApplyLine, Class: EmphasisHighlight})
	}
	if rec.Contact != "" {
		lines = append(lines, Line{Text: "📞 " + rec.Contact, Class: EmphasisHighlight})
	}
	blank()

	lines = append(lines, Line{Text: closingAppeal, Class: EmphasisBoxed})
	return lines
}

// Promotify returns the promotional text as a newline-joined string.
func Promotify(rec entity.Record) string {
	return Text(PromoLines(rec))
}

func hookFor(content string) string {
	switch {
	case strings.Contains(content, "교육"):
		return educationHook
	case strings.Contains(content, "모집"):
		return recruitmentHook
	case strings.Contains(content, "행사"):
		return eventHook
	default:
		return defaultHook
	}
}
