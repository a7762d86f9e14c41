package extract

import "regexp"

// Keyword tables and patterns used by the extractor. Matching is an ordered
// list of independent per-field rules over normalized lines; each field takes
// its first match and is never overwritten by a later rule.

// titleKeywords qualify a line within the first titleScanLines lines as a title.
var titleKeywords = []string{"안내", "공고", "모집", "프로그램", "교육"}

// titleScanLines bounds the title scan window.
const titleScanLines = 5

// titleMinRunes is the minimum title length, exclusive.
const titleMinRunes = 5

// datePatterns are tried in order per line; the first line with any match wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})[년.-]\s*(\d{1,2})[월.-]\s*(\d{1,2})일?`),
	regexp.MustCompile(`(\d{1,2})[월/]\s*(\d{1,2})일?`),
	regexp.MustCompile(`(\d{4})[./]\s*(\d{1,2})[./]\s*(\d{1,2})`),
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}):(\d{2})`),
	regexp.MustCompile(`(\d{1,2})시\s*(\d{1,2})?분?`),
}

// phonePatterns only confirm presence inside a contact line; the stored value
// is the whole line either way. The sub-match result is deliberately unused to
// keep the historical behavior (see the pinning test).
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`0\d{1,2}-\d{3,4}-\d{4}`),
	regexp.MustCompile(`\d{3}-\d{4}-\d{4}`),
	regexp.MustCompile(`010-\d{4}-\d{4}`),
}

// lineRule maps a keyword set to a record field; the entire first line
// containing any keyword is stored.
type lineRule struct {
	keywords []string
	assign   func(r *recordBuilder, line string)
}

var lineRules = []lineRule{
	{
		keywords: []string{"장소", "위치", "주소", "에서", "교육실", "강당"},
		assign:   func(r *recordBuilder, line string) { r.location = line },
	},
	{
		keywords: []string{"대상", "참가자", "신청자", "이주민", "외국인"},
		assign:   func(r *recordBuilder, line string) { r.target = line },
	},
	{
		keywords: []string{"신청", "접수", "등록", "참여방법"},
		assign:   func(r *recordBuilder, line string) { r.howToApply = line },
	},
}

// contactKeywords qualify a contact line; handled separately from lineRules
// because of the phone-pattern confirmation step.
var contactKeywords = []string{"연락", "문의", "전화"}
