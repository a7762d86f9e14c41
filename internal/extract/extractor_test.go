package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNotice(t *testing.T) {
	text := `한국어교육 프로그램 안내

일시: 2025년 1월 15일 오후 2시
장소: 코끼리공장 교육실
대상: 관내 거주 이주민
신청: 방문 접수
문의: 052-123-4567`

	rec := Extract(text)

	assert.Equal(t, "한국어교육 프로그램 안내", rec.Title)
	assert.Equal(t, "2025년 1월 15일", rec.Date)
	// The 시 in 일시 has no digit before it; the hour match is the bare "2시".
	assert.Equal(t, "2시", rec.Time)
	assert.Equal(t, "장소: 코끼리공장 교육실", rec.Location)
	assert.Equal(t, "대상: 관내 거주 이주민", rec.Target)
	assert.Equal(t, "신청: 방문 접수", rec.HowToApply)
	assert.Equal(t, "문의: 052-123-4567", rec.Contact)
	assert.False(t, rec.IsEmpty())
}

func TestExtractEmpty(t *testing.T) {
	rec := Extract("")
	assert.True(t, rec.IsEmpty())
	assert.Equal(t, "", rec.Content)
}

func TestNormalizeLines(t *testing.T) {
	lines := NormalizeLines("  첫 줄  \n\n\t둘째 줄\n   \n")
	require.Equal(t, []string{"첫 줄", "둘째 줄"}, lines)
}

func TestFindTitle(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "first line wins without keywords",
			lines: []string{"우리 동네 바자회 소식입니다", "둘째 줄"},
			want:  "우리 동네 바자회 소식입니다",
		},
		{
			name:  "short first line skipped, keyword line taken",
			lines: []string{"공지", "3월 문화 교육 프로그램 안내", "본문"},
			want:  "3월 문화 교육 프로그램 안내",
		},
		{
			name:  "keyword line outside scan window ignored",
			lines: []string{"하나", "둘", "셋", "넷", "다섯", "여섯 번째 줄의 모집 안내문"},
			want:  "",
		},
		{
			name:  "later line without keyword skipped",
			lines: []string{"짧음", "그냥 길기만 한 본문 문장입니다", "참가자 모집 안내"},
			want:  "참가자 모집 안내",
		},
		{
			name:  "all lines too short",
			lines: []string{"하나", "둘"},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findTitle(tt.lines))
		})
	}
}

func TestFindFirstPatternDates(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"korean full date", "일시: 2025년 1월 15일", "2025년 1월 15일"},
		{"dotted date", "접수 마감 2025.03.01", "2025.03.01"},
		{"month day only", "3월 5일에 진행합니다", "3월 5일"},
		// The month/day pattern runs before the slash pattern and grabs the
		// tail of the year first. Pinned, not endorsed.
		{"slash date", "2025/3/4 기준", "25/3"},
		{"no date", "날짜 미정", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findFirstPattern([]string{tt.line}, datePatterns))
		})
	}
}

func TestFindFirstPatternTimes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"clock form", "14:30 시작", "14:30"},
		{"hour minute form", "오후 3시 30분", "3시 30분"},
		{"hour only", "10시부터", "10시"},
		{"no time", "시간 추후 공지", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findFirstPattern([]string{tt.line}, timePatterns))
		})
	}
}

func TestFindFirstPatternLineOrder(t *testing.T) {
	// The first line with any match wins even when a later line would match
	// an earlier pattern.
	lines := []string{"3월 5일 공지", "2025년 1월 15일"}
	assert.Equal(t, "3월 5일", findFirstPattern(lines, datePatterns))
}

// The first contact-keyword line is stored whole whether or not it carries a
// phone number. A later line with the actual number never replaces it.
func TestFindContactLineKeepsFirstKeywordLine(t *testing.T) {
	lines := []string{"자세한 내용은 전화 주세요", "안내: 010-1234-5678"}
	assert.Equal(t, "자세한 내용은 전화 주세요", findContactLine(lines))
}

func TestFindContactLineWithNumber(t *testing.T) {
	lines := []string{"문의: 052-123-4567"}
	assert.Equal(t, "문의: 052-123-4567", findContactLine(lines))
}

func TestContentJoinsNormalizedLines(t *testing.T) {
	rec := Extract("첫 줄 내용입니다\n\n둘째 줄\n")
	assert.Equal(t, "첫 줄 내용입니다\n둘째 줄", rec.Content)
}
