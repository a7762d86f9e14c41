// Package extract pulls a flat Record out of unstructured Korean notice text
// using ordered keyword and pattern rules. Extraction never fails: fields that
// match nothing stay empty, and Content always carries the normalized text.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/elephantfactory/promogen/internal/entity"
)

type recordBuilder struct {
	title      string
	date       string
	time       string
	location   string
	target     string
	contact    string
	howToApply string
}

// NormalizeLines splits text into lines, trims surrounding whitespace and
// drops blank lines.
func NormalizeLines(text string) []string {
	raw := strings.Split(strings.TrimSpace(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Extract scans the text and returns the extracted Record.
func Extract(text string) entity.Record {
	lines := NormalizeLines(text)
	var b recordBuilder

	b.title = findTitle(lines)
	b.date = findFirstPattern(lines, datePatterns)
	b.time = findFirstPattern(lines, timePatterns)

	for _, rule := range lineRules {
		if line := findKeywordLine(lines, rule.keywords); line != "" {
			rule.assign(&b, line)
		}
	}
	b.contact = findContactLine(lines)

	return entity.Record{
		Title:      b.title,
		Date:       b.date,
		Time:       b.time,
		Location:   b.location,
		Target:     b.target,
		Contact:    b.contact,
		HowToApply: b.howToApply,
		Content:    strings.Join(lines, "\n"),
	}
}

// findTitle scans at most the first titleScanLines lines and picks the first
// line longer than titleMinRunes that carries a title keyword, or the very
// first line regardless of keywords.
func findTitle(lines []string) string {
	for i, line := range lines {
		if i >= titleScanLines {
			break
		}
		if utf8.RuneCountInString(line) <= titleMinRunes {
			continue
		}
		if i == 0 || containsAny(line, titleKeywords) {
			return line
		}
	}
	return ""
}

// findFirstPattern returns the full matched text of the first pattern that
// matches on the first line yielding any match.
func findFirstPattern(lines []string, patterns []*regexp.Regexp) string {
	for _, line := range lines {
		for _, p := range patterns {
			if m := p.FindString(line); m != "" {
				return m
			}
		}
	}
	return ""
}

func findKeywordLine(lines []string, keywords []string) string {
	for _, line := range lines {
		if containsAny(line, keywords) {
			return line
		}
	}
	return ""
}

// findContactLine stores the whole first line holding a contact keyword. The
// phone patterns are evaluated only to confirm a number is present; the match
// itself is discarded and the line is stored as-is in both cases.
func findContactLine(lines []string) string {
	for _, line := range lines {
		if !containsAny(line, contactKeywords) {
			continue
		}
		for _, p := range phonePatterns {
			if p.MatchString(line) {
				return line
			}
		}
		return line
	}
	return ""
}

func containsAny(line string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
