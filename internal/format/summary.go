package format

import "github.com/elephantfactory/promogen/internal/entity"

// SummaryLines maps a record onto the fixed-order labeled summary. Empty
// fields are omitted entirely; when a date is present the time is appended to
// the date line instead of getting its own.
func SummaryLines(rec entity.Record) []Line {
	var lines []Line

	if rec.Title != "" {
		lines = append(lines, Line{Text: "📢 " + rec.Title, Class: EmphasisBoxed})
	}
	if rec.Date != "" {
		lines = append(lines, Line{Text: "📅 일시: " + rec.Date, Class: EmphasisHighlight})
	}
	if rec.Time != "" {
		if rec.Date == "" {
			lines = append(lines, Line{Text: "🕐 시간: " + rec.Time, Class: EmphasisHighlight})
		} else {
			lines[len(lines)-1].Text += " " + rec.Time
		}
	}
	if rec.Location != "" {
		lines = append(lines, Line{Text: "📍 " + rec.Location, Class: EmphasisHighlight})
	}
	if rec.Target != "" {
		lines = append(lines, Line{Text: "👥 " + rec.Target, Class: EmphasisBoxed})
	}
	if rec.HowToApply != "" {
		lines = append(lines, Line{Text: "✍️ " + rec.HowToApply, Class: EmphasisBoxed})
	}
	if rec.Contact != "" {
		lines = append(lines, Line{Text: "📞 " + rec.Contact, Class: EmphasisHighlight})
	}
	return lines
}

// Summarize returns the summary as a newline-joined string.
func Summarize(rec entity.Record) string {
	return Text(SummaryLines(rec))
}
