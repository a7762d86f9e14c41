package entity

// Record is the flat result of field extraction from a source document.
//
// Every field defaults to the empty string; absence is represented by
// emptiness, never by a pointer or sentinel. Location, Target, Contact and
// HowToApply hold the entire matching line, not a cleaned value. Content is
// always the line-normalized join of the input, whatever else was found.
// A Record is built once per document and is read-only afterwards.
type Record struct {
	Title      string `json:"title"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Location   string `json:"location"`
	Target     string `json:"target"`
	Contact    string `json:"contact"`
	HowToApply string `json:"how_to_apply"`
	Content    string `json:"content"`
}

// IsEmpty reports whether extraction found nothing beyond the raw content.
func (r Record) IsEmpty() bool {
	return r.Title == "" && r.Date == "" && r.Time == "" &&
		r.Location == "" && r.Target == "" && r.Contact == "" && r.HowToApply == ""
}
