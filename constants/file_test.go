package constants

import "testing"

func TestMapExtToFormat(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"docx", "DOCX"},
		{".docx", "DOCX"},
		{"PDF", "PDF"},
		{"txt", "TXT"},
		{"hwp", "HWP"},
		{"xlsx", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MapExtToFormat(tt.ext); got != tt.want {
			t.Errorf("MapExtToFormat(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestFileFormatsMatchAllowedExtensions(t *testing.T) {
	if len(FileFormats) != len(AllowedExtensions) {
		t.Fatalf("FileFormats has %d entries, AllowedExtensions %d",
			len(FileFormats), len(AllowedExtensions))
	}
	for ext := range AllowedExtensions {
		if MapExtToFormat(ext) == "" {
			t.Errorf("allowed extension %q has no canonical format", ext)
		}
	}
}
