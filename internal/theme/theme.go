// Package theme holds the brand kit applied to rendered artifacts: colors,
// font candidates and the optional logo. The logo is an explicit in-memory
// asset passed along with the theme; nothing here touches shared disk state.
package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Logo is an optional raster asset placed on artifacts. A nil *Logo simply
// means no logo is drawn.
type Logo struct {
	Data   []byte
	Format string // "png" or "jpeg"
}

// Theme is the brand kit.
type Theme struct {
	BrandColor      string   `json:"brand_color"`
	AccentColor     string   `json:"accent_color"`
	TextColor       string   `json:"text_color"`
	HighlightFill   string   `json:"highlight_fill"`
	HighlightBorder string   `json:"highlight_border"`
	BoxFill         string   `json:"box_fill"`
	BoxBorder       string   `json:"box_border"`
	FontPaths       []string `json:"font_paths"`

	Logo *Logo `json:"-"`
}

// Default returns the factory brand kit.
func Default() Theme {
	return Theme{
		BrandColor:      "#2B9FD9",
		AccentColor:     "#FF6B6B",
		TextColor:       "#333333",
		HighlightFill:   "#FFF9E6",
		HighlightBorder: "#FFD700",
		BoxFill:         "#F5F5F5",
		BoxBorder:       "#DDDDDD",
		FontPaths: []string{
			"C:\\Windows\\Fonts\\malgun.ttf",
			"/System/Library/Fonts/AppleSDGothicNeo.ttc",
			"/usr/share/fonts/truetype/nanum/NanumGothic.ttf",
		},
	}
}

// Load reads a theme JSON file, validates it against the theme schema, and
// overlays it onto the defaults so partial files work.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme file: %w", err)
	}
	if err := ValidateThemeJSON(data); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}
	t := Default()
	if err := json.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("decode theme: %w", err)
	}
	return t, nil
}

// AttachLogo decodes and attaches logo bytes. Unknown image data is rejected
// here once so renderers can treat the asset as trusted.
func (t *Theme) AttachLogo(data []byte) error {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode logo: %w", err)
	}
	if format != "png" && format != "jpeg" {
		return fmt.Errorf("unsupported logo format %q", format)
	}
	t.Logo = &Logo{Data: data, Format: format}
	return nil
}

// AttachLogoFile reads a logo from disk and attaches it. A missing file is
// not an error: the logo is optional everywhere.
func (t *Theme) AttachLogoFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read logo file: %w", err)
	}
	return t.AttachLogo(data)
}
