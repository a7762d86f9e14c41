package constants

// Language is a translation target code.
type Language string

const (
	LangKorean     Language = "ko"
	LangEnglish    Language = "en"
	LangJapanese   Language = "ja"
	LangChinese    Language = "zh-CN"
	LangVietnamese Language = "vi"
	LangRussian    Language = "ru"
	LangUzbek      Language = "uz"
	LangSinhala    Language = "si"
)

// SourceLanguage is the fixed source language for all translation calls.
const SourceLanguage = LangKorean

// languageNames holds the display names shown in the UI and used in bundle sheets.
var languageNames = map[Language]string{
	LangKorean:     "한국어",
	LangEnglish:    "English",
	LangJapanese:   "日本語",
	LangChinese:    "中文(简体)",
	LangVietnamese: "Tiếng Việt",
	LangRussian:    "Русский",
	LangUzbek:      "O'zbek",
	LangSinhala:    "සිංහල",
}

var allLanguages = []Language{
	LangKorean,
	LangEnglish,
	LangJapanese,
	LangChinese,
	LangVietnamese,
	LangRussian,
	LangUzbek,
	LangSinhala,
}

// Languages returns the supported target languages in display order.
func Languages() []Language {
	out := make([]Language, len(allLanguages))
	copy(out, allLanguages)
	return out
}

// LanguageName returns the display name for a code, or the code itself
// when the language is unknown.
func LanguageName(code Language) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return string(code)
}

// IsLanguage reports whether code is one of the supported targets.
func IsLanguage(code Language) bool {
	_, ok := languageNames[code]
	return ok
}
