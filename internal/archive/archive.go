// Package archive assembles a finished generation run into one downloadable
// zip bundle with Korean-named folders.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/entity"
	"github.com/elephantfactory/promogen/internal/render"
)

// Bundle is everything the pipeline produced for one document.
type Bundle struct {
	SourceText   string
	Record       entity.Record
	Summary      string
	PromoKorean  string
	Translations map[constants.Language]string
	Languages    []constants.Language
	Artifacts    []render.Artifact
}

// Builder writes bundles.
type Builder struct {
	log *slog.Logger
}

func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{log: logger}
}

// Build returns the zip bytes for a bundle.
func (b *Builder) Build(bundle Bundle) ([]byte, error) {
	start := time.Now()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	writeText := func(name, content string) error {
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		return nil
	}

	if err := writeText("원문.txt", bundle.SourceText); err != nil {
		return nil, err
	}
	if err := writeText("요약.txt", bundle.Summary); err != nil {
		return nil, err
	}
	if err := writeText("홍보문_한국어.txt", bundle.PromoKorean); err != nil {
		return nil, err
	}

	// Translations in the request's language order.
	for _, lang := range bundle.Languages {
		text, ok := bundle.Translations[lang]
		if !ok {
			continue
		}
		name := fmt.Sprintf("번역문/홍보문_%s.txt", constants.LanguageName(lang))
		if err := writeText(name, text); err != nil {
			return nil, err
		}
	}

	for _, art := range bundle.Artifacts {
		dir, ok := artifactDir(art.Kind)
		if !ok {
			continue
		}
		f, err := zw.Create(dir + "/" + art.Name)
		if err != nil {
			return nil, fmt.Errorf("create artifact %s: %w", art.Name, err)
		}
		if _, err := f.Write(art.Data); err != nil {
			return nil, fmt.Errorf("write artifact %s: %w", art.Name, err)
		}
	}

	overview, err := b.overviewXLSX(bundle)
	if err != nil {
		return nil, err
	}
	f, err := zw.Create("개요.xlsx")
	if err != nil {
		return nil, fmt.Errorf("create overview: %w", err)
	}
	if _, err := f.Write(overview); err != nil {
		return nil, fmt.Errorf("write overview: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close bundle: %w", err)
	}

	b.log.Info("archive.build.ok",
		"languages", len(bundle.Languages),
		"artifacts", len(bundle.Artifacts),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func artifactDir(k render.Kind) (string, bool) {
	switch k {
	case render.KindImage:
		return "이미지", true
	case render.KindDeck:
		return "PPT", true
	case render.KindCard:
		return "카드뉴스", true
	default:
		return "", false
	}
}

// overviewXLSX writes the 개요 sheet: extracted fields on top, then language
// coverage, then an artifact inventory.
func (b *Builder) overviewXLSX(bundle Bundle) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "개요"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, 1, "항목")
	write(2, 1, "내용")

	rows := []struct {
		label string
		value string
	}{
		{"제목", bundle.Record.Title},
		{"날짜", bundle.Record.Date},
		{"시간", bundle.Record.Time},
		{"장소", bundle.Record.Location},
		{"대상", bundle.Record.Target},
		{"신청 방법", bundle.Record.HowToApply},
		{"연락처", bundle.Record.Contact},
	}
	row := 2
	for _, r := range rows {
		write(1, row, r.label)
		write(2, row, r.value)
		row++
	}

	row++
	write(1, row, "번역 언어")
	names := ""
	for i, lang := range bundle.Languages {
		if i > 0 {
			names += ", "
		}
		names += constants.LanguageName(lang)
	}
	write(2, row, names)
	row++

	counts := map[render.Kind]int{}
	for _, art := range bundle.Artifacts {
		counts[art.Kind]++
	}
	write(1, row, "이미지 수")
	write(2, row, counts[render.KindImage])
	row++
	write(1, row, "PPT 수")
	write(2, row, counts[render.KindDeck])
	row++
	write(1, row, "카드뉴스 수")
	write(2, row, counts[render.KindCard])

	_ = f.SetColWidth(sheet, "A", "A", 16)
	_ = f.SetColWidth(sheet, "B", "B", 60)

	out, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return out.Bytes(), nil
}
