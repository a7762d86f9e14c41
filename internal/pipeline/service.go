// Package pipeline drives a generation run end to end: extract fields,
// format Korean copy, translate, render artifacts, and bundle the results.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/archive"
	"github.com/elephantfactory/promogen/internal/chat"
	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/entity"
	"github.com/elephantfactory/promogen/internal/extract"
	"github.com/elephantfactory/promogen/internal/format"
	"github.com/elephantfactory/promogen/internal/render"
	"github.com/elephantfactory/promogen/internal/repository"
	"github.com/elephantfactory/promogen/internal/theme"
	"github.com/elephantfactory/promogen/internal/translate"
)

const titleCapRunes = 100

// Options selects languages, canvas profiles, and artifact kinds for a run.
type Options struct {
	Languages []constants.Language
	Profiles  []constants.Profile
	Images    bool
	Decks     bool
	Cards     bool
}

// Normalize fills defaults and rejects unknown languages or profiles.
func (o *Options) Normalize() error {
	if len(o.Languages) == 0 {
		for _, lang := range constants.Languages() {
			if lang != constants.SourceLanguage {
				o.Languages = append(o.Languages, lang)
			}
		}
	}
	for _, lang := range o.Languages {
		if !constants.IsLanguage(lang) {
			return fmt.Errorf("%w: language %q", common.ErrInvalidInput, lang)
		}
	}
	if len(o.Profiles) == 0 {
		o.Profiles = []constants.Profile{constants.ProfileSocial}
	}
	for _, p := range o.Profiles {
		if !constants.IsProfile(p) {
			return fmt.Errorf("%w: profile %q", common.ErrInvalidInput, p)
		}
	}
	if !o.Images && !o.Decks && !o.Cards {
		o.Images = true
		o.Decks = true
		o.Cards = true
	}
	return nil
}

// Service orchestrates generation runs against the stores and backends.
type Service struct {
	docs       repository.DocumentRepository
	jobs       repository.JobRepository
	translator *translate.Client
	chat       *chat.Client // nil disables the refinement stage
	bundler    *archive.Builder
	theme      theme.Theme
	bundleDir  string
	log        *slog.Logger
}

func NewService(
	docs repository.DocumentRepository,
	jobs repository.JobRepository,
	translator *translate.Client,
	chatClient *chat.Client,
	bundler *archive.Builder,
	th theme.Theme,
	bundleDir string,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		docs:       docs,
		jobs:       jobs,
		translator: translator,
		chat:       chatClient,
		bundler:    bundler,
		theme:      th,
		bundleDir:  bundleDir,
		log:        logger,
	}
}

// Begin records a new running job for the document.
func (s *Service) Begin(ctx context.Context, documentID uuid.UUID, opts Options) (*entity.GenerateJob, error) {
	if err := (&opts).Normalize(); err != nil {
		return nil, err
	}
	if _, err := s.docs.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.jobs.Start(ctx, documentID, joinLanguages(opts.Languages), joinProfiles(opts.Profiles))
}

// Execute runs all stages for a started job. Failures are written back to the
// job row; the returned error mirrors the terminal state.
func (s *Service) Execute(ctx context.Context, job *entity.GenerateJob, opts Options) error {
	if err := (&opts).Normalize(); err != nil {
		return err
	}
	start := time.Now()
	s.log.Info("pipeline.run.start",
		"job_id", job.ID,
		"document_id", job.DocumentID,
		"languages", joinLanguages(opts.Languages),
		"profiles", joinProfiles(opts.Profiles),
	)

	bundlePath, err := s.run(ctx, job, opts)
	if err != nil {
		s.log.Error("pipeline.run.failed",
			"job_id", job.ID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		if ferr := s.jobs.FinishFailure(context.WithoutCancel(ctx), job.ID, err.Error()); ferr != nil {
			s.log.Error("pipeline.run.finish_failure_error", "job_id", job.ID, "error", ferr)
		}
		return err
	}

	if err := s.jobs.FinishSuccess(ctx, job.ID, bundlePath); err != nil {
		return err
	}
	s.log.Info("pipeline.run.ok",
		"job_id", job.ID,
		"bundle_path", bundlePath,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Run is the synchronous convenience used by the one-shot CLI.
func (s *Service) Run(ctx context.Context, documentID uuid.UUID, opts Options) (*entity.GenerateJob, error) {
	job, err := s.Begin(ctx, documentID, opts)
	if err != nil {
		return nil, err
	}
	if err := s.Execute(ctx, job, opts); err != nil {
		return job, err
	}
	return s.jobs.GetByID(ctx, job.ID)
}

func (s *Service) run(ctx context.Context, job *entity.GenerateJob, opts Options) (string, error) {
	// EXTRACT
	if err := s.jobs.UpdateStage(ctx, job.ID, constants.StageExtract); err != nil {
		return "", err
	}
	doc, err := s.docs.GetByID(ctx, job.DocumentID)
	if err != nil {
		return "", fmt.Errorf("load document: %w", err)
	}
	if strings.TrimSpace(doc.Text) == "" {
		return "", fmt.Errorf("%w: document %s has no text", common.ErrInvalidInput, doc.ID)
	}
	rec := extract.Extract(doc.Text)
	s.log.Info("pipeline.extract.ok",
		"job_id", job.ID,
		"title", rec.Title,
		"empty", rec.IsEmpty(),
	)

	// FORMAT
	if err := s.jobs.UpdateStage(ctx, job.ID, constants.StageFormat); err != nil {
		return "", err
	}
	summary := s.summarize(ctx, job.ID, doc, rec)
	promoLines := format.PromoLines(rec)
	promoText := format.Text(promoLines)

	// TRANSLATE
	if err := s.jobs.UpdateStage(ctx, job.ID, constants.StageTranslate); err != nil {
		return "", err
	}
	translations, err := s.translator.TranslateAll(ctx, promoText, opts.Languages)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}

	// RENDER
	if err := s.jobs.UpdateStage(ctx, job.ID, constants.StageRender); err != nil {
		return "", err
	}
	artifacts := s.renderAll(ctx, job.ID, rec, promoLines, promoText, translations, opts)

	// BUNDLE
	if err := s.jobs.UpdateStage(ctx, job.ID, constants.StageBundle); err != nil {
		return "", err
	}
	data, err := s.bundler.Build(archive.Bundle{
		SourceText:   doc.Text,
		Record:       rec,
		Summary:      summary,
		PromoKorean:  promoText,
		Translations: translations,
		Languages:    opts.Languages,
		Artifacts:    artifacts,
	})
	if err != nil {
		return "", fmt.Errorf("bundle: %w", err)
	}

	if err := os.MkdirAll(s.bundleDir, 0o755); err != nil {
		return "", fmt.Errorf("bundle dir: %w", err)
	}
	path := filepath.Join(s.bundleDir, job.ID.String()+".zip")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write bundle: %w", err)
	}
	return path, nil
}

// summarize prefers the chat backend when configured and falls back to the
// rule-based summary on any failure.
func (s *Service) summarize(ctx context.Context, jobID uuid.UUID, doc *entity.SourceDocument, rec entity.Record) string {
	if s.chat != nil {
		refined, err := s.chat.Summarize(ctx, doc.Text)
		if err == nil && refined != "" {
			return refined
		}
		if err != nil {
			s.log.Warn("pipeline.summarize.fallback", "job_id", jobID, "error", err)
		}
	}
	return format.Summarize(rec)
}

// renderAll renders every (language, profile) combination requested. A failed
// combination is logged and skipped so one bad render never fails the run.
func (s *Service) renderAll(
	ctx context.Context,
	jobID uuid.UUID,
	rec entity.Record,
	promoLines []format.Line,
	promoText string,
	translations map[constants.Language]string,
	opts Options,
) []render.Artifact {
	texts := map[constants.Language]string{constants.SourceLanguage: promoText}
	langs := []constants.Language{constants.SourceLanguage}
	for _, lang := range opts.Languages {
		if text, ok := translations[lang]; ok {
			texts[lang] = text
			langs = append(langs, lang)
		}
	}

	var refLines []format.Line
	if len(promoLines) > 1 {
		refLines = promoLines[1:]
	}

	var artifacts []render.Artifact
	for _, lang := range langs {
		if ctx.Err() != nil {
			break
		}
		title, rest := splitTitle(texts[lang])
		lines := format.Relabel(rest, refLines)
		for _, profile := range opts.Profiles {
			if opts.Images {
				data, err := render.RenderImage(title, lines, profile, s.theme)
				if err != nil {
					s.log.Warn("pipeline.render.image_failed", "job_id", jobID, "lang", lang, "profile", profile, "error", err)
				} else {
					artifacts = append(artifacts, render.Artifact{
						Name:    fmt.Sprintf("promo_%s_%s.png", lang, profile),
						Kind:    render.KindImage,
						Lang:    lang,
						Profile: profile,
						Data:    data,
					})
				}
			}
			if opts.Decks {
				data, err := render.RenderDeck(title, lines, profile, s.theme)
				if err != nil {
					s.log.Warn("pipeline.render.deck_failed", "job_id", jobID, "lang", lang, "profile", profile, "error", err)
				} else {
					artifacts = append(artifacts, render.Artifact{
						Name:    fmt.Sprintf("promo_%s_%s.pptx", lang, profile),
						Kind:    render.KindDeck,
						Lang:    lang,
						Profile: profile,
						Data:    data,
					})
				}
			}
		}
	}

	// Card news stays in the source language.
	if opts.Cards {
		cards, err := render.RenderCardSequence(rec, s.theme)
		if err != nil {
			s.log.Warn("pipeline.render.cards_failed", "job_id", jobID, "error", err)
		} else {
			artifacts = append(artifacts, cards...)
		}
	}
	return artifacts
}

// splitTitle separates the headline from the body of a promo text. The
// headline is capped; overly long first lines get cut, not wrapped.
func splitTitle(text string) (string, string) {
	title, rest, _ := strings.Cut(text, "\n")
	runes := []rune(strings.TrimSpace(title))
	if len(runes) > titleCapRunes {
		runes = runes[:titleCapRunes]
	}
	return string(runes), rest
}

func joinLanguages(langs []constants.Language) string {
	parts := make([]string, len(langs))
	for i, l := range langs {
		parts[i] = string(l)
	}
	return strings.Join(parts, ",")
}

func joinProfiles(profiles []constants.Profile) string {
	parts := make([]string, len(profiles))
	for i, p := range profiles {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}

// ParseLanguages parses a comma-joined language list, as stored on job rows.
func ParseLanguages(s string) []constants.Language {
	if s == "" {
		return nil
	}
	var out []constants.Language
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, constants.Language(part))
		}
	}
	return out
}

// ParseProfiles parses a comma-joined profile list.
func ParseProfiles(s string) []constants.Profile {
	if s == "" {
		return nil
	}
	var out []constants.Profile
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, constants.Profile(part))
		}
	}
	return out
}
