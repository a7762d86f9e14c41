package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/entity"
	"github.com/elephantfactory/promogen/internal/repository"
)

// Usecase ties document reading to the store: reads the text, hashes the
// bytes, and upserts by content hash so re-uploads of the same file dedup.
type Usecase struct {
	Docs repository.DocumentRepository
	Log  *slog.Logger
}

func NewUsecase(docs repository.DocumentRepository, log *slog.Logger) *Usecase {
	if log == nil {
		log = slog.Default()
	}
	return &Usecase{Docs: docs, Log: log}
}

// IngestBytes reads an uploaded document and persists it. The bool result
// reports whether the content hash already existed.
func (u *Usecase) IngestBytes(ctx context.Context, filename string, data []byte) (*entity.SourceDocument, bool, error) {
	start := time.Now()

	if !Allowed(filename) {
		return nil, false, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, filename)
	}

	text, err := ReadDocument(filename, data)
	if err != nil {
		u.Log.Warn("ingest.read_failed", "filename", filename, "error", err)
		return nil, false, err
	}

	doc, dedup, err := u.Docs.UpsertByHash(ctx, filename, Ext(filename), len(data), HashDocument(data), text, time.Now().UTC())
	if err != nil {
		return nil, false, fmt.Errorf("persist document: %w", err)
	}

	u.Log.Info("ingest.ok",
		"document_id", doc.ID.String(),
		"filename", filename,
		"bytes", len(data),
		"text_len", len(text),
		"dedup", dedup,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return doc, dedup, nil
}
