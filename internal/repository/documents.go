package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/entity"
)

type DocumentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SourceDocument, error)
	GetByHash(ctx context.Context, hash []byte) (*entity.SourceDocument, error)
	Create(ctx context.Context, filename, ext string, size int, hash []byte, text string, uploadedAt time.Time) (*entity.SourceDocument, error)
	UpsertByHash(ctx context.Context, filename, ext string, size int, hash []byte, text string, uploadedAt time.Time) (*entity.SourceDocument, bool, error)
}

type documentRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewDocumentRepository(db *sql.DB, logger *slog.Logger) DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentRepo{db: db, logger: logger}
}

const documentColumns = "id, filename, file_ext, file_size, content_hash, text, uploaded_at"

func scanDocument(row *sql.Row) (*entity.SourceDocument, error) {
	var (
		d          entity.SourceDocument
		id         string
		uploadedAt string
	)
	err := row.Scan(&id, &d.Filename, &d.FileExt, &d.FileSize, &d.ContentHash, &d.Text, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse document id: %w", err)
	}
	d.UploadedAt = parseTime(uploadedAt)
	return &d, nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.SourceDocument, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM source_document WHERE id = ?", id.String())
	return scanDocument(row)
}

func (r *documentRepo) GetByHash(ctx context.Context, hash []byte) (*entity.SourceDocument, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM source_document WHERE content_hash = ?", hash)
	return scanDocument(row)
}

func (r *documentRepo) Create(ctx context.Context, filename, ext string, size int, hash []byte, text string, uploadedAt time.Time) (*entity.SourceDocument, error) {
	doc := &entity.SourceDocument{
		ID:          uuid.New(),
		Filename:    filename,
		FileExt:     ext,
		FileSize:    size,
		ContentHash: hash,
		Text:        text,
		UploadedAt:  uploadedAt,
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO source_document ("+documentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		doc.ID.String(), doc.Filename, doc.FileExt, doc.FileSize, doc.ContentHash, doc.Text, formatTime(doc.UploadedAt))
	if err != nil {
		r.logger.Error("failed to create source document", "filename", filename, "error", err)
		return nil, err
	}
	return doc, nil
}

func (r *documentRepo) UpsertByHash(ctx context.Context, filename, ext string, size int, hash []byte, text string, uploadedAt time.Time) (*entity.SourceDocument, bool, error) {
	if existing, err := r.GetByHash(ctx, hash); err == nil {
		return existing, true, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}
	doc, err := r.Create(ctx, filename, ext, size, hash, text, uploadedAt)
	if err != nil {
		return nil, false, err
	}
	return doc, false, nil
}
