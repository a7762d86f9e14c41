package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/entity"
)

type JobRepository interface {
	Start(ctx context.Context, documentID uuid.UUID, languages, profiles string) (*entity.GenerateJob, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.GenerateJob, error)
	UpdateStage(ctx context.Context, id uuid.UUID, stage constants.JobStage) error
	FinishSuccess(ctx context.Context, id uuid.UUID, bundlePath string) error
	FinishFailure(ctx context.Context, id uuid.UUID, message string) error
}

type jobRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewJobRepository(db *sql.DB, logger *slog.Logger) JobRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &jobRepo{db: db, logger: logger}
}

func (r *jobRepo) Start(ctx context.Context, documentID uuid.UUID, languages, profiles string) (*entity.GenerateJob, error) {
	job := &entity.GenerateJob{
		ID:         uuid.New(),
		DocumentID: documentID,
		Status:     string(constants.JobStatusRunning),
		Languages:  languages,
		Profiles:   profiles,
		StartedAt:  time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO generate_job (id, document_id, status, languages, profiles, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		job.ID.String(), job.DocumentID.String(), job.Status, job.Languages, job.Profiles, formatTime(job.StartedAt))
	if err != nil {
		r.logger.Error("failed to start generate job", "document_id", documentID, "error", err)
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.GenerateJob, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, document_id, status, stage, languages, profiles, error_message, bundle_path, started_at, finished_at
		 FROM generate_job WHERE id = ?`, id.String())

	var (
		j          entity.GenerateJob
		jobID      string
		docID      string
		startedAt  string
		finishedAt sql.NullString
	)
	err := row.Scan(&jobID, &docID, &j.Status, &j.Stage, &j.Languages, &j.Profiles,
		&j.ErrorMessage, &j.BundlePath, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if j.ID, err = uuid.Parse(jobID); err != nil {
		return nil, fmt.Errorf("parse job id: %w", err)
	}
	if j.DocumentID, err = uuid.Parse(docID); err != nil {
		return nil, fmt.Errorf("parse document id: %w", err)
	}
	j.StartedAt = parseTime(startedAt)
	if finishedAt.Valid {
		t := parseTime(finishedAt.String)
		j.FinishedAt = &t
	}
	return &j, nil
}

func (r *jobRepo) UpdateStage(ctx context.Context, id uuid.UUID, stage constants.JobStage) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE generate_job SET stage = ? WHERE id = ?", string(stage), id.String())
	if err != nil {
		r.logger.Error("failed to update job stage", "job_id", id, "stage", stage, "error", err)
	}
	return err
}

func (r *jobRepo) FinishSuccess(ctx context.Context, id uuid.UUID, bundlePath string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE generate_job SET status = ?, bundle_path = ?, finished_at = ? WHERE id = ?",
		string(constants.JobStatusDone), bundlePath, formatTime(time.Now()), id.String())
	if err != nil {
		r.logger.Error("failed to finish job", "job_id", id, "error", err)
	}
	return err
}

func (r *jobRepo) FinishFailure(ctx context.Context, id uuid.UUID, message string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE generate_job SET status = ?, error_message = ?, finished_at = ? WHERE id = ?",
		string(constants.JobStatusFailed), message, formatTime(time.Now()), id.String())
	if err != nil {
		r.logger.Error("failed to mark job failed", "job_id", id, "error", err)
	}
	return err
}
