package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/common"
)

func openTestDB(t *testing.T) (context.Context, *documentRepoFixture) {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { Close(db, nil) })
	return ctx, &documentRepoFixture{
		docs: NewDocumentRepository(db, nil),
		jobs: NewJobRepository(db, nil),
	}
}

type documentRepoFixture struct {
	docs DocumentRepository
	jobs JobRepository
}

func TestDocumentCreateAndGet(t *testing.T) {
	ctx, fx := openTestDB(t)

	hash := []byte("0123456789abcdef0123456789abcdef")
	doc, err := fx.docs.Create(ctx, "notice.docx", "docx", 1234, hash, "본문", time.Now().UTC())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := fx.docs.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Filename != "notice.docx" || got.FileExt != "docx" || got.FileSize != 1234 {
		t.Errorf("unexpected document: %+v", got)
	}
	if got.Text != "본문" {
		t.Errorf("text not round-tripped: %q", got.Text)
	}

	byHash, err := fx.docs.GetByHash(ctx, hash)
	if err != nil {
		t.Fatalf("get by hash: %v", err)
	}
	if byHash.ID != doc.ID {
		t.Errorf("hash lookup returned wrong row")
	}
}

func TestDocumentNotFound(t *testing.T) {
	ctx, fx := openTestDB(t)

	_, err := fx.docs.GetByID(ctx, uuid.New())
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err = fx.docs.GetByHash(ctx, []byte("nope"))
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDocumentUpsertByHashDedup(t *testing.T) {
	ctx, fx := openTestDB(t)

	hash := []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	first, dedup, err := fx.docs.UpsertByHash(ctx, "a.txt", "txt", 10, hash, "본문", time.Now().UTC())
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if dedup {
		t.Error("first upsert should create, not dedup")
	}

	second, dedup, err := fx.docs.UpsertByHash(ctx, "b.txt", "txt", 10, hash, "본문", time.Now().UTC())
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if !dedup {
		t.Error("second upsert should deduplicate")
	}
	if second.ID != first.ID {
		t.Error("dedup must return the original row")
	}
}

func TestJobLifecycleSuccess(t *testing.T) {
	ctx, fx := openTestDB(t)

	doc, err := fx.docs.Create(ctx, "n.txt", "txt", 1, []byte("h1"), "본문", time.Now().UTC())
	if err != nil {
		t.Fatalf("create doc: %v", err)
	}

	job, err := fx.jobs.Start(ctx, doc.ID, "en,vi", "social")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if job.Status != string(constants.JobStatusRunning) {
		t.Errorf("new job status %q", job.Status)
	}

	if err := fx.jobs.UpdateStage(ctx, job.ID, constants.StageTranslate); err != nil {
		t.Fatalf("update stage: %v", err)
	}
	if err := fx.jobs.FinishSuccess(ctx, job.ID, "/tmp/out.zip"); err != nil {
		t.Fatalf("finish: %v", err)
	}

	got, err := fx.jobs.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != string(constants.JobStatusDone) {
		t.Errorf("status %q", got.Status)
	}
	if got.Stage == nil || *got.Stage != string(constants.StageTranslate) {
		t.Errorf("stage %v", got.Stage)
	}
	if got.BundlePath == nil || *got.BundlePath != "/tmp/out.zip" {
		t.Errorf("bundle path %v", got.BundlePath)
	}
	if got.FinishedAt == nil {
		t.Error("finished_at not set")
	}
	if got.Languages != "en,vi" || got.Profiles != "social" {
		t.Errorf("selection not round-tripped: %q %q", got.Languages, got.Profiles)
	}
}

func TestJobLifecycleFailure(t *testing.T) {
	ctx, fx := openTestDB(t)

	doc, err := fx.docs.Create(ctx, "n.txt", "txt", 1, []byte("h2"), "본문", time.Now().UTC())
	if err != nil {
		t.Fatalf("create doc: %v", err)
	}
	job, err := fx.jobs.Start(ctx, doc.ID, "en", "social")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := fx.jobs.FinishFailure(ctx, job.ID, "translate: boom"); err != nil {
		t.Fatalf("finish failure: %v", err)
	}

	got, err := fx.jobs.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != string(constants.JobStatusFailed) {
		t.Errorf("status %q", got.Status)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage != "translate: boom" {
		t.Errorf("error message %v", got.ErrorMessage)
	}
}

func TestJobNotFound(t *testing.T) {
	ctx, fx := openTestDB(t)
	if _, err := fx.jobs.GetByID(ctx, uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	ctx, _ := openTestDB(t)
	db, err := Open(ctx, filepath.Join(t.TempDir(), "health.db"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer Close(db, nil)
	if err := HealthCheck(ctx, db, time.Second, nil); err != nil {
		t.Errorf("health check: %v", err)
	}
}
