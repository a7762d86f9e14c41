package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/elephantfactory/promogen/constants"
	"github.com/elephantfactory/promogen/internal/archive"
	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/ingest"
	"github.com/elephantfactory/promogen/internal/repository"
	"github.com/elephantfactory/promogen/internal/theme"
	"github.com/elephantfactory/promogen/internal/translate"
)

const noticeText = `한국어교육 프로그램 안내

일시: 2025년 1월 15일 오후 2시
장소: 코끼리공장 교육실
대상: 관내 거주 이주민
신청: 방문 접수
문의: 052-123-4567`

func newRunFixture(t *testing.T) (context.Context, *Service, *ingest.Usecase, string) {
	t.Helper()
	ctx := context.Background()

	db, err := repository.Open(ctx, filepath.Join(t.TempDir(), "run.db"), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { repository.Close(db, nil) })

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Q      string `json:"q"`
			Target string `json:"target"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "[" + req.Target + "]\n" + req.Q})
	}))
	t.Cleanup(backend.Close)

	docs := repository.NewDocumentRepository(db, nil)
	jobs := repository.NewJobRepository(db, nil)
	translator := translate.NewClient(common.TranslateConfig{BaseURL: backend.URL}, nil)
	bundleDir := t.TempDir()
	svc := NewService(docs, jobs, translator, nil, archive.NewBuilder(nil), theme.Default(), bundleDir, nil)
	return ctx, svc, ingest.NewUsecase(docs, nil), bundleDir
}

func TestRunEndToEnd(t *testing.T) {
	ctx, svc, ingestUC, _ := newRunFixture(t)

	doc, _, err := ingestUC.IngestBytes(ctx, "notice.txt", []byte(noticeText))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	job, err := svc.Run(ctx, doc.ID, Options{
		Languages: []constants.Language{constants.LangEnglish},
		Profiles:  []constants.Profile{constants.ProfileSocial},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if job.Status != string(constants.JobStatusDone) {
		t.Fatalf("job status %q, error %v", job.Status, job.ErrorMessage)
	}
	if job.BundlePath == nil {
		t.Fatal("bundle path not recorded")
	}

	data, err := os.ReadFile(*job.BundlePath)
	if err != nil {
		t.Fatalf("read bundle: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("bundle is not a zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"원문.txt",
		"요약.txt",
		"홍보문_한국어.txt",
		"번역문/홍보문_English.txt",
		"이미지/promo_ko_social.png",
		"이미지/promo_en_social.png",
		"PPT/promo_ko_social.pptx",
		"PPT/promo_en_social.pptx",
		"카드뉴스/card_1_cover.png",
		"카드뉴스/card_4_contact.png",
		"개요.xlsx",
	} {
		if !names[want] {
			t.Errorf("bundle missing %s", want)
		}
	}
}

func TestRunFailsOnEmptyDocument(t *testing.T) {
	ctx, svc, ingestUC, _ := newRunFixture(t)

	doc, _, err := ingestUC.IngestBytes(ctx, "blank.txt", []byte("   \n  "))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	_, err = svc.Run(ctx, doc.ID, Options{Languages: []constants.Language{constants.LangEnglish}})
	if err == nil {
		t.Fatal("expected failure for empty document")
	}
}

func TestBeginRejectsUnknownDocument(t *testing.T) {
	ctx, svc, _, _ := newRunFixture(t)
	_, err := svc.Begin(ctx, uuid.New(), Options{})
	if err == nil {
		t.Fatal("expected not-found error")
	}
}
