package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/elephantfactory/promogen/internal/archive"
	"github.com/elephantfactory/promogen/internal/common"
	"github.com/elephantfactory/promogen/internal/ingest"
	"github.com/elephantfactory/promogen/internal/pipeline"
	"github.com/elephantfactory/promogen/internal/repository"
	"github.com/elephantfactory/promogen/internal/theme"
	"github.com/elephantfactory/promogen/internal/translate"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := t.Context()
	db, err := repository.Open(ctx, filepath.Join(t.TempDir(), "srv.db"), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { repository.Close(db, nil) })

	docs := repository.NewDocumentRepository(db, nil)
	jobs := repository.NewJobRepository(db, nil)
	ingestUC := ingest.NewUsecase(docs, nil)
	translator := translate.NewClient(common.TranslateConfig{BaseURL: "http://127.0.0.1:0"}, nil)
	pipe := pipeline.NewService(docs, jobs, translator, nil, archive.NewBuilder(nil), theme.Default(), t.TempDir(), nil)

	return New(db, docs, jobs, ingestUC, pipe, nil).Router()
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &body, mw.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("healthz status %d", w.Code)
	}
}

func TestUploadDocument(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "notice.txt", []byte("한국어교육 프로그램 안내"))
	req := httptest.NewRequest("POST", "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("upload status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID           uuid.UUID `json:"id"`
		Format       string    `json:"format"`
		TextLength   int       `json:"text_length"`
		Deduplicated bool      `json:"deduplicated"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == uuid.Nil || resp.TextLength == 0 || resp.Deduplicated {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Format != "TXT" {
		t.Errorf("expected format TXT, got %q", resp.Format)
	}

	// Re-upload of identical bytes answers 200 with the same id.
	body2, contentType2 := multipartUpload(t, "renamed.txt", []byte("한국어교육 프로그램 안내"))
	req2 := httptest.NewRequest("POST", "/api/v1/documents", body2)
	req2.Header.Set("Content-Type", contentType2)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	if w2.Code != http.StatusOK {
		t.Fatalf("re-upload status %d", w2.Code)
	}
	var resp2 struct {
		ID           uuid.UUID `json:"id"`
		Deduplicated bool      `json:"deduplicated"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &resp2); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp2.ID != resp.ID || !resp2.Deduplicated {
		t.Errorf("expected dedup of %s, got %+v", resp.ID, resp2)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "sheet.xlsx", []byte("x"))
	req := httptest.NewRequest("POST", "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUploadRequiresFile(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/documents", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/documents/"+uuid.NewString(), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGetJobInvalidID(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/jobs/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGenerateUnknownDocument(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/documents/"+uuid.NewString()+"/generate", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGenerateSurvivesHandlerReturn(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "notice.txt",
		[]byte("이주민 한국어 교육 프로그램 안내\n\n일시: 2025년 1월 15일 14:00\n장소: 코끼리공장 교육실\n문의: 052-123-4567"))
	req := httptest.NewRequest("POST", "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status %d", w.Code)
	}
	var doc struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}

	genBody := strings.NewReader(`{"languages":["en"],"profiles":["social"],"images":true}`)
	genReq := httptest.NewRequest("POST", "/api/v1/documents/"+doc.ID.String()+"/generate", genBody)
	genReq.Header.Set("Content-Type", "application/json")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, genReq)
	if w2.Code != http.StatusAccepted {
		t.Fatalf("generate status %d: %s", w2.Code, w2.Body.String())
	}
	var accepted struct {
		JobID  uuid.UUID `json:"job_id"`
		Status string    `json:"status"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &accepted); err != nil {
		t.Fatalf("decode generate response: %v", err)
	}

	// The handler has returned and its request is finished. The run keeps
	// going on the detached context; the job row must reach DONE without
	// touching the recycled request.
	var status string
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		w3 := httptest.NewRecorder()
		router.ServeHTTP(w3, httptest.NewRequest("GET", "/api/v1/jobs/"+accepted.JobID.String(), nil))
		if w3.Code != http.StatusOK {
			t.Fatalf("job status request %d", w3.Code)
		}
		var job struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(w3.Body.Bytes(), &job); err != nil {
			t.Fatalf("decode job: %v", err)
		}
		status = job.Status
		if status == "DONE" || status == "FAILED" {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if status != "DONE" {
		t.Fatalf("job did not finish, last status %q", status)
	}

	w4 := httptest.NewRecorder()
	router.ServeHTTP(w4, httptest.NewRequest("GET", "/api/v1/jobs/"+accepted.JobID.String()+"/bundle", nil))
	if w4.Code != http.StatusOK {
		t.Errorf("bundle download status %d", w4.Code)
	}
}

func TestBundleNotReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newTestRouter(t)

	// Upload then ask for a bundle of a job that was never run.
	body, contentType := multipartUpload(t, "notice.txt", []byte("안내문"))
	req := httptest.NewRequest("POST", "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest("GET", "/api/v1/jobs/"+uuid.NewString()+"/bundle", nil))
	if w2.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown job, got %d", w2.Code)
	}
}
