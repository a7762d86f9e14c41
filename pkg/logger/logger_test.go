package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWithContextCarriesIDs(t *testing.T) {
	buf := captureDefault(t)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, DocumentIDKey, "doc-9")
	WithContext(ctx).Info("processing")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("expected request_id, got %v", entry["request_id"])
	}
	if entry["document_id"] != "doc-9" {
		t.Errorf("expected document_id, got %v", entry["document_id"])
	}
}

func TestWithContextEmpty(t *testing.T) {
	buf := captureDefault(t)

	WithContext(context.Background()).Info("bare")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if _, ok := entry["request_id"]; ok {
		t.Error("request_id should be absent without context value")
	}
	if _, ok := entry["document_id"]; ok {
		t.Error("document_id should be absent without context value")
	}
}
