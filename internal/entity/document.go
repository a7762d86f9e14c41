package entity

import (
	"time"

	"github.com/google/uuid"
)

// SourceDocument represents an ingested document for data transfer between layers.
type SourceDocument struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	FileExt     string    `json:"file_ext"`
	FileSize    int       `json:"file_size"`
	ContentHash []byte    `json:"content_hash"`
	Text        string    `json:"text"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
