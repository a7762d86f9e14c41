package entity

import (
	"time"

	"github.com/google/uuid"
)

// GenerateJob represents one generation run over a source document.
type GenerateJob struct {
	ID           uuid.UUID  `json:"id"`
	DocumentID   uuid.UUID  `json:"document_id"`
	Status       string     `json:"status"`
	Stage        *string    `json:"stage,omitempty"`
	Languages    string     `json:"languages"` // comma-joined target codes
	Profiles     string     `json:"profiles"`  // comma-joined profile names
	ErrorMessage *string    `json:"error_message,omitempty"`
	BundlePath   *string    `json:"bundle_path,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}
