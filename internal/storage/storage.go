package storage

import (
	"context"
	"time"
)

// TranslationRecord is one persisted translation. History is a log for
// operators; it is never read back to answer a request.
type TranslationRecord struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	Provider   string    `json:"provider"`
	SQL        string    `json:"sql"`
	CreatedAt  time.Time `json:"created_at"`
	DurationMs int64     `json:"duration_ms"`
	Status     string    `json:"status"` // success, error
	Error      string    `json:"error,omitempty"`
}

// Repository Storage interface
type Repository interface {
	SaveTranslation(ctx context.Context, record *TranslationRecord) error
	GetTranslation(ctx context.Context, id string) (*TranslationRecord, error)
	ListRecentTranslations(ctx context.Context, limit int) ([]*TranslationRecord, error)
	Close() error
}
