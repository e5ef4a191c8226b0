package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CheckRecord is one persisted VAT check outcome.
type CheckRecord struct {
	ID            uuid.UUID
	CountryCode   string
	VatNumber     string
	NormalizedVat string
	Valid         bool
	Name          string
	Address       string
	StatusMessage string
	Unverifiable  bool
	CheckedAt     time.Time
}

// Repository persists the check history.
type Repository interface {
	Insert(ctx context.Context, rec *CheckRecord) error
	ListRecent(ctx context.Context, limit int) ([]CheckRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
