// Package repository persists VAT check history in PostgreSQL.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new check history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Insert stores one completed check. The caller treats failures as
// non-fatal; a lost history row must never fail the check response.
func (r *Repo) Insert(ctx context.Context, rec *CheckRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CheckedAt.IsZero() {
		rec.CheckedAt = time.Now()
	}

	query := `
		INSERT INTO vat_checks (id, country_code, vat_number, normalized_vat, valid, name, address, status_message, unverifiable, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.CountryCode, rec.VatNumber, rec.NormalizedVat, rec.Valid,
		rec.Name, rec.Address, rec.StatusMessage, rec.Unverifiable, rec.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vat check: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent checks, newest first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]CheckRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, country_code, vat_number, normalized_vat, valid, name, address, status_message, unverifiable, checked_at
		FROM vat_checks
		ORDER BY checked_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list vat checks: %w", err)
	}
	defer rows.Close()

	var records []CheckRecord
	for rows.Next() {
		var rec CheckRecord
		if err := rows.Scan(
			&rec.ID, &rec.CountryCode, &rec.VatNumber, &rec.NormalizedVat, &rec.Valid,
			&rec.Name, &rec.Address, &rec.StatusMessage, &rec.Unverifiable, &rec.CheckedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vat check: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vat checks: %w", err)
	}

	return records, nil
}

// DeleteOlderThan prunes history rows past the retention window.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vat_checks WHERE checked_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune vat checks: %w", err)
	}
	return tag.RowsAffected(), nil
}
