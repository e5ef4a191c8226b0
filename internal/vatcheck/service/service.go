// Package service orchestrates a VAT check: normalize, consult the cache,
// query VIES, parse, record history, and render the report for valid numbers.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vies_backend/internal/report"
	"vies_backend/internal/vatcheck/cache"
	"vies_backend/internal/vatcheck/repository"
	"vies_backend/internal/vatcheck/transport"
	"vies_backend/internal/vies"
	"vies_backend/platform/apperr"
	"vies_backend/platform/logger"
)

// Service coordinates one check end to end. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	checker vies.Checker
	repo    repository.Repository
	cache   *cache.Cache
	store   *report.Store
	log     *logger.Logger
}

// New creates the vatcheck service. The cache may be nil (disabled) and the
// store may be disabled; both degrade silently.
func New(checker vies.Checker, repo repository.Repository, c *cache.Cache, store *report.Store, log *logger.Logger) *Service {
	return &Service{
		checker: checker,
		repo:    repo,
		cache:   c,
		store:   store,
		log:     log,
	}
}

// CheckOutcome is the full result of one check. PDF and Filename are only
// populated when the number is valid.
type CheckOutcome struct {
	CountryCode   string
	NormalizedVat string
	Result        vies.CheckResult
	Transcript    vies.Transcript
	FromCache     bool
	PDF           []byte
	Filename      string
}

// Check runs the clean → request → parse → render pipeline for one VAT
// number. Upstream and parse failures fold into an unverifiable result; the
// only error returned is a report rendering failure for a valid number.
func (s *Service) Check(ctx context.Context, countryCode, rawVatNumber string) (CheckOutcome, error) {
	start := time.Now()

	cc := vies.NormalizeCountryCode(countryCode)
	vat := vies.NormalizeVatNumber(rawVatNumber)
	if vat == "" {
		return CheckOutcome{}, apperr.Validation("VAT number contains no alphanumeric characters")
	}

	outcome := CheckOutcome{CountryCode: cc, NormalizedVat: vat}

	if entry, hit := s.cacheGet(ctx, cc, vat); hit {
		outcome.Result = entry.Result
		outcome.Transcript = entry.Transcript
		outcome.FromCache = true
	} else {
		outcome.Result, outcome.Transcript = s.query(ctx, cc, vat)
	}

	s.record(ctx, rawVatNumber, outcome)
	s.log.VatCheck(cc, vat, outcome.Result.Valid, outcome.FromCache, float64(time.Since(start).Milliseconds()))

	if !outcome.Result.Valid {
		return outcome, nil
	}

	pdf, err := report.Render(report.CheckData{
		CheckedAt:   time.Now(),
		CountryCode: cc,
		VatNumber:   vat,
		Result:      outcome.Result,
		Transcript:  outcome.Transcript,
	})
	if err != nil {
		return outcome, apperr.Wrap(apperr.KindInternal, "failed to generate report", err).WithOp("vatcheck.Check")
	}

	outcome.PDF = pdf
	outcome.Filename = report.Filename(cc, vat, outcome.Result.Name)

	if s.store != nil && s.store.Enabled() {
		if _, err := s.store.Save(pdf); err != nil {
			s.log.Error("failed to store report copy", "error", err)
		}
	}

	return outcome, nil
}

// query performs the single upstream round-trip and parses the reply.
// Connection failures become an unverifiable result and are never cached.
func (s *Service) query(ctx context.Context, cc, vat string) (vies.CheckResult, vies.Transcript) {
	transcript, err := s.checker.CheckVat(ctx, cc, vat)
	if err != nil {
		var connErr *vies.ConnectionError
		if !errors.As(err, &connErr) {
			connErr = &vies.ConnectionError{Err: err}
		}
		s.log.UpstreamError("checkVat", connErr)

		return vies.CheckResult{
			Valid:         false,
			Unverifiable:  true,
			StatusMessage: fmt.Sprintf("Could not verify VAT number: %v", connErr),
		}, transcript
	}

	result := vies.ParseCheckVatResponse(transcript.ResponseXML)
	s.cacheSet(ctx, cc, vat, cache.Entry{Result: result, Transcript: transcript})

	return result, transcript
}

// History returns the most recent checks for the API surface.
func (s *Service) History(ctx context.Context, limit int) (transport.CheckHistoryResponse, error) {
	records, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.log.DatabaseError("list vat checks", err)
		return transport.CheckHistoryResponse{}, apperr.Internal("failed to load check history")
	}

	items := make([]transport.CheckRecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, transport.CheckRecordResponse{
			ID:            rec.ID,
			CountryCode:   rec.CountryCode,
			VatNumber:     rec.NormalizedVat,
			Valid:         rec.Valid,
			Name:          rec.Name,
			Address:       rec.Address,
			StatusMessage: rec.StatusMessage,
			Unverifiable:  rec.Unverifiable,
			CheckedAt:     rec.CheckedAt,
		})
	}

	return transport.CheckHistoryResponse{Items: items, Total: len(items)}, nil
}

func (s *Service) cacheGet(ctx context.Context, cc, vat string) (cache.Entry, bool) {
	entry, hit, err := s.cache.Get(ctx, cc, vat)
	if err != nil {
		s.log.CacheError("get", err)
		return cache.Entry{}, false
	}
	return entry, hit
}

func (s *Service) cacheSet(ctx context.Context, cc, vat string, entry cache.Entry) {
	if err := s.cache.Set(ctx, cc, vat, entry); err != nil {
		s.log.CacheError("set", err)
	}
}

// record inserts the history row; failures are logged, never surfaced.
func (s *Service) record(ctx context.Context, rawVatNumber string, outcome CheckOutcome) {
	if s.repo == nil {
		return
	}

	rec := &repository.CheckRecord{
		CountryCode:   outcome.CountryCode,
		VatNumber:     rawVatNumber,
		NormalizedVat: outcome.NormalizedVat,
		Valid:         outcome.Result.Valid,
		Name:          outcome.Result.Name,
		Address:       outcome.Result.Address,
		StatusMessage: outcome.Result.StatusMessage,
		Unverifiable:  outcome.Result.Unverifiable,
		CheckedAt:     time.Now(),
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		s.log.DatabaseError("insert vat check", err)
	}
}
