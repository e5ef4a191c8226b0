package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"vies_backend/internal/vatcheck/cache"
	"vies_backend/internal/vatcheck/service"
	"vies_backend/internal/vies"
	"vies_backend/platform/apperr"
	"vies_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const activeResponseXML = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <checkVatResponse xmlns="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
      <valid>true</valid>
      <name>Acme GmbH</name>
      <address>Musterstrasse 1, Berlin</address>
    </checkVatResponse>
  </soapenv:Body>
</soapenv:Envelope>`

type countingChecker struct {
	responseXML string
	err         error
	calls       int
}

func (c *countingChecker) CheckVat(_ context.Context, cc, vat string) (vies.Transcript, error) {
	c.calls++
	transcript := vies.Transcript{RequestXML: "<checkVat>" + cc + vat + "</checkVat>"}
	if c.err != nil {
		return transcript, c.err
	}
	transcript.ResponseXML = c.responseXML
	return transcript, nil
}

func newCachedService(t *testing.T, checker vies.Checker) *service.Service {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := cache.NewWithClient(rdb, time.Minute)
	return service.New(checker, nil, c, nil, logger.New("test"))
}

func TestCheckUsesCacheOnSecondCall(t *testing.T) {
	checker := &countingChecker{responseXML: activeResponseXML}
	svc := newCachedService(t, checker)
	ctx := context.Background()

	first, err := svc.Check(ctx, "DE", "123456789")
	if err != nil {
		t.Fatalf("first check: %v", err)
	}
	if first.FromCache {
		t.Fatalf("first check reported a cache hit")
	}
	if !first.Result.Valid || first.Result.Name != "Acme GmbH" {
		t.Fatalf("first result = %+v", first.Result)
	}

	second, err := svc.Check(ctx, "DE", "123456789")
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if !second.FromCache {
		t.Fatalf("second check did not hit the cache")
	}
	if checker.calls != 1 {
		t.Fatalf("upstream called %d times, want 1", checker.calls)
	}

	// A cache hit must still carry the transcript so the report is complete.
	if second.Transcript.ResponseXML != activeResponseXML {
		t.Fatalf("cached transcript lost")
	}
	if len(second.PDF) == 0 || !strings.HasPrefix(string(second.PDF), "%PDF") {
		t.Fatalf("cache hit did not render a report")
	}
	if second.Filename != "VIES_DE_123456789_Acme-GmbH.pdf" {
		t.Fatalf("filename = %q", second.Filename)
	}
}

func TestCheckDoesNotCacheConnectionErrors(t *testing.T) {
	checker := &countingChecker{err: &vies.ConnectionError{Err: context.DeadlineExceeded}}
	svc := newCachedService(t, checker)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		outcome, err := svc.Check(ctx, "IT", "00000000000")
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if !outcome.Result.Unverifiable {
			t.Fatalf("check %d: result not marked unverifiable: %+v", i, outcome.Result)
		}
		if outcome.FromCache {
			t.Fatalf("check %d: connection failure served from cache", i)
		}
	}

	if checker.calls != 2 {
		t.Fatalf("upstream called %d times, want 2 (failures are retried, not cached)", checker.calls)
	}
}

func TestCheckRejectsEmptyNormalizedVat(t *testing.T) {
	checker := &countingChecker{responseXML: activeResponseXML}
	svc := service.New(checker, nil, nil, nil, logger.New("test"))

	_, err := svc.Check(context.Background(), "PL", "---")
	if err == nil {
		t.Fatalf("expected validation error for a vat number with no alphanumerics")
	}
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.GetKind(err))
	}
	if checker.calls != 0 {
		t.Fatalf("upstream called for rejected input")
	}
}

func TestCheckNormalizesInput(t *testing.T) {
	checker := &countingChecker{responseXML: activeResponseXML}
	svc := service.New(checker, nil, nil, nil, logger.New("test"))

	outcome, err := svc.Check(context.Background(), "pl", " 123-456-78-90 ")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if outcome.CountryCode != "PL" || outcome.NormalizedVat != "1234567890" {
		t.Fatalf("normalized to %s/%s", outcome.CountryCode, outcome.NormalizedVat)
	}
}
