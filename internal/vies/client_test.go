package vies

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type testViesConfig struct {
	url     string
	timeout time.Duration
}

func (c testViesConfig) GetViesURL() string            { return c.url }
func (c testViesConfig) GetViesTimeout() time.Duration { return c.timeout }

func TestBuildEnvelope_ContainsNormalizedNumber(t *testing.T) {
	envelope := BuildEnvelope("PL", NormalizeVatNumber("123-456-78-90"))

	if !strings.Contains(envelope, "<urn:vatNumber>1234567890</urn:vatNumber>") {
		t.Fatalf("envelope missing normalized vat number:\n%s", envelope)
	}
	if !strings.Contains(envelope, "<urn:countryCode>PL</urn:countryCode>") {
		t.Fatalf("envelope missing country code:\n%s", envelope)
	}
	if !strings.Contains(envelope, `xmlns:urn="urn:ec.europa.eu:taxud:vies:services:checkVat:types"`) {
		t.Fatalf("envelope missing urn namespace:\n%s", envelope)
	}
}

func TestBuildEnvelope_EscapesSpecialCharacters(t *testing.T) {
	envelope := BuildEnvelope(`X<&>"`, "123")

	if strings.Contains(envelope, `<urn:countryCode>X<`) {
		t.Fatalf("country code was interpolated unescaped:\n%s", envelope)
	}
	if !strings.Contains(envelope, "X&lt;&amp;&gt;") {
		t.Fatalf("expected escaped country code, got:\n%s", envelope)
	}
}

func TestCheckVat_Success(t *testing.T) {
	const reply = `<checkVatResponse><valid>true</valid></checkVatResponse>`

	var gotContentType, gotSOAPAction string
	var hasSOAPAction bool
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_, hasSOAPAction = r.Header["Soapaction"]
		gotSOAPAction = r.Header.Get("SOAPAction")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(reply))
	}))
	defer srv.Close()

	client := NewClient(testViesConfig{url: srv.URL, timeout: 2 * time.Second})

	transcript, err := client.CheckVat(context.Background(), "PL", "1234567890")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transcript.ResponseXML != reply {
		t.Fatalf("expected verbatim response body, got %q", transcript.ResponseXML)
	}
	if transcript.RequestXML == "" {
		t.Fatalf("expected request transcript to be populated")
	}
	if gotContentType != "text/xml;charset=UTF-8" {
		t.Fatalf("expected text/xml content type, got %q", gotContentType)
	}
	if !hasSOAPAction || gotSOAPAction != "" {
		t.Fatalf("expected present-but-empty SOAPAction header, got %q (present=%v)", gotSOAPAction, hasSOAPAction)
	}
	if !strings.Contains(gotBody, "<urn:vatNumber>1234567890</urn:vatNumber>") {
		t.Fatalf("posted envelope missing vat number:\n%s", gotBody)
	}
}

func TestCheckVat_Non2xxIsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testViesConfig{url: srv.URL, timeout: 2 * time.Second})

	transcript, err := client.CheckVat(context.Background(), "PL", "123")
	if err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectionError, got %T", err)
	}
	if connErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500 on error, got %d", connErr.StatusCode)
	}
	if transcript.RequestXML == "" {
		t.Fatalf("request transcript should survive a failed call")
	}
}

func TestCheckVat_TimeoutIsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(testViesConfig{url: srv.URL, timeout: 50 * time.Millisecond})

	_, err := client.CheckVat(context.Background(), "PL", "123")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectionError, got %T", err)
	}
}

func TestCheckVat_UnreachableHost(t *testing.T) {
	client := NewClient(testViesConfig{url: "http://127.0.0.1:1", timeout: 200 * time.Millisecond})

	_, err := client.CheckVat(context.Background(), "PL", "123")
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectionError, got %v", err)
	}
}
