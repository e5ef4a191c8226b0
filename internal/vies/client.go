package vies

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vies_backend/platform/config"
)

// ConnectionError indicates the VIES service could not be reached or answered
// with a non-2xx status. Callers fold it into an unverifiable result; it is
// never a server fault of ours.
type ConnectionError struct {
	Err        error
	StatusCode int
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("VIES service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("could not reach VIES service: %v", e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Checker is the outbound interface the service layer depends on; the HTTP
// client below is the production implementation.
type Checker interface {
	CheckVat(ctx context.Context, countryCode, vatNumber string) (Transcript, error)
}

// Client issues checkVat SOAP requests against the VIES endpoint.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a VIES client. The timeout bounds the full round-trip;
// this is the only place a request could otherwise hang indefinitely.
func NewClient(cfg config.ViesConfig) *Client {
	timeout := cfg.GetViesTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	endpoint := strings.TrimSpace(cfg.GetViesURL())
	if endpoint == "" {
		endpoint = config.DefaultViesURL
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the configured service URL, for logging.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// CheckVat posts a single checkVat envelope and returns the transcript of the
// exchange. The request XML is always populated; the response XML only on a
// 2xx reply. A single attempt is made, never a retry. Failures are returned
// as *ConnectionError.
func (c *Client) CheckVat(ctx context.Context, countryCode, vatNumber string) (Transcript, error) {
	envelope := BuildEnvelope(countryCode, vatNumber)
	transcript := Transcript{RequestXML: envelope}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(envelope))
	if err != nil {
		return transcript, &ConnectionError{Err: err}
	}
	req.Header.Set("Content-Type", "text/xml;charset=UTF-8")
	req.Header.Set("SOAPAction", "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transcript, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transcript, &ConnectionError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return transcript, &ConnectionError{StatusCode: resp.StatusCode}
	}

	transcript.ResponseXML = string(body)
	return transcript, nil
}

const envelopeTemplate = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:urn="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
  <soapenv:Header/>
  <soapenv:Body>
    <urn:checkVat>
      <urn:countryCode>%s</urn:countryCode>
      <urn:vatNumber>%s</urn:vatNumber>
    </urn:checkVat>
  </soapenv:Body>
</soapenv:Envelope>`

// BuildEnvelope composes the fixed checkVat SOAP envelope. Both fields are
// XML-escaped before interpolation; the transport layer already rejects
// non-letter country codes, this keeps the envelope well-formed regardless.
func BuildEnvelope(countryCode, vatNumber string) string {
	return fmt.Sprintf(envelopeTemplate, escapeXML(countryCode), escapeXML(vatNumber))
}

func escapeXML(s string) string {
	var b bytes.Buffer
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return ""
	}
	return b.String()
}
