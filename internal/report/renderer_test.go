package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"vies_backend/internal/vies"
)

func TestRender_ProducesPDF(t *testing.T) {
	data := CheckData{
		CheckedAt:   time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		CountryCode: "PL",
		VatNumber:   "1234567890",
		Result: vies.CheckResult{
			Valid:         true,
			Name:          "Test Sp. z o.o.",
			Address:       "ul. Testowa 1, Warszawa",
			StatusMessage: vies.MsgActive + "\nName: Test Sp. z o.o.\nAddress: ul. Testowa 1, Warszawa",
		},
		Transcript: vies.Transcript{
			RequestXML:  vies.BuildEnvelope("PL", "1234567890"),
			ResponseXML: `<checkVatResponse><valid>true</valid><name>Test Sp. z o.o.</name></checkVatResponse>`,
		},
	}

	pdf, err := Render(data)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF, first bytes: %q", pdf[:min(8, len(pdf))])
	}
}

func TestRender_EmptyTranscriptStillRenders(t *testing.T) {
	data := CheckData{
		CheckedAt:   time.Now(),
		CountryCode: "DE",
		VatNumber:   "123456789",
		Result:      vies.CheckResult{Valid: false, StatusMessage: vies.MsgNotActive},
	}

	pdf, err := Render(data)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected non-empty PDF")
	}
}

func TestWrapLine_BreaksAtPrecedingSpace(t *testing.T) {
	line := strings.Repeat("abcd ", 30) // 150 chars
	wrapped := WrapLine(line, 80)

	if len(wrapped) < 2 {
		t.Fatalf("expected wrapping, got %d line(s)", len(wrapped))
	}
	for _, w := range wrapped {
		if len(w) > 80 {
			t.Fatalf("wrapped line exceeds width: %d chars", len(w))
		}
	}
}

func TestWrapLine_HardBreakWithoutSpaces(t *testing.T) {
	line := strings.Repeat("x", 200)
	wrapped := WrapLine(line, 80)

	total := 0
	for _, w := range wrapped {
		if len(w) > 80 {
			t.Fatalf("wrapped line exceeds width: %d chars", len(w))
		}
		total += len(w)
	}
	if total != 200 {
		t.Fatalf("hard break lost characters: got %d of 200", total)
	}
}

func TestWrapLine_ShortLineUntouched(t *testing.T) {
	wrapped := WrapLine("  <short/>", 80)
	if len(wrapped) != 1 || wrapped[0] != "  <short/>" {
		t.Fatalf("short line should pass through, got %#v", wrapped)
	}
}
