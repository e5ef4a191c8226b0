package vies

import "testing"

func TestNormalizeVatNumber_StripsSeparators(t *testing.T) {
	got := NormalizeVatNumber("123-456-78-90")
	if got != "1234567890" {
		t.Fatalf("expected 1234567890, got %q", got)
	}
}

func TestNormalizeVatNumber_UpperCases(t *testing.T) {
	got := NormalizeVatNumber("nl 8042.21.b01")
	if got != "NL804221B01" {
		t.Fatalf("expected NL804221B01, got %q", got)
	}
}

func TestNormalizeVatNumber_OnlyAlphanumericsSurvive(t *testing.T) {
	inputs := []string{"1234567890", "12.34 56/78-90", "!@#$%", "", "ął123"}
	for _, in := range inputs {
		got := NormalizeVatNumber(in)
		for _, r := range got {
			if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
				t.Fatalf("NormalizeVatNumber(%q) produced disallowed rune %q", in, r)
			}
		}
	}
}

func TestNormalizeVatNumber_Idempotent(t *testing.T) {
	inputs := []string{"123-456-78-90", "pl 526-10-40-828", "", "abc"}
	for _, in := range inputs {
		once := NormalizeVatNumber(in)
		twice := NormalizeVatNumber(once)
		if once != twice {
			t.Fatalf("NormalizeVatNumber not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeCountryCode(t *testing.T) {
	if got := NormalizeCountryCode(" pl "); got != "PL" {
		t.Fatalf("expected PL, got %q", got)
	}
}
