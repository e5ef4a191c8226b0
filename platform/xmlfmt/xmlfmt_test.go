package xmlfmt

import (
	"strings"
	"testing"
)

func TestPrettyIndentsNestedElements(t *testing.T) {
	in := `<a><b><c>text</c></b></a>`
	out := Pretty(in)

	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected multi-line output, got %q", out)
	}
	if lines[0] != "<a>" {
		t.Fatalf("first line = %q", lines[0])
	}

	var found bool
	for _, line := range lines {
		if strings.Contains(line, "<c>") {
			found = true
			if !strings.HasPrefix(line, strings.Repeat(" ", 2*IndentSpaces)) {
				t.Fatalf("nested element not indented two levels: %q", line)
			}
		}
	}
	if !found {
		t.Fatalf("inner element missing from output: %q", out)
	}
}

func TestPrettyHandlesMalformedInput(t *testing.T) {
	in := `<a><b>no closing tags here`
	out := Pretty(in)

	if out == "" {
		t.Fatalf("malformed input produced empty output")
	}
	if !strings.Contains(out, "<a>") || !strings.Contains(out, "no closing tags here") {
		t.Fatalf("content lost: %q", out)
	}
}

func TestPrettyScannerBalancesDepth(t *testing.T) {
	in := `<root><child attr="v"/><other>x</other></root>`
	out := scanPretty(in)

	lines := strings.Split(out, "\n")
	first, last := lines[0], lines[len(lines)-1]
	if first != "<root>" {
		t.Fatalf("first line = %q", first)
	}
	if last != "</root>" {
		t.Fatalf("closing tag not back at depth zero: %q", last)
	}
}

func TestPrettyEmptyInput(t *testing.T) {
	if out := Pretty(""); out != "" {
		t.Fatalf("Pretty(\"\") = %q", out)
	}
}
