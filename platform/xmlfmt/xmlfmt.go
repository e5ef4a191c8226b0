// Package xmlfmt pretty-prints XML documents for human-readable transcripts.
// Well-formed documents go through a real parser; anything the parser rejects
// falls back to a tag scanner so a transcript is always produced.
package xmlfmt

import (
	"strings"

	"github.com/beevik/etree"
)

// IndentSpaces is the indentation width per nesting level.
const IndentSpaces = 2

// Pretty returns the document re-indented with two spaces per nesting level.
// Malformed input is formatted with a lenient tag scanner instead of being
// returned verbatim, since upstream SOAP payloads are not always valid XML.
func Pretty(xmlText string) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlText); err == nil && doc.Root() != nil {
		doc.Indent(IndentSpaces)
		out, err := doc.WriteToString()
		if err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return scanPretty(xmlText)
}

// scanPretty walks the raw text tag by tag. Closing tags decrease the
// indentation before being emitted; opening tags (not self-closing, not
// closing, not declarations) increase it after being emitted.
func scanPretty(xmlText string) string {
	var b strings.Builder
	depth := 0
	rest := xmlText

	writeLine := func(line string, level int) {
		if level < 0 {
			level = 0
		}
		b.WriteString(strings.Repeat(" ", level*IndentSpaces))
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for {
		lt := strings.IndexByte(rest, '<')
		if lt < 0 {
			if text := strings.TrimSpace(rest); text != "" {
				writeLine(text, depth)
			}
			break
		}

		if text := strings.TrimSpace(rest[:lt]); text != "" {
			writeLine(text, depth)
		}
		rest = rest[lt:]

		gt := strings.IndexByte(rest, '>')
		if gt < 0 {
			// Truncated tag, emit what is left and stop.
			writeLine(strings.TrimSpace(rest), depth)
			break
		}

		tag := rest[:gt+1]
		rest = rest[gt+1:]

		switch {
		case strings.HasPrefix(tag, "</"):
			depth--
			writeLine(tag, depth)
		case strings.HasSuffix(tag, "/>"),
			strings.HasPrefix(tag, "<?"),
			strings.HasPrefix(tag, "<!"):
			writeLine(tag, depth)
		default:
			writeLine(tag, depth)
			depth++
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
