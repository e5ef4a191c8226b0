// Package sanitize provides text sanitization utilities for values that end
// up in filesystem paths and download headers.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// filenameDisallowed matches every character not allowed in a filename
	// component after space folding.
	filenameDisallowed = regexp.MustCompile(`[^A-Za-z0-9-]`)
	// spaceRun matches runs of whitespace
	spaceRun = regexp.MustCompile(`\s+`)
	// hyphenRun matches runs of hyphens left over after stripping
	hyphenRun = regexp.MustCompile(`-{2,}`)
)

// DefaultFilenameMaxLen bounds the registered-name component of report filenames.
const DefaultFilenameMaxLen = 30

// FilenameComponent turns arbitrary text (typically a registered company name
// from the VIES response) into a safe filename fragment: spaces become
// hyphens, everything outside [A-Za-z0-9-] is removed, and the result is
// truncated to maxLen runes. Returns "unknown" when nothing survives.
func FilenameComponent(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultFilenameMaxLen
	}

	result := spaceRun.ReplaceAllString(strings.TrimSpace(s), "-")
	result = filenameDisallowed.ReplaceAllString(result, "")
	result = hyphenRun.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > maxLen {
		result = result[:maxLen]
		result = strings.TrimRight(result, "-")
	}

	if result == "" {
		return "unknown"
	}
	return result
}
