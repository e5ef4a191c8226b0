package report

import (
	"fmt"

	"vies_backend/platform/sanitize"
)

// Filename derives the suggested download name for a report:
// VIES_<COUNTRY>_<VAT>_<NAME>.pdf, with the registered-name component
// sanitized and bounded. A missing name falls back to "unknown".
func Filename(countryCode, vatNumber, registeredName string) string {
	name := sanitize.FilenameComponent(registeredName, sanitize.DefaultFilenameMaxLen)
	return fmt.Sprintf("VIES_%s_%s_%s.pdf", countryCode, vatNumber, name)
}
