package vies

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

var (
	// defaultNSDecl matches an unprefixed xmlns declaration; stripping it
	// keeps element lookup free of default-namespace bookkeeping.
	defaultNSDecl = regexp.MustCompile(`\s+xmlns="[^"]*"`)

	// Fallback patterns for payloads the XML parser rejects. The EU service
	// has been observed to answer with variably prefixed and occasionally
	// malformed XML, so each element is matched with an optional prefix.
	validPattern   = regexp.MustCompile(`(?is)<(?:[A-Za-z0-9]+:)?valid\s*>\s*(true|false)\s*</(?:[A-Za-z0-9]+:)?valid\s*>`)
	namePattern    = regexp.MustCompile(`(?is)<(?:[A-Za-z0-9]+:)?name\s*>(.*?)</(?:[A-Za-z0-9]+:)?name\s*>`)
	addressPattern = regexp.MustCompile(`(?is)<(?:[A-Za-z0-9]+:)?address\s*>(.*?)</(?:[A-Za-z0-9]+:)?address\s*>`)
)

// ParseCheckVatResponse extracts the validity flag and registered name and
// address from a checkVat reply. It is a pure function and never fails: when
// neither structured parsing nor the pattern fallback can locate a validity
// indicator the result is invalid with MsgUndetermined.
func ParseCheckVatResponse(xmlText string) CheckResult {
	stripped := defaultNSDecl.ReplaceAllString(xmlText, "")

	if result, ok := parseStructured(stripped); ok {
		return result
	}
	if result, ok := parsePatterns(stripped); ok {
		return result
	}

	return CheckResult{Valid: false, StatusMessage: MsgUndetermined}
}

// parseStructured walks the DOM looking for checkVatResponse at any depth and
// reads its valid/name/address children regardless of namespace prefix.
func parseStructured(xmlText string) (CheckResult, bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlText); err != nil || doc.Root() == nil {
		return CheckResult{}, false
	}

	response := findByLocalName(doc.Root(), "checkVatResponse")
	if response == nil {
		return CheckResult{}, false
	}

	validEl := childByLocalName(response, "valid")
	if validEl == nil {
		return CheckResult{}, false
	}

	valid := strings.EqualFold(strings.TrimSpace(validEl.Text()), "true")
	name := childText(response, "name")
	address := childText(response, "address")

	return makeResult(valid, name, address), true
}

// parsePatterns is the tolerant fallback for documents the parser rejects.
func parsePatterns(xmlText string) (CheckResult, bool) {
	m := validPattern.FindStringSubmatch(xmlText)
	if m == nil {
		return CheckResult{}, false
	}
	valid := strings.EqualFold(m[1], "true")

	name, address := "", ""
	if nm := namePattern.FindStringSubmatch(xmlText); nm != nil {
		name = strings.TrimSpace(nm[1])
	}
	if am := addressPattern.FindStringSubmatch(xmlText); am != nil {
		address = strings.TrimSpace(am[1])
	}

	return makeResult(valid, name, address), true
}

func makeResult(valid bool, name, address string) CheckResult {
	result := CheckResult{Valid: valid, Name: name, Address: address}

	var lines []string
	if valid {
		lines = append(lines, MsgActive)
	} else {
		lines = append(lines, MsgNotActive)
	}
	if name != "" {
		lines = append(lines, "Name: "+name)
	}
	if address != "" {
		lines = append(lines, "Address: "+address)
	}
	result.StatusMessage = strings.Join(lines, "\n")

	return result
}

// findByLocalName searches el and its descendants for the first element whose
// local name matches, ignoring any namespace prefix.
func findByLocalName(el *etree.Element, local string) *etree.Element {
	if el == nil {
		return nil
	}
	if el.Tag == local {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findByLocalName(child, local); found != nil {
			return found
		}
	}
	return nil
}

func childByLocalName(el *etree.Element, local string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == local {
			return child
		}
	}
	return nil
}

func childText(el *etree.Element, local string) string {
	child := childByLocalName(el, local)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
