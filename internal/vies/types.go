// Package vies implements the round-trip against the EU VIES VAT validation
// service: input normalization, the SOAP request, and tolerant parsing of the
// XML reply.
package vies

// CheckResult is the parsed outcome of one checkVat call. It is immutable
// once constructed; the zero value means "not valid, nothing known".
type CheckResult struct {
	Valid         bool   `json:"valid"`
	Name          string `json:"name,omitempty"`
	Address       string `json:"address,omitempty"`
	StatusMessage string `json:"statusMessage"`
	// Unverifiable is set when the upstream could not be reached or gave no
	// usable answer. It distinguishes "VIES said no" from "we could not ask".
	Unverifiable bool `json:"unverifiable,omitempty"`
}

// Transcript carries the raw SOAP exchange of a single check. It exists only
// for the duration of one request and is threaded explicitly into the report
// renderer instead of being stored on the client.
type Transcript struct {
	RequestXML  string
	ResponseXML string
}

// Status messages produced by the parser.
const (
	MsgActive       = "VAT number is active"
	MsgNotActive    = "VAT number is not active"
	MsgUndetermined = "Could not determine VAT number status"
)
