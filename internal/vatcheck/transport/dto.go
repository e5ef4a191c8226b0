// Package transport defines the request and response shapes of the vatcheck
// module's HTTP surface.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CheckVatRequest is the form body of POST /check-vat.
type CheckVatRequest struct {
	CountryCode string `form:"country_code" validate:"required,country_code"`
	VatNumber   string `form:"vat_number" validate:"required,min=1,max=64"`
}

// CheckRecordResponse represents one historical check in API responses.
type CheckRecordResponse struct {
	ID            uuid.UUID `json:"id"`
	CountryCode   string    `json:"countryCode"`
	VatNumber     string    `json:"vatNumber"`
	Valid         bool      `json:"valid"`
	Name          string    `json:"name,omitempty"`
	Address       string    `json:"address,omitempty"`
	StatusMessage string    `json:"statusMessage"`
	Unverifiable  bool      `json:"unverifiable,omitempty"`
	CheckedAt     time.Time `json:"checkedAt"`
}

// CheckHistoryResponse wraps a list of historical checks.
type CheckHistoryResponse struct {
	Items []CheckRecordResponse `json:"items"`
	Total int                   `json:"total"`
}
