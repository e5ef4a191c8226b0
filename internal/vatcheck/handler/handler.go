// Package handler exposes the vatcheck module over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"vies_backend/internal/vatcheck/service"
	"vies_backend/internal/vatcheck/transport"
	"vies_backend/platform/apperr"
	"vies_backend/platform/httpkit"
	"vies_backend/platform/logger"
	"vies_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "country_code and vat_number are required"
	msgValidationFailed = "validation failed"
	msgRenderFailed     = "failed to generate report"

	historyDefaultLimit = 20
	historyMaxLimit     = 100
)

// Handler handles HTTP requests for VAT checks.
type Handler struct {
	svc *service.Service
	val *validator.Validator
	log *logger.Logger
}

// New creates a new vatcheck handler.
func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

// CheckVat validates a VAT number against VIES.
// POST /check-vat (form-encoded: country_code, vat_number)
//
// Valid numbers get the PDF report as an attachment; invalid or unverifiable
// numbers get a 200 JSON message. Only a rendering failure is a 500.
func (h *Handler) CheckVat(c *gin.Context) {
	var req transport.CheckVatRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	outcome, err := h.svc.Check(c.Request.Context(), req.CountryCode, req.VatNumber)
	if err != nil {
		if domainErr, ok := err.(*apperr.Error); ok && domainErr.Kind == apperr.KindInternal {
			h.log.HTTPError(c.Request.Method, c.Request.URL.Path, http.StatusInternalServerError, err, c.ClientIP())
			httpkit.Internal(c, msgRenderFailed, domainErr.Err)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	if !outcome.Result.Valid {
		httpkit.Message(c, outcome.Result.StatusMessage)
		return
	}

	httpkit.PDFAttachment(c, outcome.Filename, outcome.PDF)
}

// History lists recent checks.
// GET /api/v1/checks?limit=20
func (h *Handler) History(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(historyDefaultLimit)))
	if err != nil || limit < 1 {
		limit = historyDefaultLimit
	}
	if limit > historyMaxLimit {
		limit = historyMaxLimit
	}

	result, err := h.svc.History(c.Request.Context(), limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
