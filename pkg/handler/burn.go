package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"burn_tokens_back/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateBurn(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.errorResponse(c, models.NewValidationError("body", "No data provided"))
		return
	}

	req, err := parseBurnRequest(body)
	if err != nil {
		h.errorResponse(c, err)
		return
	}

	receipt, err := h.service.Burn.Create(c.Request.Context(), req)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// parseBurnRequest checks the body field by field so that the first failing check,
// in the order body, token_address, amount, is the one reported.
func parseBurnRequest(body []byte) (models.BurnRequest, error) {
	var req models.BurnRequest

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return req, models.NewValidationError("body", "No data provided")
	}

	// a non-string address counts as missing
	if err := json.Unmarshal(fields["token_address"], &req.TokenAddress); err != nil || req.TokenAddress == "" {
		return req, models.NewValidationError("token_address", "token_address is required")
	}

	raw := bytes.TrimSpace(fields["amount"])
	// json.Number would also accept a quoted number
	if len(raw) == 0 || raw[0] == '"' || json.Unmarshal(raw, &req.Amount) != nil {
		return req, models.NewValidationError("amount", "Valid amount is required")
	}
	if v, err := req.Amount.Float64(); err != nil || v <= 0 {
		return req, models.NewValidationError("amount", "Valid amount is required")
	}

	if raw, ok := fields["reason"]; ok && string(bytes.TrimSpace(raw)) != "null" {
		var reason string
		if err := json.Unmarshal(raw, &reason); err != nil {
			return req, models.NewValidationError("reason", "reason must be a string")
		}
		req.Reason = &reason
	}
	return req, nil
}

func (h *Handler) ListBurns(c *gin.Context) {
	page := models.NewPage(
		queryInt(c, "page", models.DefaultPage),
		queryInt(c, "limit", models.DefaultLimit),
	)

	burns, err := h.service.Burn.List(c.Request.Context(), page)
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, burns)
}

func (h *Handler) GetBurn(c *gin.Context) {
	// unsigned digits only, anything else is not a burn path
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil {
		endpointNotFound(c)
		return
	}

	burn, err := h.service.Burn.Get(c.Request.Context(), int64(id))
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, burn)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Burn.Stats(c.Request.Context())
	if err != nil {
		h.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// queryInt falls back to def when the parameter is absent, malformed or not positive.
func queryInt(c *gin.Context, key string, def int64) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || v < 1 {
		return def
	}
	return v
}
