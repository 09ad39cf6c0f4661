package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"skypulse-engine/internal/usecase"
)

type createAlertRequest struct {
	Route       string  `json:"route"`
	TargetPrice float64 `json:"target_price"`
}

// ListAlerts handles GET /api/v1/alerts. Without a route it lists pending
// alerts for every route.
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	route := strings.TrimSpace(r.URL.Query().Get("route"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": h.prices.ActiveAlerts(route),
	})
}

// CreateAlert handles POST /api/v1/alerts
func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, "Request body must be valid JSON")
		return
	}

	alert, err := h.prices.CreateAlert(strings.TrimSpace(req.Route), req.TargetPrice)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRoute) || errors.Is(err, usecase.ErrInvalidTarget) {
			writeError(w, http.StatusBadRequest, CodeInvalidParam, err.Error())
			return
		}
		h.logger.Error("Failed to create alert", "route", req.Route, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "Failed to create alert")
		return
	}

	writeJSON(w, http.StatusCreated, alert)
}
