package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/internal/usecase"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

type recordPriceRequest struct {
	Route      string     `json:"route"`
	Price      float64    `json:"price"`
	Currency   string     `json:"currency"`
	ObservedAt *time.Time `json:"observed_at"`
}

// RecordPrice handles POST /api/v1/prices
func (h *Handler) RecordPrice(w http.ResponseWriter, r *http.Request) {
	var req recordPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, "Request body must be valid JSON")
		return
	}
	req.Route = strings.TrimSpace(req.Route)
	if req.Currency == "" {
		req.Currency = entity.DefaultCurrency
	}

	observedAt := time.Now().UTC()
	if req.ObservedAt != nil && !req.ObservedAt.IsZero() {
		observedAt = req.ObservedAt.UTC()
	}
	if !observedAt.After(time.Now().Add(-usecase.HistoryRetention)) {
		writeError(w, http.StatusBadRequest, CodeInvalidParam, "observed_at is outside the 365 day retention window")
		return
	}

	if err := h.prices.RecordPriceWithCurrency(req.Route, req.Price, req.Currency, observedAt); err != nil {
		if errors.Is(err, usecase.ErrInvalidRoute) || errors.Is(err, usecase.ErrInvalidPrice) {
			writeError(w, http.StatusBadRequest, CodeInvalidParam, err.Error())
			return
		}
		h.logger.Error("Failed to record price", "route", req.Route, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "Failed to record price")
		return
	}

	// pruning against a newer point can still leave the route empty
	stats, ok := h.prices.RouteStatistics(req.Route)
	if !ok {
		writeError(w, http.StatusBadRequest, CodeInvalidParam, "observed_at is outside the retention window of route "+req.Route)
		return
	}

	if h.observations != nil {
		observation := &entity.PriceObservation{
			Route:      req.Route,
			Price:      req.Price,
			Currency:   req.Currency,
			ObservedAt: observedAt,
		}
		if err := h.observations.Save(r.Context(), observation); err != nil {
			h.logger.Warn("Failed to persist price observation", "route", req.Route, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, stats)
}

// GetStatistics handles GET /api/v1/prices/stats
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	route, ok := requireRoute(w, r)
	if !ok {
		return
	}

	stats, found := h.prices.RouteStatistics(route)
	if !found {
		writeError(w, http.StatusNotFound, CodeNotFound, "No price history for route "+route)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GetHistory handles GET /api/v1/prices/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	route, ok := requireRoute(w, r)
	if !ok {
		return
	}

	days := defaultHistoryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxHistoryDays {
			writeError(w, http.StatusBadRequest, CodeInvalidParam, "days must be between 1 and 365")
			return
		}
		days = parsed
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"route":  route,
		"days":   days,
		"prices": h.prices.History(route, days),
	})
}

// GetPrediction handles GET /api/v1/prices/prediction
func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	route, ok := requireRoute(w, r)
	if !ok {
		return
	}

	prediction := h.prices.Predict(route)
	if prediction == nil {
		writeError(w, http.StatusNotFound, CodeInsufficientData, "Not enough data for prediction")
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

// GetSeasonal handles GET /api/v1/prices/seasonal. The optional date
// (YYYY-MM-DD) adds a recommendation for that travel date.
func (h *Handler) GetSeasonal(w http.ResponseWriter, r *http.Request) {
	route, ok := requireRoute(w, r)
	if !ok {
		return
	}

	response := map[string]interface{}{
		"route":    route,
		"patterns": h.prices.SeasonalPatterns(route),
	}

	if raw := r.URL.Query().Get("date"); raw != "" {
		travelDate, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidParam, "date must be formatted as YYYY-MM-DD")
			return
		}
		response["advice"] = h.prices.SeasonalRecommendation(route, travelDate)
	}

	writeJSON(w, http.StatusOK, response)
}

// GetShouldBuy handles GET /api/v1/prices/should-buy
func (h *Handler) GetShouldBuy(w http.ResponseWriter, r *http.Request) {
	route, ok := requireRoute(w, r)
	if !ok {
		return
	}

	var target *float64
	if raw := r.URL.Query().Get("target"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidParam, "target must be a number")
			return
		}
		target = &parsed
	}

	decision := h.prices.ShouldBuy(route, target)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"route":      route,
		"should_buy": decision.ShouldBuy,
		"reason":     decision.Reason,
	})
}

func requireRoute(w http.ResponseWriter, r *http.Request) (string, bool) {
	route := strings.TrimSpace(r.URL.Query().Get("route"))
	if route == "" {
		writeError(w, http.StatusBadRequest, CodeMissingParam, "route query parameter is required")
		return "", false
	}
	return route, true
}
