package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/internal/usecase"
	"skypulse-engine/pkg/logger"
)

type recordingObservationRepo struct {
	saved []*entity.PriceObservation
}

func (r *recordingObservationRepo) Save(_ context.Context, o *entity.PriceObservation) error {
	r.saved = append(r.saved, o)
	return nil
}

func (r *recordingObservationRepo) FindSince(_ context.Context, _ time.Time) ([]*entity.PriceObservation, error) {
	return r.saved, nil
}

func newTestServer(t *testing.T) (http.Handler, *usecase.PriceIntelligence, *recordingObservationRepo) {
	t.Helper()
	log := logger.NewNopLogger()
	prices := usecase.NewPriceIntelligence(log, nil)
	repo := &recordingObservationRepo{}
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	return NewRouter(NewHandler(prices, repo, log, "test"), metrics, log), prices, repo
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	decode(t, rec, &resp)
	return resp.Error.Code
}

func seed(t *testing.T, prices *usecase.PriceIntelligence, route string, values ...float64) {
	t.Helper()
	end := time.Now().UTC()
	for i, v := range values {
		at := end.Add(-time.Duration(len(values)-1-i) * time.Hour)
		if err := prices.RecordPrice(route, v, at); err != nil {
			t.Fatalf("RecordPrice() error = %v", err)
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"healthy"`) {
		t.Fatalf("GET /health = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "# metrics") {
		t.Fatalf("GET /metrics = %d %s", rec.Code, rec.Body.String())
	}
}

func TestHealthReportsDegradedDependency(t *testing.T) {
	log := logger.NewNopLogger()
	h := NewHandler(usecase.NewPriceIntelligence(log, nil), nil, log, "test")
	h.AddHealthCheck("mongodb", HealthCheckFunc(func(context.Context) bool { return true }))
	h.AddHealthCheck("ollama", HealthCheckFunc(func(context.Context) bool { return false }))

	rec := do(t, NewRouter(h, nil, log), http.MethodGet, "/health", "")
	var resp struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	decode(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.Status != "degraded" {
		t.Fatalf("GET /health = %d %+v", rec.Code, resp)
	}
	if resp.Dependencies["mongodb"] != "healthy" || resp.Dependencies["ollama"] != "unhealthy" {
		t.Fatalf("dependencies = %+v", resp.Dependencies)
	}
}

func TestRecordPrice(t *testing.T) {
	h, prices, repo := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/prices", `{"route":"BER-PAR","price":149.5,"currency":"EUR"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /prices = %d %s", rec.Code, rec.Body.String())
	}
	var stats entity.RouteStatistics
	decode(t, rec, &stats)
	if stats.Route != "BER-PAR" || stats.CurrentPrice != 149.5 || stats.SampleCount != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if price, ok := prices.CurrentPrice("BER-PAR"); !ok || price != 149.5 {
		t.Fatalf("CurrentPrice() = %v, %v", price, ok)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("persisted %d observations, want 1", len(repo.saved))
	}
}

func TestRecordPriceValidation(t *testing.T) {
	h, _, repo := newTestServer(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "malformed", body: `{"route":`, code: CodeInvalidBody},
		{name: "blank route", body: `{"route":"  ","price":100}`, code: CodeInvalidParam},
		{name: "zero price", body: `{"route":"BER-PAR","price":0}`, code: CodeInvalidParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/prices", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := errorCode(t, rec); got != tt.code {
				t.Fatalf("code = %q, want %q", got, tt.code)
			}
		})
	}
	if len(repo.saved) != 0 {
		t.Fatal("invalid prices must not be persisted")
	}
}

func TestRecordPriceOutsideRetention(t *testing.T) {
	h, prices, repo := newTestServer(t)

	old := time.Now().UTC().AddDate(-2, 0, 0).Format(time.RFC3339)
	rec := do(t, h, http.MethodPost, "/api/v1/prices", `{"route":"BER-PAR","price":99,"observed_at":"`+old+`"}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != CodeInvalidParam {
		t.Fatalf("POST /prices with stale observed_at = %d %s", rec.Code, rec.Body.String())
	}
	if _, ok := prices.RouteStatistics("BER-PAR"); ok {
		t.Fatal("stale observation must not be recorded")
	}
	if len(repo.saved) != 0 {
		t.Fatal("stale observation must not be persisted")
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	h, prices, _ := newTestServer(t)

	if rec := do(t, h, http.MethodGet, "/api/v1/prices/stats", ""); rec.Code != http.StatusBadRequest || errorCode(t, rec) != CodeMissingParam {
		t.Fatalf("missing route = %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/prices/stats?route=NOPE", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route = %d", rec.Code)
	}

	seed(t, prices, "BER-PAR", 100, 200, 300)
	rec := do(t, h, http.MethodGet, "/api/v1/prices/stats?route=BER-PAR", "")
	var stats entity.RouteStatistics
	decode(t, rec, &stats)
	if rec.Code != http.StatusOK || stats.AveragePrice != 200 || stats.SampleCount != 3 {
		t.Fatalf("stats = %d %+v", rec.Code, stats)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	h, prices, _ := newTestServer(t)
	seed(t, prices, "BER-PAR", 100, 110)

	rec := do(t, h, http.MethodGet, "/api/v1/prices/history?route=BER-PAR&days=7", "")
	var resp struct {
		Days   int                 `json:"days"`
		Prices []entity.PricePoint `json:"prices"`
	}
	decode(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.Days != 7 || len(resp.Prices) != 2 {
		t.Fatalf("history = %d %+v", rec.Code, resp)
	}

	if rec := do(t, h, http.MethodGet, "/api/v1/prices/history?route=BER-PAR&days=0", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("days=0 status = %d", rec.Code)
	}
}

func TestPredictionEndpoint(t *testing.T) {
	h, prices, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/prices/prediction?route=BER-PAR", "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != CodeInsufficientData {
		t.Fatalf("prediction without data = %d %s", rec.Code, rec.Body.String())
	}

	seed(t, prices, "BER-PAR", 100, 100, 100, 120, 120, 120)
	rec = do(t, h, http.MethodGet, "/api/v1/prices/prediction?route=BER-PAR", "")
	var prediction entity.PricePrediction
	decode(t, rec, &prediction)
	if rec.Code != http.StatusOK || prediction.Recommendation != entity.RecommendationBuyNow {
		t.Fatalf("prediction = %d %+v", rec.Code, prediction)
	}
}

func TestShouldBuyEndpoint(t *testing.T) {
	h, prices, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/prices/should-buy?route=BER-PAR", "")
	var resp struct {
		ShouldBuy *bool  `json:"should_buy"`
		Reason    string `json:"reason"`
	}
	decode(t, rec, &resp)
	if resp.ShouldBuy != nil || resp.Reason != "Not enough data for prediction" {
		t.Fatalf("should-buy without data = %+v", resp)
	}

	seed(t, prices, "BER-PAR", 140, 140, 140, 110, 110, 110)
	rec = do(t, h, http.MethodGet, "/api/v1/prices/should-buy?route=BER-PAR&target=120", "")
	decode(t, rec, &resp)
	if resp.ShouldBuy == nil || !*resp.ShouldBuy {
		t.Fatalf("should-buy with target = %+v", resp)
	}

	if rec := do(t, h, http.MethodGet, "/api/v1/prices/should-buy?route=BER-PAR&target=abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad target status = %d", rec.Code)
	}
}

func TestSeasonalEndpoint(t *testing.T) {
	h, _, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/v1/prices/seasonal?route=BER-PAR&date=2026-07-14", "")
	var resp struct {
		Patterns map[string]entity.SeasonalPattern `json:"patterns"`
		Advice   entity.SeasonalAdvice             `json:"advice"`
	}
	decode(t, rec, &resp)
	if rec.Code != http.StatusOK || len(resp.Patterns) != 0 {
		t.Fatalf("seasonal = %d %+v", rec.Code, resp)
	}
	if resp.Advice.Season != entity.SeasonSummer || resp.Advice.Reason != "Not enough seasonal data" {
		t.Fatalf("advice = %+v", resp.Advice)
	}

	if rec := do(t, h, http.MethodGet, "/api/v1/prices/seasonal?route=BER-PAR&date=July", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d", rec.Code)
	}
}

func TestAlertsEndpoints(t *testing.T) {
	h, prices, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/alerts", `{"route":"BER-PAR","target_price":100}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /alerts = %d %s", rec.Code, rec.Body.String())
	}
	var alert entity.PriceAlert
	decode(t, rec, &alert)
	if alert.ID == "" || alert.Triggered {
		t.Fatalf("alert = %+v", alert)
	}

	if rec := do(t, h, http.MethodPost, "/api/v1/alerts", `{"route":"BER-PAR","target_price":-1}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid target status = %d", rec.Code)
	}

	var list struct {
		Alerts []entity.PriceAlert `json:"alerts"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/v1/alerts", ""), &list)
	if len(list.Alerts) != 1 {
		t.Fatalf("alerts = %+v", list.Alerts)
	}

	seed(t, prices, "BER-PAR", 90)
	decode(t, do(t, h, http.MethodGet, "/api/v1/alerts?route=BER-PAR", ""), &list)
	if len(list.Alerts) != 0 {
		t.Fatalf("triggered alert still listed: %+v", list.Alerts)
	}
}
