package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/service/cache"
	"TradeLens/internal/services/confidence"
	"TradeLens/internal/services/horizon"
	"TradeLens/internal/services/manipulation"
	"TradeLens/internal/services/pattern"
	"TradeLens/internal/services/structure"
	"TradeLens/internal/usecase"
	"TradeLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubStore struct{}

func (stubStore) GetBars(ctx context.Context, symbol string, from, to time.Time, res models.Resolution) ([]models.Bar, error) {
	return stubBars(), nil
}

func (stubStore) GetLatestNBars(ctx context.Context, symbol string, n int, res models.Resolution) ([]models.Bar, error) {
	return stubBars(), nil
}

func stubBars() []models.Bar {
	bars := make([]models.Bar, 60)
	p := 100.0
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      p, High: p + 1, Low: p - 1, Close: p + 0.5,
			Volume: 100,
		}
		p += 0.5
	}
	return bars
}

func testHandler(t *testing.T) *AnalysisHandler {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	svc := usecase.NewAnalysisService(
		stubStore{},
		pattern.NewDetector(),
		manipulation.NewDetector(manipulation.DefaultConfig()),
		structure.NewDetector(structure.DefaultConfig()),
		horizon.NewAggregator(),
		confidence.NewEngine(),
		log,
	)
	return NewAnalysisHandler(log, svc)
}

func doRequest(h *AnalysisHandler, target string, fn func(echo.Context) error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	_ = fn(e.NewContext(req, rec))
	return rec
}

func TestPatternsRequiresSymbol(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(h, "/api/patterns", h.Patterns)

	var body struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", body.Status)
	}
}

func TestAnalyzeReturnsEnvelope(t *testing.T) {
	h := testHandler(t)
	rec := doRequest(h, "/api/analyze?symbol=BTCUSDT&n=60", h.Analyze)

	var body struct {
		Status int                     `json:"status"`
		Data   models.ConfidenceResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", body.Status, rec.Body.String())
	}
	if body.Data.Symbol != "BTCUSDT" {
		t.Errorf("symbol = %q", body.Data.Symbol)
	}
	if body.Data.ProbabilityBullish+body.Data.ProbabilityBearish != 100 {
		t.Errorf("probabilities do not sum to 100")
	}
}

func TestBarsServedFromCache(t *testing.T) {
	h := testHandler(t)
	h.SetCache(cache.NewTTLCache())

	first := doRequest(h, "/api/bars?symbol=BTCUSDT&res=1h&n=60", h.Bars)
	if first.Code != http.StatusOK {
		t.Fatalf("first request code = %d", first.Code)
	}
	second := doRequest(h, "/api/bars?symbol=BTCUSDT&res=1h&n=60", h.Bars)
	if strings.TrimSpace(second.Body.String()) != strings.TrimSpace(first.Body.String()) {
		t.Errorf("cached response differs from original")
	}
}
