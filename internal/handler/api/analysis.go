package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"TradeLens/internal/domain/models"
	domrepo "TradeLens/internal/domain/repository"
	icache "TradeLens/internal/service/cache"
	"TradeLens/internal/service/metrics"
	"TradeLens/internal/service/ratelimit"
	"TradeLens/internal/usecase"
	xhttp "TradeLens/pkg/http"
	xlogger "TradeLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler exposes the analysis pipeline over HTTP.
type AnalysisHandler struct {
	logger *xlogger.Logger
	svc    *usecase.AnalysisService
	cache  icache.BytesCache
	rl     *ratelimit.Limiter

	ttlAnalyze time.Duration
	ttlReports time.Duration
	ttlBars    time.Duration
}

func NewAnalysisHandler(logger *xlogger.Logger, svc *usecase.AnalysisService) *AnalysisHandler {
	metrics.Register()
	return &AnalysisHandler{
		logger:     logger,
		svc:        svc,
		rl:         ratelimit.New(),
		ttlAnalyze: 15 * time.Second,
		ttlReports: 30 * time.Second,
		ttlBars:    10 * time.Second,
	}
}

// SetCache enables response caching.
func (h *AnalysisHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetCacheTTLs overrides the per-endpoint cache TTLs; zero keeps the default.
func (h *AnalysisHandler) SetCacheTTLs(analyze, reports, bars time.Duration) {
	if analyze > 0 {
		h.ttlAnalyze = analyze
	}
	if reports > 0 {
		h.ttlReports = reports
	}
	if bars > 0 {
		h.ttlBars = bars
	}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analyze", h.Analyze)
	g.GET("/patterns", h.Patterns)
	g.GET("/manipulation", h.Manipulation)
	g.GET("/structure", h.Structure)
	g.GET("/horizon", h.Horizon)
	g.GET("/bars", h.Bars)
}

func (h *AnalysisHandler) Analyze(c echo.Context) error {
	endpoint := "analyze"
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return h.serve(c, endpoint, cacheKey(endpoint, req.Symbol, "", req.N), h.ttlAnalyze,
		rateFor(endpoint), func(c echo.Context) (interface{}, error) {
			return h.svc.Analyze(c.Request().Context(), req.Symbol, req.N)
		})
}

func (h *AnalysisHandler) Patterns(c echo.Context) error {
	endpoint := "patterns"
	req := &models.PatternsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := domrepo.NormalizeResolution(req.Res)
	return h.serve(c, endpoint, cacheKey(endpoint, req.Symbol, string(res), req.N), h.ttlReports,
		rateFor(endpoint), func(c echo.Context) (interface{}, error) {
			return h.svc.Patterns(c.Request().Context(), req.Symbol, res, req.N)
		})
}

func (h *AnalysisHandler) Manipulation(c echo.Context) error {
	endpoint := "manipulation"
	req := &models.ManipulationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := domrepo.NormalizeResolution(req.Res)
	return h.serve(c, endpoint, cacheKey(endpoint, req.Symbol, string(res), req.N), h.ttlReports,
		rateFor(endpoint), func(c echo.Context) (interface{}, error) {
			return h.svc.Manipulation(c.Request().Context(), req.Symbol, res, req.N)
		})
}

func (h *AnalysisHandler) Structure(c echo.Context) error {
	endpoint := "structure"
	req := &models.StructureRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := domrepo.NormalizeResolution(req.Res)
	return h.serve(c, endpoint, cacheKey(endpoint, req.Symbol, string(res), req.N), h.ttlReports,
		rateFor(endpoint), func(c echo.Context) (interface{}, error) {
			return h.svc.Structure(c.Request().Context(), req.Symbol, res, req.N)
		})
}

func (h *AnalysisHandler) Horizon(c echo.Context) error {
	endpoint := "horizon"
	req := &models.HorizonRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return h.serve(c, endpoint, cacheKey(endpoint, req.Symbol, "", req.N), h.ttlAnalyze,
		rateFor(endpoint), func(c echo.Context) (interface{}, error) {
			return h.svc.Horizon(c.Request().Context(), req.Symbol, req.N)
		})
}

func (h *AnalysisHandler) Bars(c echo.Context) error {
	endpoint := "bars"
	req := &models.BarsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := domrepo.NormalizeResolution(req.Res)
	return h.serve(c, endpoint, cacheKey(endpoint, req.Symbol, string(res), req.N), h.ttlBars,
		rateFor(endpoint), func(c echo.Context) (interface{}, error) {
			return h.svc.Bars(c.Request().Context(), req.Symbol, res, req.N)
		})
}

type rate struct {
	capacity  float64
	refillSec float64
}

// analyze fans out to six resolutions, so it gets the tightest budget.
func rateFor(endpoint string) rate {
	switch endpoint {
	case "analyze", "horizon":
		return rate{capacity: 3, refillSec: 1}
	default:
		return rate{capacity: 5, refillSec: 2}
	}
}

// serve handles throttling, the response cache, and error mapping around a
// usecase call.
func (h *AnalysisHandler) serve(c echo.Context, endpoint, key string, ttl time.Duration, r rate, fn func(echo.Context) (interface{}, error)) error {
	start := time.Now()
	defer func() {
		metrics.AnalysisLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	if !h.rl.Allow(c.RealIP()+":"+endpoint, r.capacity, r.refillSec) {
		h.logger.Warn("analysis rate limited",
			xlogger.String("endpoint", endpoint),
			xlogger.String("remote", c.RealIP()),
		)
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	ctx := c.Request().Context()
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(ctx, key); err != nil {
			h.logger.Warn("analysis cache get failed", xlogger.String("endpoint", endpoint), xlogger.Error(err))
		} else if ok {
			metrics.AnalysisCacheHits.WithLabelValues(endpoint).Inc()
			return c.JSONBlob(http.StatusOK, b)
		}
	}

	res, err := fn(c)
	if err != nil {
		metrics.AnalysisErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("analysis usecase failed", xlogger.String("endpoint", endpoint), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(err))
	}

	if h.cache != nil {
		envelope := xhttp.APIResponse{
			Status:  http.StatusOK,
			Message: http.StatusText(http.StatusOK),
			Data:    res,
		}
		if b, err := json.Marshal(envelope); err == nil {
			if err := h.cache.SetBytes(ctx, key, b, ttl); err != nil {
				h.logger.Warn("analysis cache set failed", xlogger.String("endpoint", endpoint), xlogger.Error(err))
			}
		}
	}
	return xhttp.SuccessResponse(c, res)
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidBar):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrInsufficientData):
		return xhttp.BadRequestError(err.Error()).WithError(err)
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return xhttp.NewAppError("ERR_UPSTREAM", "", err.Error(), http.StatusBadGateway).WithError(err)
	default:
		return err
	}
}

func cacheKey(endpoint, symbol, res string, n int) string {
	key := endpoint + ":" + symbol
	if res != "" {
		key += ":" + res
	}
	return key + ":" + strconv.Itoa(n)
}
