package usecase

import (
	"context"
	"fmt"
	"sync"

	"TradeLens/internal/domain/models"
	domrepo "TradeLens/internal/domain/repository"
	domsvc "TradeLens/internal/domain/service"
	"TradeLens/internal/services/series"
	"TradeLens/pkg/logger"
)

// Base resolution for the single-resolution endpoints and the confidence
// pipeline's volatility window.
const baseResolution = models.Res1h

// AnalysisService wires the bar store to the detector stack. The detectors
// are pure; all I/O happens here.
type AnalysisService struct {
	store     domrepo.BarStore
	patterns  domsvc.PatternDetector
	manip     domsvc.ManipulationDetector
	structure domsvc.StructureDetector
	horizon   domsvc.HorizonAnalyzer
	engine    domsvc.ConfidenceEngine
	log       *logger.Logger
}

func NewAnalysisService(
	store domrepo.BarStore,
	patterns domsvc.PatternDetector,
	manip domsvc.ManipulationDetector,
	structure domsvc.StructureDetector,
	horizon domsvc.HorizonAnalyzer,
	engine domsvc.ConfidenceEngine,
	log *logger.Logger,
) *AnalysisService {
	return &AnalysisService{
		store:     store,
		patterns:  patterns,
		manip:     manip,
		structure: structure,
		horizon:   horizon,
		engine:    engine,
		log:       log,
	}
}

// Bars reads the latest n bars for one resolution, resampling in-process
// when the store has no native table for it.
func (s *AnalysisService) Bars(ctx context.Context, symbol string, res models.Resolution, n int) ([]models.Bar, error) {
	bars, err := s.fetch(ctx, symbol, res, n)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateBars(bars); err != nil {
		return nil, err
	}
	return bars, nil
}

// Patterns runs the candlestick/chart/pressure detectors over one series.
func (s *AnalysisService) Patterns(ctx context.Context, symbol string, res models.Resolution, n int) (models.PatternReport, error) {
	bars, err := s.Bars(ctx, symbol, res, n)
	if err != nil {
		return models.PatternReport{}, err
	}
	return s.patterns.Detect(bars), nil
}

// Manipulation runs the operator-behavior detector over one series.
func (s *AnalysisService) Manipulation(ctx context.Context, symbol string, res models.Resolution, n int) (models.ManipulationReport, error) {
	bars, err := s.Bars(ctx, symbol, res, n)
	if err != nil {
		return models.ManipulationReport{}, err
	}
	return s.manip.Detect(bars), nil
}

// Structure runs the market-structure detector over one series.
func (s *AnalysisService) Structure(ctx context.Context, symbol string, res models.Resolution, n int) (models.StructureReport, error) {
	bars, err := s.Bars(ctx, symbol, res, n)
	if err != nil {
		return models.StructureReport{}, err
	}
	return s.structure.Analyze(bars), nil
}

// Horizon gathers the six resolutions concurrently and aggregates them. A
// resolution the store cannot supply degrades to its neutral default rather
// than failing the call.
func (s *AnalysisService) Horizon(ctx context.Context, symbol string, n int) (models.MultiHorizonReport, error) {
	input := s.gather(ctx, symbol, n)
	return s.horizon.Analyze(input), nil
}

// Analyze runs the whole pipeline and fuses the component reports into one
// ConfidenceResult.
func (s *AnalysisService) Analyze(ctx context.Context, symbol string, n int) (models.ConfidenceResult, error) {
	bars, err := s.Bars(ctx, symbol, baseResolution, n)
	if err != nil {
		return models.ConfidenceResult{}, err
	}
	input := s.gather(ctx, symbol, n)

	patterns := s.patterns.Detect(bars)
	manipulation := s.manip.Detect(bars)
	structRep := s.structure.Analyze(bars)
	horizonRep := s.horizon.Analyze(input)

	return s.engine.Evaluate(symbol, bars, patterns, manipulation, structRep, horizonRep), nil
}

// gather fetches all six resolutions in parallel into fixed slots. Failed or
// invalid series become nil entries, which the aggregator treats as that
// resolution's neutral default.
func (s *AnalysisService) gather(ctx context.Context, symbol string, n int) map[models.Resolution][]models.Bar {
	resolutions := models.Resolutions()
	slots := make([][]models.Bar, len(resolutions))

	var wg sync.WaitGroup
	for i, res := range resolutions {
		wg.Add(1)
		go func(i int, res models.Resolution) {
			defer wg.Done()
			bars, err := s.fetch(ctx, symbol, res, n)
			if err != nil {
				s.log.Warn("resolution unavailable, using neutral default",
					logger.String("symbol", symbol),
					logger.String("res", string(res)),
					logger.Error(err))
				return
			}
			if err := models.ValidateBars(bars); err != nil {
				s.log.Warn("invalid bars from store, using neutral default",
					logger.String("symbol", symbol),
					logger.String("res", string(res)),
					logger.Error(err))
				return
			}
			slots[i] = bars
		}(i, res)
	}
	wg.Wait()

	input := make(map[models.Resolution][]models.Bar, len(resolutions))
	for i, res := range resolutions {
		input[res] = slots[i]
	}
	return input
}

// fetch reads native bars or derives a coarser resolution by resampling the
// nearest finer native one.
func (s *AnalysisService) fetch(ctx context.Context, symbol string, res models.Resolution, n int) ([]models.Bar, error) {
	if domrepo.HasNative(res) {
		bars, err := s.store.GetLatestNBars(ctx, symbol, n, res)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", models.ErrUpstreamUnavailable, symbol, res, err)
		}
		return bars, nil
	}

	base, factor := finerSource(res)
	fine, err := s.store.GetLatestNBars(ctx, symbol, n*factor, base)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", models.ErrUpstreamUnavailable, symbol, base, err)
	}
	coarse, err := series.Resample(fine, factor)
	if err != nil {
		return nil, fmt.Errorf("resample %s to %s: %w", base, res, err)
	}
	return coarse, nil
}

// finerSource maps a derived resolution to its native source and grouping
// factor: 4h from 1h, 1w from 1d.
func finerSource(res models.Resolution) (models.Resolution, int) {
	switch res {
	case models.Res4h:
		return models.Res1h, 4
	case models.Res1w:
		return models.Res1d, 7
	}
	return models.Res1h, 1
}
