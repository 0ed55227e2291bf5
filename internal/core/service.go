package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/RegionAnalyzer/internal/config"
	"github.com/JonMunkholm/RegionAnalyzer/internal/logging"
	"github.com/google/uuid"
)

// Service runs region analyses under a concurrency limit and a per-analysis
// timeout. It keeps no state between analyses.
type Service struct {
	limiter *AnalysisLimiter
	timeout time.Duration
}

// NewService creates a Service from the analysis settings in cfg.
func NewService(cfg *config.Config) *Service {
	return &Service{
		limiter: NewAnalysisLimiter(cfg.Analysis.MaxConcurrent, cfg.Analysis.MaxWaitTime),
		timeout: cfg.Analysis.Timeout,
	}
}

// Analyze reads a CSV upload from r and aggregates it by region.
//
// It waits for a free analysis slot first (ErrTooManyAnalyses if none frees
// up in time). Bad input yields a *ParseError; a nil *Analysis is returned on
// every failure.
func (s *Service) Analyze(ctx context.Context, fileName string, r io.Reader) (*Analysis, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	id := uuid.New().String()
	logger := logging.WithFields(ctx, "analysis_id", id, "file", fileName)
	logger.Debug("analysis started")

	start := time.Now()
	input := NewInputReader(r)

	tally, err := countRegions(ctx, input)
	if err != nil {
		logger.Warn("analysis failed",
			"bytes", input.BytesRead(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		if IsParseError(err) {
			return nil, err
		}
		// fileName is client-supplied; it stays in the log fields so it can
		// never steer MapError's pattern match.
		return nil, fmt.Errorf("analyze: %w", err)
	}

	regions := tally.Summaries()
	analysis := &Analysis{
		ID:        id,
		FileName:  fileName,
		Regions:   regions,
		Breakdown: BreakdownOf(regions),
		Rows:      tally.Rows,
		Unkeyed:   tally.Unkeyed,
		Bytes:     input.BytesRead(),
		Duration:  time.Since(start),
	}

	logger.Info("analysis completed",
		"rows", analysis.Rows,
		"unkeyed_rows", analysis.Unkeyed,
		"regions", len(regions),
		"high", analysis.Breakdown.High,
		"bytes", analysis.Bytes,
		"duration_ms", analysis.Duration.Milliseconds(),
	)

	return analysis, nil
}

// LimiterStatus reports analysis slot usage.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// WaitForAnalyses blocks until in-flight analyses finish or ctx ends.
func (s *Service) WaitForAnalyses(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
