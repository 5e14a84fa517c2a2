package grading

import (
	"context"

	"github.com/farmfast/platform/pkg/logging"
)

// FallbackGrader wraps a primary grader with a fallback provider. If the
// primary fails, it automatically retries with the fallback.
type FallbackGrader struct {
	primary  Grader
	fallback Grader
	logger   *logging.Logger
}

// NewFallbackGrader creates a fallback-enabled grader. If fallback is nil,
// only the primary provider is used.
func NewFallbackGrader(primary, fallback Grader, logger *logging.Logger) *FallbackGrader {
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackGrader{primary: primary, fallback: fallback, logger: logger}
}

var _ Grader = (*FallbackGrader)(nil)

func (g *FallbackGrader) Grade(ctx context.Context, image []byte) (*Result, error) {
	result, err := g.primary.Grade(ctx, image)
	if err == nil {
		return result, nil
	}

	g.logger.Warn("primary grader failed, attempting fallback",
		"error", err.Error(),
		"fallback_available", g.fallback != nil,
	)

	if g.fallback == nil {
		return nil, err
	}

	fallbackResult, fallbackErr := g.fallback.Grade(ctx, image)
	if fallbackErr != nil {
		g.logger.Error("fallback grader also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return nil, fallbackErr
	}

	g.logger.Info("fallback grader succeeded after primary failure")
	return fallbackResult, nil
}
