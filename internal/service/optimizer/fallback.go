package optimizer

import (
	"context"
	"log/slog"
)

// FallbackStrategy tries the primary strategy and, on any error, runs the
// fallback. The primary's unavailability is logged, never returned.
type FallbackStrategy struct {
	primary  Strategy
	fallback Strategy
}

func NewFallbackStrategy(primary, fallback Strategy) *FallbackStrategy {
	return &FallbackStrategy{primary: primary, fallback: fallback}
}

func (f *FallbackStrategy) Optimize(ctx context.Context, input OptimizeInput) (OptimizeResult, error) {
	if f.primary != nil {
		result, err := f.primary.Optimize(ctx, input)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return OptimizeResult{}, ctx.Err()
		}
		slog.Warn("optimizer backend failed, using local fallback", "error", err)
	}
	return f.fallback.Optimize(ctx, input)
}
