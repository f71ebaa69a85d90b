package usecase

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"task-intent/internal/interpret"
)

// Warm parses inputs with bounded concurrency so they become exact cache
// hits. Individual failures are counted, not returned; only cancellation of
// ctx is reported as an error.
func (uc *implUseCase) Warm(ctx context.Context, input interpret.WarmInput) (interpret.WarmOutput, error) {
	var parsed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.WarmConcurrency)
	for _, text := range input.Texts {
		if gctx.Err() != nil {
			break
		}
		text := text
		g.Go(func() error {
			if _, err := uc.Parse(gctx, interpret.ParseInput{Text: text}); err != nil {
				uc.l.Warnf(gctx, "%s: skipping %q: %v", LogPrefixWarm, text, err)
				failed.Add(1)
				return nil
			}
			parsed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	out := interpret.WarmOutput{Parsed: int(parsed.Load()), Failed: int(failed.Load())}
	if err := ctx.Err(); err != nil {
		uc.l.Warnf(ctx, "%s: interrupted after %d inputs: %v", LogPrefixWarm, out.Parsed, err)
		return out, err
	}
	uc.l.Infof(ctx, "%s: parsed=%d failed=%d", LogPrefixWarm, out.Parsed, out.Failed)
	return out, nil
}

// Stats reports cache occupancy and the health-probe result.
func (uc *implUseCase) Stats(ctx context.Context) interpret.StatsOutput {
	s := uc.cache.Stats()
	return interpret.StatsOutput{
		CacheLen:           s.Len,
		CacheCapacity:      s.Capacity,
		InferenceAvailable: uc.inferenceAvailable,
	}
}
