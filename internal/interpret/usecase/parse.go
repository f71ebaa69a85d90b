package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xrash/smetrics"

	"task-intent/internal/interpret"
	"task-intent/internal/interpret/cache"
	"task-intent/internal/interpret/inference"
	"task-intent/internal/model"
)

// Jaro-Winkler parameters: boost above 0.7 over a prefix of up to 4 runes.
const (
	jaroBoostThreshold = 0.7
	jaroPrefixSize     = 4
)

// Parse runs the strategy cascade. Every stage except the cache lookups
// writes its result back under the raw input. Cached intents are copied on
// the way in and out so callers never share memory with the cache.
func (uc *implUseCase) Parse(ctx context.Context, input interpret.ParseInput) (model.ParseOutcome, error) {
	started := time.Now()
	raw := input.Text
	if strings.TrimSpace(raw) == "" {
		return model.ParseOutcome{}, interpret.ErrInvalidInput
	}

	if entry, ok := uc.cache.Get(raw); ok {
		if entry.Intent == nil {
			uc.l.Errorf(ctx, "%s: cache entry without intent for %q", LogPrefixParse, raw)
			return model.ParseOutcome{}, interpret.ErrInternal
		}
		uc.l.Debugf(ctx, "%s: exact cache hit strategy=%s", LogPrefixParse, entry.Strategy)
		return uc.outcome(started, model.CloneIntent(entry.Intent), model.StrategyCachedExact, entry.Confidence), nil
	}

	if match, similarity, ok := uc.fuzzyLookup(raw); ok {
		if match.Intent == nil {
			uc.l.Errorf(ctx, "%s: cache entry without intent near %q", LogPrefixParse, raw)
			return model.ParseOutcome{}, interpret.ErrInternal
		}
		uc.l.Debugf(ctx, "%s: fuzzy cache hit similarity=%.3f", LogPrefixParse, similarity)
		return uc.outcome(started, model.CloneIntent(match.Intent), model.StrategyCachedFuzzy, match.Confidence*similarity), nil
	}

	now := uc.now().In(uc.cfg.Location)
	intent, strategy, confidence := uc.interpret(ctx, raw, now)
	uc.l.Debugf(ctx, "%s: strategy=%s kind=%s", LogPrefixParse, strategy, intent.Kind())

	uc.cache.Put(raw, cache.Entry{
		Intent:     model.CloneIntent(intent),
		Strategy:   strategy,
		Confidence: confidence,
		CreatedAt:  now,
	})
	return uc.outcome(started, intent, strategy, confidence), nil
}

// interpret runs the producing stages. It cannot fail: the last stage is
// the fallback.
func (uc *implUseCase) interpret(ctx context.Context, raw string, now time.Time) (model.Intent, model.StrategyTag, float64) {
	if uc.cfg.RuleEngine != RuleEngineReplacePattern {
		if task, ok := uc.patterns.Extract(raw, now); ok {
			return task, model.StrategyFixedPattern, model.ConfidenceFixedPattern
		}
	}

	if uc.cfg.RuleEngine != RuleEngineDisabled {
		if res, ok := uc.rules.Parse(raw, now); ok && res.Structured {
			return res.Intent, model.StrategyRuleEngine, model.ConfidenceRuleEngine
		}
	}

	if uc.inferenceAvailable {
		intent, err := uc.inferrer.Interpret(ctx, raw, now)
		if err == nil {
			if ev, ok := intent.(model.Event); ok && ev.EndTime == nil {
				intent = ev.AsTask(model.PriorityMedium)
			}
			return intent, model.StrategyInference, model.ConfidenceInference
		}
		uc.l.Warnf(ctx, "%s: inference failed, falling back: %v", LogPrefixParse, err)
		uc.metrics.IncInferenceError(inferenceErrorKind(err))
	}

	return model.NewFallbackTask(raw), model.StrategyFallback, model.ConfidenceFallback
}

// fuzzyLookup scans a snapshot for the most similar cached input above the
// threshold. Ties go to the more recently used entry.
func (uc *implUseCase) fuzzyLookup(raw string) (cache.Entry, float64, bool) {
	if utf8.RuneCountInString(raw) < uc.cfg.MinFuzzyLength {
		return cache.Entry{}, 0, false
	}

	var (
		best      cache.Entry
		bestScore float64
		found     bool
	)
	for _, item := range uc.cache.Snapshot() {
		score := smetrics.JaroWinkler(raw, item.Key, jaroBoostThreshold, jaroPrefixSize)
		if score > uc.cfg.SimilarityThreshold && score > bestScore {
			best, bestScore, found = item.Entry, score, true
		}
	}
	return best, bestScore, found
}

func (uc *implUseCase) outcome(started time.Time, intent model.Intent, strategy model.StrategyTag, confidence float64) model.ParseOutcome {
	elapsed := time.Since(started)
	uc.metrics.ObserveOutcome(strategy, elapsed)
	return model.ParseOutcome{
		Intent:     intent,
		Strategy:   strategy,
		Confidence: confidence,
		ElapsedMS:  elapsed.Milliseconds(),
	}
}

func inferenceErrorKind(err error) string {
	switch {
	case errors.Is(err, inference.ErrTimeout):
		return "timeout"
	case errors.Is(err, inference.ErrTransport):
		return "transport"
	case errors.Is(err, inference.ErrSchema):
		return "schema"
	case errors.Is(err, inference.ErrServiceUnavailable):
		return "unavailable"
	}
	return "unknown"
}
