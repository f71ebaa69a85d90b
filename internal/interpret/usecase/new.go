package usecase

import (
	"context"
	"time"

	"task-intent/internal/interpret"
	"task-intent/internal/interpret/cache"
	"task-intent/internal/interpret/pattern"
	"task-intent/internal/interpret/rules"
	"task-intent/internal/model"
	pkgLog "task-intent/pkg/log"
)

// RuleEngineMode places the rule engine in the cascade.
type RuleEngineMode string

const (
	// RuleEngineAfterPattern runs the rule engine when the fixed patterns miss.
	RuleEngineAfterPattern RuleEngineMode = "after_pattern"
	// RuleEngineReplacePattern runs the rule engine instead of the fixed patterns.
	RuleEngineReplacePattern RuleEngineMode = "replace_pattern"
	// RuleEngineDisabled skips the rule engine.
	RuleEngineDisabled RuleEngineMode = "disabled"
)

const (
	DefaultSimilarityThreshold = 0.85
	DefaultMinFuzzyLength      = 3
	DefaultProbeTimeout        = 2 * time.Second
	DefaultWarmConcurrency     = 4
)

// Inferrer is the external inference stage.
type Inferrer interface {
	Interpret(ctx context.Context, input string, now time.Time) (model.Intent, error)
	Health(ctx context.Context) error
}

// Config tunes the cascade.
type Config struct {
	SimilarityThreshold float64
	MinFuzzyLength      int
	RuleEngine          RuleEngineMode
	ProbeTimeout        time.Duration
	WarmConcurrency     int
	Location            *time.Location
}

func (c *Config) setDefaults() {
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		c.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if c.MinFuzzyLength <= 0 {
		c.MinFuzzyLength = DefaultMinFuzzyLength
	}
	switch c.RuleEngine {
	case RuleEngineAfterPattern, RuleEngineReplacePattern, RuleEngineDisabled:
	default:
		c.RuleEngine = RuleEngineAfterPattern
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = DefaultProbeTimeout
	}
	if c.WarmConcurrency <= 0 {
		c.WarmConcurrency = DefaultWarmConcurrency
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
}

type implUseCase struct {
	l                  pkgLog.Logger
	cache              *cache.Cache
	patterns           *pattern.Extractor
	rules              *rules.Engine
	inferrer           Inferrer
	inferenceAvailable bool
	metrics            *Metrics
	cfg                Config
	now                func() time.Time
}

// New creates the strategy dispatcher. When inferrer is non-nil its health
// is probed once; an unavailable service is skipped for the lifetime of the
// dispatcher. metrics may be nil.
func New(
	ctx context.Context,
	l pkgLog.Logger,
	c *cache.Cache,
	patterns *pattern.Extractor,
	ruleEngine *rules.Engine,
	inferrer Inferrer,
	metrics *Metrics,
	cfg Config,
) interpret.UseCase {
	cfg.setDefaults()

	uc := &implUseCase{
		l:        l,
		cache:    c,
		patterns: patterns,
		rules:    ruleEngine,
		inferrer: inferrer,
		metrics:  metrics,
		cfg:      cfg,
		now:      time.Now,
	}

	if inferrer != nil {
		probeCtx, cancel := context.WithTimeout(ctx, cfg.ProbeTimeout)
		err := inferrer.Health(probeCtx)
		cancel()
		if err != nil {
			l.Warnf(ctx, "%s: inference disabled: %v", LogPrefixNew, err)
		} else {
			uc.inferenceAvailable = true
			l.Infof(ctx, "%s: inference available", LogPrefixNew)
		}
	}

	return uc
}
