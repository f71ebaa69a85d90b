// Package bootstrap assembles the interpretation cascade from configuration.
package bootstrap

import (
	"context"
	"fmt"

	"task-intent/config"
	"task-intent/internal/interpret"
	"task-intent/internal/interpret/cache"
	"task-intent/internal/interpret/inference"
	"task-intent/internal/interpret/pattern"
	"task-intent/internal/interpret/rules"
	"task-intent/internal/interpret/usecase"
	"task-intent/pkg/datemath"
	"task-intent/pkg/log"
	"task-intent/pkg/ollama"
)

// Options adjusts how the cascade is assembled.
type Options struct {
	// DisableInference skips the inference stage regardless of config.
	DisableInference bool
	// Metrics receives cascade metrics. Nil means no metrics.
	Metrics *usecase.Metrics
}

// NewInterpreter builds the dispatcher with every stage wired per cfg.
func NewInterpreter(ctx context.Context, l log.Logger, cfg *config.Config, opts Options) (interpret.UseCase, error) {
	dates, err := datemath.NewParser(cfg.Parser.Timezone)
	if err != nil {
		return nil, fmt.Errorf("datemath: %w", err)
	}

	c, err := cache.New(cfg.Parser.CacheCapacity)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}

	var inferrer usecase.Inferrer
	if cfg.Ollama.Enabled && !opts.DisableInference {
		client, err := ollama.New(ollama.Config{
			BaseURL: cfg.Ollama.URL,
			Model:   cfg.Ollama.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("ollama: %w", err)
		}
		inferrer = inference.New(client, cfg.Ollama.Timeout)
		l.Infof(ctx, "Inference configured: %s (model %s)", cfg.Ollama.URL, client.Model())
	} else {
		l.Info(ctx, "Inference disabled")
	}

	return usecase.New(
		ctx,
		l,
		c,
		pattern.New(dates),
		rules.New(dates),
		inferrer,
		opts.Metrics,
		usecase.Config{
			SimilarityThreshold: cfg.Parser.SimilarityThreshold,
			MinFuzzyLength:      cfg.Parser.MinFuzzyLength,
			RuleEngine:          usecase.RuleEngineMode(cfg.Parser.RuleEngine),
			ProbeTimeout:        cfg.Ollama.ProbeTimeout,
			WarmConcurrency:     cfg.Parser.WarmupConcurrency,
			Location:            dates.Location(),
		},
	), nil
}
