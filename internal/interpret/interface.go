package interpret

import (
	"context"

	"task-intent/internal/model"
)

// UseCase is the single entry point for natural-language interpretation.
// Implementations are safe for concurrent use.
type UseCase interface {
	// Parse interprets raw user text. It only fails on blank input or an
	// internal fault; every other input yields an intent.
	Parse(ctx context.Context, input ParseInput) (model.ParseOutcome, error)

	// Stats reports interpretation cache occupancy and inference availability.
	Stats(ctx context.Context) StatsOutput

	// Warm parses the given inputs so they become exact cache hits.
	Warm(ctx context.Context, input WarmInput) (WarmOutput, error)
}
