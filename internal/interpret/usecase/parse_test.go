package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xrash/smetrics"

	"task-intent/internal/interpret"
	"task-intent/internal/interpret/cache"
	"task-intent/internal/interpret/inference"
	"task-intent/internal/model"
)

func parse(t *testing.T, uc *implUseCase, text string) model.ParseOutcome {
	t.Helper()
	out, err := uc.Parse(context.Background(), interpret.ParseInput{Text: text})
	require.NoError(t, err)
	return out
}

func TestParse_BlankInput(t *testing.T) {
	uc := newTestUseCase(t, nil, Config{})

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := uc.Parse(context.Background(), interpret.ParseInput{Text: text})
		assert.ErrorIs(t, err, interpret.ErrInvalidInput)
	}
	assert.Equal(t, 0, uc.Stats(context.Background()).CacheLen)
}

func TestParse_FixedPattern(t *testing.T) {
	uc := newTestUseCase(t, nil, Config{})

	out := parse(t, uc, "Fix bug today at 2pm !!!")
	assert.Equal(t, model.StrategyFixedPattern, out.Strategy)
	assert.Equal(t, model.ConfidenceFixedPattern, out.Confidence)

	task, ok := out.Task()
	require.True(t, ok)
	assert.Equal(t, "Fix bug", task.Title)
	assert.Equal(t, []string{}, task.Tags)
	assert.Equal(t, model.PriorityUrgent, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)))
}

func TestParse_Idempotence(t *testing.T) {
	uc := newTestUseCase(t, nil, Config{})

	first := parse(t, uc, "Submit report tomorrow at 3pm #work")
	second := parse(t, uc, "Submit report tomorrow at 3pm #work")

	assert.Equal(t, model.StrategyFixedPattern, first.Strategy)
	assert.Equal(t, model.StrategyCachedExact, second.Strategy)
	assert.Equal(t, first.Intent, second.Intent)
	assert.Equal(t, first.Confidence, second.Confidence)
}

func TestParse_FuzzyHit(t *testing.T) {
	uc := newTestUseCase(t, nil, Config{})

	original := parse(t, uc, "Submit report tomorrow at 3pm")
	require.Equal(t, model.StrategyFixedPattern, original.Strategy)

	const nearDuplicate = "Submit report tomorow at 3pm"
	similarity := smetrics.JaroWinkler(nearDuplicate, "Submit report tomorrow at 3pm", jaroBoostThreshold, jaroPrefixSize)
	require.Greater(t, similarity, DefaultSimilarityThreshold)

	out := parse(t, uc, nearDuplicate)
	assert.Equal(t, model.StrategyCachedFuzzy, out.Strategy)
	assert.InDelta(t, model.ConfidenceFixedPattern*similarity, out.Confidence, 1e-9)
	assert.LessOrEqual(t, out.Confidence, original.Confidence)
	assert.Equal(t, original.Intent, out.Intent)

	// fuzzy hits are not written back
	assert.Equal(t, 1, uc.Stats(context.Background()).CacheLen)
}

func TestParse_FuzzyPicksBestMatch(t *testing.T) {
	uc := newTestUseCase(t, nil, Config{})

	put := func(key, title string) {
		uc.cache.Put(key, cache.Entry{
			Intent:     model.NewFallbackTask(title),
			Strategy:   model.StrategyFallback,
			Confidence: model.ConfidenceFallback,
			CreatedAt:  fixedNow,
		})
	}
	put("Pick up kids at school", "closest")
	put("Pick up kits at school", "runner-up")

	const query = "Pick up kids at schol"
	closest := smetrics.JaroWinkler(query, "Pick up kids at school", jaroBoostThreshold, jaroPrefixSize)
	runnerUp := smetrics.JaroWinkler(query, "Pick up kits at school", jaroBoostThreshold, jaroPrefixSize)
	require.Greater(t, closest, runnerUp)

	out := parse(t, uc, query)
	require.Equal(t, model.StrategyCachedFuzzy, out.Strategy)
	task, ok := out.Task()
	require.True(t, ok)
	assert.Equal(t, "closest", task.Title)
	assert.InDelta(t, model.ConfidenceFallback*closest, out.Confidence, 1e-9)
}

func TestParse_FuzzySkipsShortInput(t *testing.T) {
	uc := newTestUseCase(t, nil, Config{MinFuzzyLength: 10})

	parse(t, uc, "Buy milk")
	out := parse(t, uc, "Buy milj")
	assert.Equal(t, model.StrategyFallback, out.Strategy)
}

func TestParse_RuleEngineModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     RuleEngineMode
		input    string
		strategy model.StrategyTag
		kind     model.IntentKind
	}{
		{name: "after pattern prefers pattern", mode: RuleEngineAfterPattern, input: "Meeting 2-4pm #team", strategy: model.StrategyFixedPattern, kind: model.IntentTask},
		{name: "after pattern falls to rules", mode: RuleEngineAfterPattern, input: "Deploy in 30 minutes", strategy: model.StrategyRuleEngine, kind: model.IntentTask},
		{name: "replace pattern", mode: RuleEngineReplacePattern, input: "Meeting 2-4pm #team", strategy: model.StrategyRuleEngine, kind: model.IntentEvent},
		{name: "disabled", mode: RuleEngineDisabled, input: "Deploy in 30 minutes", strategy: model.StrategyFallback, kind: model.IntentTask},
		{name: "plain text is not a rule match", mode: RuleEngineAfterPattern, input: "Buy milk", strategy: model.StrategyFallback, kind: model.IntentTask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(t, nil, Config{RuleEngine: tt.mode})

			out := parse(t, uc, tt.input)
			assert.Equal(t, tt.strategy, out.Strategy)
			assert.Equal(t, tt.kind, out.Intent.Kind())
		})
	}
}

func TestParse_EventWithDuration(t *testing.T) {
	uc := newTestUseCase(t, nil, Config{RuleEngine: RuleEngineReplacePattern})

	out := parse(t, uc, "Standup tomorrow at 9am for 30 mins")
	require.Equal(t, model.StrategyRuleEngine, out.Strategy)
	assert.Equal(t, model.ConfidenceRuleEngine, out.Confidence)

	event, ok := out.Event()
	require.True(t, ok)
	assert.Equal(t, "Standup", event.Title)
	assert.True(t, event.StartTime.Equal(time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)))
	require.NotNil(t, event.EndTime)
	assert.True(t, event.EndTime.Equal(event.StartTime.Add(30*time.Minute)))
}

func TestParse_Inference(t *testing.T) {
	due := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)
	inferrer := &mockInferrer{intent: model.Task{Title: "Water plants", DueDate: &due, Tags: []string{}, IsScheduled: true}}
	uc := newTestUseCase(t, inferrer, Config{})

	assert.True(t, uc.Stats(context.Background()).InferenceAvailable)

	out := parse(t, uc, "water the plants whenever convenient")
	assert.Equal(t, model.StrategyInference, out.Strategy)
	assert.Equal(t, model.ConfidenceInference, out.Confidence)
	assert.Equal(t, inferrer.intent, out.Intent)
	assert.Equal(t, 1, inferrer.Calls())

	// the inference result is cached under the raw input
	again := parse(t, uc, "water the plants whenever convenient")
	assert.Equal(t, model.StrategyCachedExact, again.Strategy)
	assert.Equal(t, 1, inferrer.Calls())
}

func TestParse_InferenceFailureFallsBack(t *testing.T) {
	inferrer := &mockInferrer{err: &inference.Error{Kind: inference.ErrTimeout, Err: context.DeadlineExceeded}}
	uc := newTestUseCase(t, inferrer, Config{})

	out := parse(t, uc, "Buy milk")
	assert.Equal(t, model.StrategyFallback, out.Strategy)
	assert.Equal(t, model.ConfidenceFallback, out.Confidence)
	assert.Equal(t, model.NewFallbackTask("Buy milk"), out.Intent)
	assert.Equal(t, 1, inferrer.Calls())
	assert.Equal(t, 1.0, testutil.ToFloat64(uc.metrics.inferenceErrors.WithLabelValues("timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(uc.metrics.outcomes.WithLabelValues(string(model.StrategyFallback))))
}

func TestParse_UnhealthyInferenceIsSkipped(t *testing.T) {
	inferrer := &mockInferrer{healthErr: errors.New("connection refused")}
	uc := newTestUseCase(t, inferrer, Config{})

	assert.False(t, uc.Stats(context.Background()).InferenceAvailable)

	out := parse(t, uc, "Buy milk")
	assert.Equal(t, model.StrategyFallback, out.Strategy)
	assert.Equal(t, 0, inferrer.Calls())
}

func TestParse_ConfidenceOrdering(t *testing.T) {
	inferrer := &mockInferrer{err: errors.New("boom")}
	uc := newTestUseCase(t, inferrer, Config{})

	for _, text := range []string{
		"Buy milk",
		"Fix bug today at 2pm !!!",
		"Deploy in 30 minutes",
		"Buy milk",
	} {
		out := parse(t, uc, text)
		assert.GreaterOrEqual(t, out.Confidence, model.ConfidenceFallback, text)
		assert.LessOrEqual(t, out.Confidence, 1.0, text)
	}
}

func TestParse_Concurrent(t *testing.T) {
	uc := newTestUseCase(t, &mockInferrer{err: errors.New("boom")}, Config{})

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				text := fmt.Sprintf("Task number %d from worker %d #load", i%10, g%4)
				_, err := uc.Parse(context.Background(), interpret.ParseInput{Text: text})
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	stats := uc.Stats(context.Background())
	assert.LessOrEqual(t, stats.CacheLen, 40)
	assert.Greater(t, stats.CacheLen, 0)
}

func TestParse_CancelledContextStillProducesIntent(t *testing.T) {
	uc := newTestUseCase(t, &mockInferrer{err: &inference.Error{Kind: inference.ErrTransport, Err: context.Canceled}}, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := uc.Parse(ctx, interpret.ParseInput{Text: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, model.StrategyFallback, out.Strategy)

	// the cache lock was released
	assert.Equal(t, 1, uc.Stats(context.Background()).CacheLen)
}

func TestParse_CachedIntentIsNotShared(t *testing.T) {
	uc := newTestUseCase(t, nil, Config{})

	first := parse(t, uc, "Submit report tomorrow at 3pm #work")
	task, ok := first.Task()
	require.True(t, ok)
	require.NotNil(t, task.DueDate)
	wantDue := *task.DueDate

	// Caller edits its copy.
	task.Tags[0] = "changed"
	*task.DueDate = task.DueDate.AddDate(1, 0, 0)

	exact := parse(t, uc, "Submit report tomorrow at 3pm #work")
	require.Equal(t, model.StrategyCachedExact, exact.Strategy)
	hit, ok := exact.Task()
	require.True(t, ok)
	assert.Equal(t, []string{"work"}, hit.Tags)
	assert.True(t, hit.DueDate.Equal(wantDue), "due = %v, want %v", hit.DueDate, wantDue)

	// Editing a hit does not reach the cache either.
	hit.Tags[0] = "changed again"
	fuzzy := parse(t, uc, "Submit report tomorow at 3pm #work")
	require.Equal(t, model.StrategyCachedFuzzy, fuzzy.Strategy)
	near, ok := fuzzy.Task()
	require.True(t, ok)
	assert.Equal(t, []string{"work"}, near.Tags)
	assert.True(t, near.DueDate.Equal(wantDue))
}

func TestParse_InferredEventWithoutEndBecomesTask(t *testing.T) {
	inferrer := &mockInferrer{intent: model.Event{Title: "Daily standup", StartTime: fixedNow, Tags: []string{"team"}}}
	uc := newTestUseCase(t, inferrer, Config{})

	out := parse(t, uc, "daily standup with the team")
	assert.Equal(t, model.StrategyInference, out.Strategy)

	_, isEvent := out.Event()
	assert.False(t, isEvent)
	task, ok := out.Task()
	require.True(t, ok)
	assert.Equal(t, "Daily standup", task.Title)
	assert.Equal(t, []string{"team"}, task.Tags)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.True(t, task.IsScheduled)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(fixedNow))
}

func TestParse_InferredEventWithEndIsKept(t *testing.T) {
	end := fixedNow.Add(time.Hour)
	inferrer := &mockInferrer{intent: model.Event{Title: "Review", StartTime: fixedNow, EndTime: &end, Tags: []string{}}}
	uc := newTestUseCase(t, inferrer, Config{})

	out := parse(t, uc, "review session sometime")
	event, ok := out.Event()
	require.True(t, ok)
	require.NotNil(t, event.EndTime)
	assert.True(t, event.EndTime.Equal(end))
}
