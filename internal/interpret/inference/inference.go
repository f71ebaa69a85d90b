// Package inference asks an external text-generation service to interpret
// input the local strategies could not, and validates what comes back.
package inference

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kaptinlin/jsonrepair"

	"task-intent/internal/model"
	"task-intent/pkg/ollama"
)

// Adapter wraps one generate exchange with a deadline and a schema check.
type Adapter struct {
	client   ollama.IOllama
	timeout  time.Duration
	validate *validator.Validate
}

// New creates an Adapter. A non-positive timeout means DefaultTimeout.
func New(client ollama.IOllama, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Adapter{
		client:   client,
		timeout:  timeout,
		validate: validator.New(),
	}
}

// Health reports whether the service answers within ctx.
func (a *Adapter) Health(ctx context.Context) error {
	if err := a.client.Health(ctx); err != nil {
		return &Error{Kind: ErrServiceUnavailable, Err: err}
	}
	return nil
}

// Interpret returns the intent the service derives from input. Relative
// dates in the prompt are anchored at now, in now's location. Every error
// is an *Error.
func (a *Adapter) Interpret(ctx context.Context, input string, now time.Time) (model.Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.Generate(ctx, &ollama.GenerateRequest{
		Prompt: buildPrompt(input, now),
		Format: ollama.FormatJSON,
	})
	if err != nil {
		return nil, classify(ctx, err)
	}

	return a.decode(resp.Response)
}

func classify(ctx context.Context, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &Error{Kind: ErrTimeout, Err: err}
	case errors.Is(err, ollama.ErrMalformedResponse):
		return &Error{Kind: ErrSchema, Err: err}
	}
	return &Error{Kind: ErrTransport, Err: err}
}

func (a *Adapter) decode(raw string) (model.Intent, error) {
	text := sanitizeJSONResponse(raw)

	var out structuredOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(text)
		if repairErr != nil {
			return nil, schemaError("invalid JSON: %v", err)
		}
		out = structuredOutput{}
		if err := json.Unmarshal([]byte(repaired), &out); err != nil {
			return nil, schemaError("invalid JSON after repair: %v", err)
		}
	}

	out.Type = strings.ToLower(strings.TrimSpace(out.Type))
	out.Title = strings.TrimSpace(out.Title)
	if out.Priority != nil {
		p := strings.ToLower(strings.TrimSpace(*out.Priority))
		out.Priority = &p
		if p == "" {
			out.Priority = nil
		}
	}
	if err := a.validate.Struct(out); err != nil {
		return nil, schemaError("%v", err)
	}

	var when *time.Time
	if out.Datetime != nil && strings.TrimSpace(*out.Datetime) != "" {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(*out.Datetime)); err == nil {
			when = &t
		} else if out.Type == string(model.IntentEvent) {
			return nil, schemaError("event datetime %q: %v", *out.Datetime, err)
		}
	}

	tags := out.Tags
	if tags == nil {
		tags = []string{}
	}

	// An event needs a start. The schema carries no end, so a valid event
	// degrades to a task due at its start.
	if out.Type == string(model.IntentEvent) && when == nil {
		return nil, schemaError("event requires a datetime")
	}

	priority := model.PriorityMedium
	if out.Priority != nil {
		priority, _ = model.ParsePriority(*out.Priority)
	}
	return model.Task{
		Title:       out.Title,
		DueDate:     when,
		Tags:        tags,
		Priority:    priority,
		IsScheduled: when != nil,
	}, nil
}
