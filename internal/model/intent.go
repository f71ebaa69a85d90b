package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// IntentKind discriminates the Intent variants on the wire.
type IntentKind string

const (
	IntentTask  IntentKind = "task"
	IntentEvent IntentKind = "event"
)

// Intent is the closed set {Task, Event}. The unexported marker keeps
// other packages from adding variants.
type Intent interface {
	Kind() IntentKind
	isIntent()
}

// Priority is ordered Low < Medium < High < Urgent.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

var priorityNames = map[Priority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
	PriorityUrgent: "urgent",
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// ParsePriority maps a case-insensitive name to a Priority.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "urgent":
		return PriorityUrgent, true
	}
	return PriorityMedium, false
}

func (p Priority) MarshalText() ([]byte, error) {
	name, ok := priorityNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown priority %d", int(p))
	}
	return []byte(name), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, ok := ParsePriority(string(b))
	if !ok {
		return fmt.Errorf("unknown priority %q", string(b))
	}
	*p = v
	return nil
}

// StrategyTag names the cascade stage that produced an outcome.
type StrategyTag string

const (
	StrategyCachedExact  StrategyTag = "cached_exact"
	StrategyCachedFuzzy  StrategyTag = "cached_fuzzy"
	StrategyFixedPattern StrategyTag = "fixed_pattern"
	StrategyRuleEngine   StrategyTag = "rule_engine"
	StrategyInference    StrategyTag = "inference"
	StrategyFallback     StrategyTag = "fallback"
)

// Fixed confidences per producing strategy. Cached outcomes derive theirs.
const (
	ConfidenceFixedPattern = 0.95
	ConfidenceRuleEngine   = 0.95
	ConfidenceInference    = 0.85
	ConfidenceFallback     = 0.50
)

// ParseOutcome is the result of interpreting one input.
type ParseOutcome struct {
	Intent     Intent
	Strategy   StrategyTag
	Confidence float64
	ElapsedMS  int64
}

// Task returns the intent as a Task when it is one.
func (o ParseOutcome) Task() (Task, bool) {
	t, ok := o.Intent.(Task)
	return t, ok
}

// Event returns the intent as an Event when it is one.
func (o ParseOutcome) Event() (Event, bool) {
	e, ok := o.Intent.(Event)
	return e, ok
}

type intentEnvelope struct {
	Type  IntentKind `json:"type"`
	Task  *Task      `json:"task,omitempty"`
	Event *Event     `json:"event,omitempty"`
}

type outcomeJSON struct {
	Intent     intentEnvelope `json:"intent"`
	Strategy   StrategyTag    `json:"strategy"`
	Confidence float64        `json:"confidence"`
	ElapsedMS  int64          `json:"elapsed_ms"`
}

// MarshalJSON encodes the outcome with a tagged intent envelope so it can be
// relayed across a process boundary and decoded back verbatim.
func (o ParseOutcome) MarshalJSON() ([]byte, error) {
	env, err := wrapIntent(o.Intent)
	if err != nil {
		return nil, err
	}
	return json.Marshal(outcomeJSON{
		Intent:     env,
		Strategy:   o.Strategy,
		Confidence: o.Confidence,
		ElapsedMS:  o.ElapsedMS,
	})
}

func (o *ParseOutcome) UnmarshalJSON(b []byte) error {
	var raw outcomeJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	intent, err := unwrapIntent(raw.Intent)
	if err != nil {
		return err
	}
	*o = ParseOutcome{
		Intent:     intent,
		Strategy:   raw.Strategy,
		Confidence: raw.Confidence,
		ElapsedMS:  raw.ElapsedMS,
	}
	return nil
}

func wrapIntent(i Intent) (intentEnvelope, error) {
	switch v := i.(type) {
	case Task:
		return intentEnvelope{Type: IntentTask, Task: &v}, nil
	case Event:
		return intentEnvelope{Type: IntentEvent, Event: &v}, nil
	default:
		return intentEnvelope{}, fmt.Errorf("unsupported intent %T", i)
	}
}

func unwrapIntent(env intentEnvelope) (Intent, error) {
	switch env.Type {
	case IntentTask:
		if env.Task == nil {
			return nil, fmt.Errorf("intent type %q without payload", env.Type)
		}
		return *env.Task, nil
	case IntentEvent:
		if env.Event == nil {
			return nil, fmt.Errorf("intent type %q without payload", env.Type)
		}
		return *env.Event, nil
	default:
		return nil, fmt.Errorf("unknown intent type %q", env.Type)
	}
}

// CloneIntent deep-copies i. Nil stays nil.
func CloneIntent(i Intent) Intent {
	switch v := i.(type) {
	case Task:
		return v.Clone()
	case Event:
		return v.Clone()
	}
	return i
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	return append(make([]string, 0, len(tags)), tags...)
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
