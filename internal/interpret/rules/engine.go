// Package rules decomposes free text into tag, priority, temporal and text
// segments in a single left-to-right pass and assembles them into an
// intent.
package rules

import (
	"strings"
	"time"
	"unicode"

	"task-intent/internal/model"
	"task-intent/pkg/datemath"
)

// Resolver turns a recognised date phrase into an absolute time.
type Resolver interface {
	Resolve(phrase string, base time.Time) (time.Time, error)
}

// Engine is the segment/rule engine.
type Engine struct {
	dates    *datemath.Parser
	resolver Resolver
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolver replaces the date-phrase resolver. The default is the
// datemath parser passed to New.
func WithResolver(r Resolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// New creates an Engine doing calendar arithmetic with dates.
func New(dates *datemath.Parser, opts ...Option) *Engine {
	e := &Engine{dates: dates, resolver: dates}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is an assembled intent together with whether any segment other
// than plain text contributed to it.
type Result struct {
	Intent     model.Intent
	Structured bool
}

// Parse segments input relative to now and assembles the segments. It
// reports false when nothing usable was found.
func (e *Engine) Parse(input string, now time.Time) (Result, bool) {
	return assemble(e.Segments(input, now))
}

// Segments runs the segmentation loop.
func (e *Engine) Segments(input string, now time.Time) []Segment {
	next := firstOf(parseTag, parsePriority, e.temporal(now), parseText)

	var segments []Segment
	rest := strings.TrimLeftFunc(input, unicode.IsSpace)
	for rest != "" {
		seg, after, ok := next(rest)
		if !ok || len(after) >= len(rest) {
			break
		}
		segments = append(segments, seg)
		rest = strings.TrimLeftFunc(after, unicode.IsSpace)
	}
	return segments
}

func parseTag(in string) (Segment, string, bool) {
	rest, ok := literal(in, "#")
	if !ok {
		return nil, in, false
	}
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-'
	})
	if end == -1 {
		end = len(rest)
	}
	if end == 0 {
		return nil, in, false
	}
	return tagSegment{name: rest[:end]}, rest[end:], true
}

func parsePriority(in string) (Segment, string, bool) {
	for _, bang := range []struct {
		mark     string
		priority model.Priority
	}{
		{"!!!", model.PriorityUrgent},
		{"!!", model.PriorityHigh},
		{"!", model.PriorityMedium},
	} {
		if rest, ok := literal(in, bang.mark); ok {
			return prioritySegment{priority: bang.priority}, rest, true
		}
	}

	rest, ok := word(in, "priority")
	if !ok {
		return nil, in, false
	}
	if after, ok := literal(rest, ":"); ok {
		rest = after
	}
	level, rest, ok := alpha(space0(rest))
	if !ok || !boundary(rest) {
		return nil, in, false
	}
	p, ok := model.ParsePriority(level)
	if !ok {
		return nil, in, false
	}
	return prioritySegment{priority: p}, rest, true
}

func parseText(in string) (Segment, string, bool) {
	text, rest := token(in)
	if text == "" {
		return nil, in, false
	}
	return textSegment{text: text}, rest, true
}

func assemble(segments []Segment) (Result, bool) {
	var (
		words      []string
		tags       = []string{}
		priority   = model.PriorityMedium
		start, end *time.Time
		extend     *time.Duration
		structured bool
	)

	for _, seg := range segments {
		switch s := seg.(type) {
		case textSegment:
			words = append(words, s.text)
		case tagSegment:
			tags = append(tags, s.name)
			structured = true
		case prioritySegment:
			priority = s.priority
			structured = true
		case temporalSegment:
			structured = true
			switch s.ctx.Kind {
			case TemporalPoint:
				if start == nil {
					start = model.TimePtr(s.ctx.Point)
				} else {
					end = model.TimePtr(s.ctx.Point)
				}
			case TemporalDuration:
				d := s.ctx.Duration
				extend = &d
			case TemporalRange:
				start = model.TimePtr(s.ctx.Start)
				end = model.TimePtr(s.ctx.End)
			}
		}
	}

	title := strings.Join(words, " ")
	if start != nil && end == nil && extend != nil {
		end = model.TimePtr(start.Add(*extend))
	}

	switch {
	case start != nil && end != nil:
		return Result{
			Intent: model.Event{
				Title:     title,
				StartTime: *start,
				EndTime:   end,
				Tags:      tags,
			},
			Structured: structured,
		}, true
	case start != nil:
		return Result{
			Intent: model.Task{
				Title:       title,
				DueDate:     start,
				Tags:        tags,
				Priority:    priority,
				IsScheduled: true,
			},
			Structured: structured,
		}, true
	case title != "" || len(tags) > 0:
		return Result{
			Intent: model.Task{
				Title:    title,
				Tags:     tags,
				Priority: priority,
			},
			Structured: structured,
		}, true
	}
	return Result{}, false
}
