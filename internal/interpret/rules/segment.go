package rules

import (
	"time"

	"task-intent/internal/model"
)

// Segment is one classified fragment of the input. The set of
// implementations is closed: textSegment, tagSegment, prioritySegment and
// temporalSegment.
type Segment interface {
	segment()
}

type textSegment struct {
	text string
}

type tagSegment struct {
	name string
}

type prioritySegment struct {
	priority model.Priority
}

type temporalSegment struct {
	ctx Temporal
}

func (textSegment) segment()     {}
func (tagSegment) segment()      {}
func (prioritySegment) segment() {}
func (temporalSegment) segment() {}

// TemporalKind distinguishes the shapes a temporal segment can take.
type TemporalKind int

const (
	TemporalPoint TemporalKind = iota
	TemporalDuration
	TemporalRange
)

// Temporal is the resolved value of a temporal segment. Only the fields
// matching Kind are set.
type Temporal struct {
	Kind     TemporalKind
	Point    time.Time
	Duration time.Duration
	Start    time.Time
	End      time.Time
}

func point(t time.Time) Segment {
	return temporalSegment{ctx: Temporal{Kind: TemporalPoint, Point: t}}
}

func duration(d time.Duration) Segment {
	return temporalSegment{ctx: Temporal{Kind: TemporalDuration, Duration: d}}
}

func span(start, end time.Time) Segment {
	return temporalSegment{ctx: Temporal{Kind: TemporalRange, Start: start, End: end}}
}

// rule consumes a prefix of in. On success it returns the recognised
// segment and the unconsumed remainder; on failure in is left untouched.
type rule func(in string) (Segment, string, bool)

// firstOf tries each rule in order and returns the first success.
func firstOf(rules ...rule) rule {
	return func(in string) (Segment, string, bool) {
		for _, r := range rules {
			if seg, rest, ok := r(in); ok {
				return seg, rest, true
			}
		}
		return nil, in, false
	}
}
