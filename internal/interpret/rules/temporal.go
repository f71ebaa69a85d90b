package rules

import (
	"math"
	"time"

	"task-intent/pkg/datemath"
)

const (
	// DefaultHour is the clock hour given to "day after tomorrow".
	DefaultHour = 9

	// QuantizeGrid is the grid "in <N> <unit>" points are rounded up to.
	QuantizeGrid = 15 * time.Minute
)

var units = []struct {
	name string
	unit time.Duration
}{
	{"minutes", time.Minute},
	{"minute", time.Minute},
	{"mins", time.Minute},
	{"min", time.Minute},
	{"hours", time.Hour},
	{"hour", time.Hour},
	{"hrs", time.Hour},
	{"hr", time.Hour},
	{"days", 24 * time.Hour},
	{"day", 24 * time.Hour},
	{"weeks", 7 * 24 * time.Hour},
	{"week", 7 * 24 * time.Hour},
}

var (
	dayWords     = []string{"today", "tomorrow", "yesterday"}
	weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	relativeMods = []string{"next", "last", "this"}
	monthNames   = []string{
		"january", "february", "march", "april", "may", "june", "july",
		"august", "september", "october", "november", "december",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sept", "sep", "oct", "nov", "dec",
	}
	ordinals = []string{"st", "nd", "rd", "th"}
)

// temporal builds the temporal sub-grammar anchored at now.
func (e *Engine) temporal(now time.Time) rule {
	return firstOf(
		e.dayAfterTomorrow(now),
		e.timeRange(now),
		e.businessTerm(now),
		e.relative(now),
		e.dateCandidate(now),
	)
}

func (e *Engine) dayAfterTomorrow(now time.Time) rule {
	return func(in string) (Segment, string, bool) {
		rest := in
		for i, w := range []string{"day", "after", "tomorrow"} {
			var ok bool
			if i > 0 {
				if rest, ok = space1(rest); !ok {
					return nil, in, false
				}
			}
			if rest, ok = word(rest, w); !ok {
				return nil, in, false
			}
		}
		return point(e.dates.At(now.AddDate(0, 0, 2), DefaultHour, 0)), rest, true
	}
}

// timeRange matches "<time>-<time>" with an am/pm marker on at least one
// side. A side without a marker takes the other side's.
func (e *Engine) timeRange(now time.Time) rule {
	return func(in string) (Segment, string, bool) {
		start, rest, ok := looseTime(in)
		if !ok {
			return nil, in, false
		}
		rest = space0(rest)
		if after, ok := literal(rest, "-"); ok {
			rest = after
		} else if after, ok := literal(rest, "–"); ok {
			rest = after
		} else {
			return nil, in, false
		}
		end, rest, ok := looseTime(space0(rest))
		if !ok || !boundary(rest) {
			return nil, in, false
		}

		switch {
		case start.pm == nil && end.pm == nil:
			return nil, in, false
		case start.pm == nil:
			start.pm = end.pm
		case end.pm == nil:
			end.pm = start.pm
		}
		if !datemath.ValidClock(start.hour, start.minute, start.pm) || !datemath.ValidClock(end.hour, end.minute, end.pm) {
			return nil, in, false
		}

		return span(
			e.dates.At(now, datemath.Resolve24h(start.hour, start.pm), start.minute),
			e.dates.At(now, datemath.Resolve24h(end.hour, end.pm), end.minute),
		), rest, true
	}
}

func (e *Engine) businessTerm(now time.Time) rule {
	return func(in string) (Segment, string, bool) {
		term, rest, ok := oneOfWords(in, "eod", "cob", "eow", "eom")
		if !ok {
			return nil, in, false
		}
		t, err := e.dates.Business(term, now)
		if err != nil {
			return nil, in, false
		}
		return point(t), rest, true
	}
}

// relative matches "in <N> <unit>" as a quantized point and
// "for <N> <unit>" as a bare duration.
func (e *Engine) relative(now time.Time) rule {
	return func(in string) (Segment, string, bool) {
		lead, rest, ok := oneOfWords(in, "in", "for")
		if !ok {
			return nil, in, false
		}
		if rest, ok = space1(rest); !ok {
			return nil, in, false
		}
		n, rest, ok := number(rest)
		if !ok {
			return nil, in, false
		}
		if rest, ok = space1(rest); !ok {
			return nil, in, false
		}

		for _, u := range units {
			after, ok := word(rest, u.name)
			if !ok {
				continue
			}
			if int64(n) > math.MaxInt64/int64(u.unit) {
				return nil, in, false
			}
			d := time.Duration(n) * u.unit
			if lead == "for" {
				return duration(d), after, true
			}
			return point(datemath.QuantizeUp(now.Add(d), QuantizeGrid)), after, true
		}
		return nil, in, false
	}
}

// dateCandidate recognises the shape of a date phrase and only then asks
// the resolver for a value. A rejected candidate leaves the input for the
// text rule.
func (e *Engine) dateCandidate(now time.Time) rule {
	return func(in string) (Segment, string, bool) {
		for _, rest := range candidates(in) {
			t, err := e.resolver.Resolve(in[:len(in)-len(rest)], now)
			if err == nil {
				return point(t), rest, true
			}
		}
		return nil, in, false
	}
}

// candidates returns the remainders of every recognised date phrase at the
// start of in, longest first.
func candidates(in string) []string {
	if rest, ok := atClock(in); ok {
		return []string{rest}
	}
	rest, ok := dayHead(in)
	if !ok {
		return nil
	}
	if withClock, ok := space1(rest); ok {
		if withClock, ok = atClock(withClock); ok {
			return []string{withClock, rest}
		}
	}
	return []string{rest}
}

// atClock matches "at <time>".
func atClock(in string) (string, bool) {
	rest, ok := word(in, "at")
	if !ok {
		return in, false
	}
	if rest, ok = space1(rest); !ok {
		return in, false
	}
	_, rest, ok = looseTime(rest)
	if !ok || !boundary(rest) {
		return in, false
	}
	return rest, true
}

func dayHead(in string) (string, bool) {
	if _, rest, ok := oneOfWords(in, dayWords...); ok {
		return rest, true
	}
	if _, rest, ok := oneOfWords(in, weekdayNames...); ok {
		return rest, true
	}
	if _, rest, ok := oneOfWords(in, relativeMods...); ok {
		if rest, ok = space1(rest); ok {
			if _, rest, ok = alpha(rest); ok && boundary(rest) {
				return rest, true
			}
		}
		return in, false
	}
	if _, rest, ok := oneOfWords(in, monthNames...); ok {
		if rest, ok = space1(rest); !ok {
			return in, false
		}
		if _, rest, ok = number(rest); !ok {
			return in, false
		}
		for _, o := range ordinals {
			if after, ok := literal(rest, o); ok {
				rest = after
				break
			}
		}
		if !boundary(rest) {
			return in, false
		}
		return rest, true
	}
	return in, false
}
