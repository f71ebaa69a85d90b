package datemath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrUnresolved is returned when a date string cannot be resolved.
var ErrUnresolved = errors.New("date string not resolved")

var (
	clockOnly  = regexp.MustCompile(`^(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
	dayAtClock = regexp.MustCompile(`^(.+?)\s+at\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
)

// Parser does calendar arithmetic in a fixed location and resolves
// English date strings relative to a base time.
type Parser struct {
	location *time.Location
	when     *when.Parser
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/Berlin"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &Parser{location: loc, when: w}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Resolve turns an English date phrase ("next friday", "jan 5th",
// "tomorrow at 3pm") into an absolute time. Clock times and fixed day words
// are handled directly; anything else is delegated to the when rule set,
// whose match may only be preceded by a filler word such as "at".
func (p *Parser) Resolve(phrase string, baseTime time.Time) (time.Time, error) {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return time.Time{}, ErrUnresolved
	}
	base := baseTime.In(p.location)

	if m := clockOnly.FindStringSubmatch(phrase); m != nil {
		return p.clock(base, m[1], m[2], m[3])
	}
	if m := dayAtClock.FindStringSubmatch(phrase); m != nil {
		day, err := p.Resolve(m[1], base)
		if err != nil {
			return time.Time{}, err
		}
		return p.clock(day, m[2], m[3], m[4])
	}

	switch phrase {
	case "today":
		return base, nil
	case "tomorrow":
		return base.AddDate(0, 0, 1), nil
	case "yesterday":
		return base.AddDate(0, 0, -1), nil
	}

	if t, ok := p.weekdayPhrase(phrase, base); ok {
		return t, nil
	}

	res, err := p.when.Parse(phrase, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnresolved, phrase, err)
	}
	if res == nil || res.Index < 0 || res.Index > len(phrase) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnresolved, phrase)
	}
	if _, ok := fillers[strings.TrimSpace(phrase[:res.Index])]; !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnresolved, phrase)
	}
	return res.Time.In(p.location), nil
}

// clock anchors an "H[:MM][am|pm]" reading on day.
func (p *Parser) clock(day time.Time, hourStr, minuteStr, meridiem string) (time.Time, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: hour %q", ErrUnresolved, hourStr)
	}
	minute := 0
	if minuteStr != "" {
		if minute, err = strconv.Atoi(minuteStr); err != nil {
			return time.Time{}, fmt.Errorf("%w: minute %q", ErrUnresolved, minuteStr)
		}
	}

	var pm *bool
	if meridiem != "" {
		v := meridiem == "pm"
		pm = &v
	}
	if !ValidClock(hour, minute, pm) {
		return time.Time{}, fmt.Errorf("%w: clock %d:%02d", ErrUnresolved, hour, minute)
	}
	return p.At(day, Resolve24h(hour, pm), minute), nil
}

// StartOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// At returns the given wall-clock time on t's calendar day.
func (p *Parser) At(t time.Time, hour, minute int) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// NextWeekday returns the first strictly later day falling on target.
func (p *Parser) NextWeekday(baseTime time.Time, target time.Weekday) time.Time {
	base := baseTime.In(p.location)
	daysUntil := int(target - base.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return base.AddDate(0, 0, daysUntil)
}

// PrevWeekday returns the last strictly earlier day falling on target.
func (p *Parser) PrevWeekday(baseTime time.Time, target time.Weekday) time.Time {
	base := baseTime.In(p.location)
	daysSince := int(base.Weekday() - target)
	if daysSince <= 0 {
		daysSince += 7
	}
	return base.AddDate(0, 0, -daysSince)
}

// weekdayPhrase handles "friday", "next friday", "this friday" and
// "last friday". A bare or "this" weekday includes today.
func (p *Parser) weekdayPhrase(phrase string, base time.Time) (time.Time, bool) {
	modifier, name, found := strings.Cut(phrase, " ")
	if !found {
		modifier, name = "this", phrase
	}
	wd, ok := ParseWeekday(strings.TrimSpace(name))
	if !ok {
		return time.Time{}, false
	}

	switch modifier {
	case "this", "on":
		if base.Weekday() == wd {
			return base, true
		}
		return p.NextWeekday(base, wd), true
	case "next":
		return p.NextWeekday(base, wd), true
	case "last":
		return p.PrevWeekday(base, wd), true
	}
	return time.Time{}, false
}

// ParseWeekday maps a full lowercase weekday name.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(name)]
	return wd, ok
}

var fillers = map[string]struct{}{
	"":   {},
	"at": {},
	"on": {},
	"by": {},
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}
