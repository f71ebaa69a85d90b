// Package pattern recognises a handful of literal phrasings with regular
// expressions. It is the cheapest interpretation attempt.
package pattern

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"task-intent/internal/model"
	"task-intent/pkg/datemath"
)

var (
	tomorrowTime = regexp.MustCompile(`(?i)\btomorrow\s+(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	todayTime    = regexp.MustCompile(`(?i)\btoday\s+(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)
	nextWeekday  = regexp.MustCompile(`(?i)\bnext\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	tagPattern   = regexp.MustCompile(`#(\w+)`)
	priorityMark = regexp.MustCompile(`(?i)(!{1,3}|priority:\s*(low|medium|high|urgent))`)
)

// DefaultHour is the clock hour given to weekday-only dates.
const DefaultHour = 9

// Extractor is the fixed-pattern fast path.
type Extractor struct {
	dates *datemath.Parser
}

// New creates an Extractor resolving dates in the parser's timezone.
func New(dates *datemath.Parser) *Extractor {
	return &Extractor{dates: dates}
}

// Extract returns a Task when input carries a recognised date phrase or at
// least one tag. Plain text is rejected so richer strategies can run.
func (e *Extractor) Extract(input string, now time.Time) (model.Task, bool) {
	due, hasDue := e.extractDateTime(input, now)
	tags := extractTags(input)

	if !hasDue && len(tags) == 0 {
		return model.Task{}, false
	}

	task := model.Task{
		Title:       cleanTitle(input),
		Tags:        tags,
		Priority:    extractPriority(input),
		IsScheduled: hasDue,
	}
	if hasDue {
		task.DueDate = model.TimePtr(due)
	}
	return task, true
}

func (e *Extractor) extractDateTime(input string, now time.Time) (time.Time, bool) {
	if m := tomorrowTime.FindStringSubmatch(input); m != nil {
		return e.clockOn(now.AddDate(0, 0, 1), m)
	}

	if m := todayTime.FindStringSubmatch(input); m != nil {
		return e.clockOn(now, m)
	}

	if m := nextWeekday.FindStringSubmatch(input); m != nil {
		wd, ok := datemath.ParseWeekday(m[1])
		if !ok {
			return time.Time{}, false
		}
		return e.dates.At(e.dates.NextWeekday(now, wd), DefaultHour, 0), true
	}

	return time.Time{}, false
}

// clockOn applies an "H[:MM][am|pm]" capture to day.
func (e *Extractor) clockOn(day time.Time, m []string) (time.Time, bool) {
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	minute := 0
	if m[2] != "" {
		if minute, err = strconv.Atoi(m[2]); err != nil {
			return time.Time{}, false
		}
	}

	var pm *bool
	if m[3] != "" {
		v := strings.EqualFold(m[3], "pm")
		pm = &v
	}
	if !datemath.ValidClock(hour, minute, pm) {
		return time.Time{}, false
	}

	return e.dates.At(day, datemath.Resolve24h(hour, pm), minute), true
}

func extractTags(input string) []string {
	tags := []string{}
	for _, m := range tagPattern.FindAllStringSubmatch(input, -1) {
		tags = append(tags, m[1])
	}
	return tags
}

func extractPriority(input string) model.Priority {
	m := priorityMark.FindStringSubmatch(input)
	if m == nil {
		return model.PriorityMedium
	}
	if m[2] != "" {
		p, _ := model.ParsePriority(m[2])
		return p
	}
	switch len(m[1]) {
	case 3:
		return model.PriorityUrgent
	case 2:
		return model.PriorityHigh
	}
	return model.PriorityMedium
}

// cleanTitle strips the phrases Extract consumed. A clock time not anchored
// to a day is not consumed and stays in the title.
func cleanTitle(input string) string {
	cleaned := input
	for _, re := range []*regexp.Regexp{tomorrowTime, todayTime, nextWeekday, tagPattern, priorityMark} {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	return strings.Join(strings.Fields(cleaned), " ")
}
