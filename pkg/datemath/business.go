package datemath

import (
	"fmt"
	"strings"
	"time"
)

// BusinessHour is the wall-clock hour business deadlines resolve to.
const BusinessHour = 17

// Business resolves eod/cob/eow/eom relative to baseTime.
func (p *Parser) Business(token string, baseTime time.Time) (time.Time, error) {
	base := baseTime.In(p.location)

	switch strings.ToLower(token) {
	case "eod", "cob":
		return p.At(base, BusinessHour, 0), nil
	case "eow":
		// Upcoming Friday, today when it already is Friday.
		days := (int(time.Friday) - int(base.Weekday()) + 7) % 7
		return p.At(base.AddDate(0, 0, days), BusinessHour, 0), nil
	case "eom":
		firstOfNext := time.Date(base.Year(), base.Month()+1, 1, 0, 0, 0, 0, p.location)
		return p.At(firstOfNext.AddDate(0, 0, -1), BusinessHour, 0), nil
	}

	return time.Time{}, fmt.Errorf("unknown business token: %q", token)
}

// QuantizeUp rounds t up to the next multiple of grid since the Unix epoch.
// A t already on the grid is returned unchanged.
func QuantizeUp(t time.Time, grid time.Duration) time.Time {
	gridSec := int64(grid / time.Second)
	if gridSec <= 0 {
		return t
	}
	rem := t.Unix() % gridSec
	if rem < 0 {
		rem += gridSec
	}
	if rem == 0 {
		return t
	}
	return t.Truncate(time.Second).Add(time.Duration(gridSec-rem) * time.Second)
}

// ValidClock reports whether hour:minute is a legal reading on a 12-hour
// clock when pm is set, or on a 24-hour clock otherwise.
func ValidClock(hour, minute int, pm *bool) bool {
	if minute < 0 || minute > 59 {
		return false
	}
	if pm != nil {
		return hour >= 1 && hour <= 12
	}
	return hour >= 0 && hour <= 23
}

// Resolve24h converts a 12-hour clock reading. A nil pm means the hour is
// already on a 24-hour clock.
func Resolve24h(hour int, pm *bool) int {
	if pm == nil {
		return hour
	}
	switch {
	case hour == 12 && *pm:
		return 12
	case hour == 12:
		return 0
	case *pm:
		return hour + 12
	}
	return hour
}
