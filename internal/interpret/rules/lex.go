package rules

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// literal consumes lit case-insensitively.
func literal(in, lit string) (string, bool) {
	if len(in) < len(lit) || !strings.EqualFold(in[:len(lit)], lit) {
		return in, false
	}
	return in[len(lit):], true
}

// word consumes lit only when it is not followed by a letter or digit.
func word(in, lit string) (string, bool) {
	rest, ok := literal(in, lit)
	if !ok || !boundary(rest) {
		return in, false
	}
	return rest, true
}

// oneOfWords consumes the first matching entry of words.
func oneOfWords(in string, words ...string) (string, string, bool) {
	for _, w := range words {
		if rest, ok := word(in, w); ok {
			return strings.ToLower(w), rest, true
		}
	}
	return "", in, false
}

// space1 consumes at least one whitespace rune.
func space1(in string) (string, bool) {
	rest := strings.TrimLeftFunc(in, unicode.IsSpace)
	return rest, len(rest) < len(in)
}

func space0(in string) string {
	return strings.TrimLeftFunc(in, unicode.IsSpace)
}

// number consumes a run of ASCII digits.
func number(in string) (int, string, bool) {
	i := 0
	for i < len(in) && in[i] >= '0' && in[i] <= '9' {
		i++
	}
	if i == 0 || i > 9 {
		return 0, in, false
	}
	n, err := strconv.Atoi(in[:i])
	if err != nil {
		return 0, in, false
	}
	return n, in[i:], true
}

// alpha consumes a run of letters.
func alpha(in string) (string, string, bool) {
	end := strings.IndexFunc(in, func(r rune) bool { return !unicode.IsLetter(r) })
	if end == -1 {
		end = len(in)
	}
	if end == 0 {
		return "", in, false
	}
	return in[:end], in[end:], true
}

// boundary reports whether rest starts outside a word.
func boundary(rest string) bool {
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// token consumes up to the next whitespace rune.
func token(in string) (string, string) {
	end := strings.IndexFunc(in, unicode.IsSpace)
	if end == -1 {
		return in, ""
	}
	return in[:end], in[end:]
}

// clock is an "H[:MM][am|pm]" reading before range inheritance.
type clock struct {
	hour   int
	minute int
	pm     *bool
}

// looseTime consumes an hour, optional minutes and an optional am/pm
// suffix. Values are not validated here.
func looseTime(in string) (clock, string, bool) {
	hour, rest, ok := number(in)
	if !ok {
		return clock{}, in, false
	}
	c := clock{hour: hour}

	if after, ok := literal(rest, ":"); ok {
		minute, after, ok := number(after)
		if !ok || len(rest)-len(after) != 3 {
			return clock{}, in, false
		}
		c.minute = minute
		rest = after
	}

	if marker, after, ok := oneOfWords(space0(rest), "am", "pm"); ok {
		pm := marker == "pm"
		c.pm = &pm
		rest = after
	}
	return c, rest, true
}
