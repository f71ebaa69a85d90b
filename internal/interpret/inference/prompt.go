package inference

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// buildPrompt anchors relative day words to concrete dates in now's
// location.
func buildPrompt(input string, now time.Time) string {
	today := now.Format(dateFormat)
	tomorrow := now.AddDate(0, 0, 1).Format(dateFormat)
	offset := now.Format("-07:00")

	return fmt.Sprintf(promptTemplate,
		today, offset,
		offset,
		today, tomorrow,
		tomorrow, offset,
		tomorrow, offset,
		input,
	)
}

// sanitizeJSONResponse strips markdown fences and surrounding prose.
func sanitizeJSONResponse(text string) string {
	if m := codeFence.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}
