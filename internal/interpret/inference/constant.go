package inference

import "time"

const (
	// DefaultTimeout bounds a single inference exchange.
	DefaultTimeout = 15 * time.Second

	// DefaultProbeTimeout bounds the availability probe.
	DefaultProbeTimeout = 2 * time.Second

	dateFormat = "2006-01-02"
)

// promptTemplate args: today, offset, offset, today, tomorrow, tomorrow,
// offset, tomorrow, offset, input.
const promptTemplate = `Today is %s (UTC offset %s). Parse the following natural language input into structured JSON.

CRITICAL TIME PARSING RULES:
- "4:12 PM" or "4:12 pm" -> use 16:12:00 (afternoon)
- "4:12 AM" or "4:12 am" -> use 04:12:00 (morning)
- "12:00 PM" -> use 12:00:00 (noon)
- "12:00 AM" -> use 00:00:00 (midnight)
- Always output datetime in ISO 8601 format with an explicit offset: YYYY-MM-DDTHH:MM:SS%s
- "today" is %s and "tomorrow" is %s.

Extract: type (task/event), title, datetime (ISO 8601 with offset, omit when absent), tags (array), priority (low/medium/high/urgent).

Examples:
Input: "Submit report tomorrow at 3pm #work"
Output: {"type": "task", "title": "Submit report", "datetime": "%sT15:00:00%s", "tags": ["work"], "priority": "medium"}

Input: "Call John at 9:30 AM tomorrow"
Output: {"type": "task", "title": "Call John", "datetime": "%sT09:30:00%s", "tags": [], "priority": "medium"}

Now parse: %q
Output (ONLY valid JSON, no explanations):`
