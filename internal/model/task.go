package model

import "time"

// Task is an actionable item, optionally carrying a due date.
type Task struct {
	Title       string     `json:"title"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags"`
	Priority    Priority   `json:"priority"`
	IsScheduled bool       `json:"is_scheduled"`
}

func (Task) isIntent() {}

// Kind implements Intent.
func (Task) Kind() IntentKind { return IntentTask }

// NewFallbackTask wraps raw input as an unscheduled medium-priority task.
func NewFallbackTask(raw string) Task {
	return Task{
		Title:    raw,
		Tags:     []string{},
		Priority: PriorityMedium,
	}
}

// Clone returns a copy sharing no memory with t.
func (t Task) Clone() Task {
	c := t
	c.Tags = cloneTags(t.Tags)
	if t.DueDate != nil {
		c.DueDate = TimePtr(*t.DueDate)
	}
	return c
}
