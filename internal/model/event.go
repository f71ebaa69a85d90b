package model

import "time"

// Event is a calendar entry with a known start and end.
type Event struct {
	Title     string     `json:"title"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Location  *string    `json:"location,omitempty"`
	Tags      []string   `json:"tags"`
}

func (Event) isIntent() {}

// Kind implements Intent.
func (Event) Kind() IntentKind { return IntentEvent }

// Clone returns a copy sharing no memory with e.
func (e Event) Clone() Event {
	c := e
	c.Tags = cloneTags(e.Tags)
	if e.EndTime != nil {
		c.EndTime = TimePtr(*e.EndTime)
	}
	if e.Location != nil {
		loc := *e.Location
		c.Location = &loc
	}
	return c
}

// AsTask degrades an event without an end to a scheduled task due at its
// start.
func (e Event) AsTask(priority Priority) Task {
	return Task{
		Title:       e.Title,
		DueDate:     TimePtr(e.StartTime),
		Tags:        cloneTags(e.Tags),
		Priority:    priority,
		IsScheduled: true,
	}
}
