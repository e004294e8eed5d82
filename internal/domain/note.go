package domain

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Category string

const (
	CategoryMeeting     Category = "meeting"
	CategoryAppointment Category = "appointment"
	CategoryReminder    Category = "reminder"
	CategoryTask        Category = "task"
	CategoryOther       Category = "other"
)

// Note is the structured result extracted from one voice-note transcript.
// Title and Body are always set. Start is nil when the transcript carries
// no schedulable intent; End is only set when Start is.
type Note struct {
	Title      string
	Body       string
	Start      *time.Time
	End        *time.Time
	Location   string
	Priority   Priority
	Category   Category
	Attendees  []string
	Extra      string
	Transcript string
}

// Schedulable reports whether the note should produce a calendar event.
func (n *Note) Schedulable() bool {
	return n != nil && n.Start != nil
}

// EndOrDefault returns the event end, defaulting to one hour after Start.
func (n *Note) EndOrDefault() time.Time {
	if n.End != nil {
		return *n.End
	}
	if n.Start != nil {
		return n.Start.Add(time.Hour)
	}
	return time.Time{}
}

func NormalizePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

func NormalizeCategory(s string) Category {
	switch Category(s) {
	case CategoryMeeting, CategoryAppointment, CategoryReminder, CategoryTask:
		return Category(s)
	default:
		return CategoryOther
	}
}
