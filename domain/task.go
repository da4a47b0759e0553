package domain

import "time"

// Task statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DueDateLayout is the calendar-date format used for Task.DueDate.
const DueDateLayout = "2006-01-02"

// Task is a shared activity record persisted at tasks/{id}.
//
// ID, AssignedUser and User are fixed at creation; edits touch only
// Title, Description, DueDate and Status.
type Task struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	DueDate      string   `json:"due_date"`
	Status       string   `json:"status"`
	Priority     string   `json:"priority,omitempty"`
	AssignedUser string   `json:"assigned_user"`
	User         Identity `json:"user"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// Due parses the due date as a calendar date. The zero time is returned
// for unparseable values so such tasks sort together at the front.
func (t *Task) Due() time.Time {
	if t == nil {
		return time.Time{}
	}
	parsed, err := time.Parse(DueDateLayout, t.DueDate)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// ValidStatus reports whether s is a recognized task status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted
}

// ValidPriority reports whether p is a recognized task priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
