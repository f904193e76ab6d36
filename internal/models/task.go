package models

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Task is a one-off (or scheduled) item of work. Tasks reference their
// Project by ID only; the project object is never embedded.
//
// Deletion is a soft tombstone: DeletedAt is set and the task stays in the
// snapshot, so synchronization never has to tell "missing because deleted"
// from "missing because never synced", and activity history keeps working.
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Status        TaskStatus `json:"status"`
	ProjectID     string     `json:"project_id,omitempty"`
	ScheduledDate string     `json:"scheduled_date,omitempty"` // YYYY-MM-DD
	Deadline      string     `json:"deadline,omitempty"`       // YYYY-MM-DD
	PriorityScore int        `json:"priority_score"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the task carries a deletion tombstone.
func (t Task) Deleted() bool {
	return t.DeletedAt != nil
}
