package tasktype

import "time"

// TaskType is a reusable task name managers pick from when building rosters.
type TaskType struct {
	ID          int64
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
}
