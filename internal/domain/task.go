package domain

// Task is a task as last read from the remote service. Version is the
// optimistic-concurrency token: every update must echo the version the
// task was read at, and the service rejects stale writes.
type Task struct {
	ID          int    `json:"id"`
	Ref         int    `json:"ref"`
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
	Project     int    `json:"project"`
	UserStory   *int   `json:"user_story,omitempty"`
	Status      int    `json:"status"`
	AssignedTo  *int   `json:"assigned_to"`
	Version     int    `json:"version"`
}

// TaskStatus is one entry of a project's ordered status list. The first
// entry is the default status for new tasks.
type TaskStatus struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// DefaultStatus returns the id of the first status in the list, which the
// service treats as the default for new tasks.
func DefaultStatus(statuses []TaskStatus) (int, bool) {
	if len(statuses) == 0 {
		return 0, false
	}
	return statuses[0].ID, true
}

// StatusByID looks up a status by id.
func StatusByID(statuses []TaskStatus, id int) (TaskStatus, bool) {
	for _, s := range statuses {
		if s.ID == id {
			return s, true
		}
	}
	return TaskStatus{}, false
}

// Draft is a pending-new-task: a card created locally that has no remote
// identifier yet. Key is a locally generated temporary key and is never
// sent to the service.
type Draft struct {
	Key         string
	Subject     string
	Description string
	Status      int // 0 means "use the project default"
	AssignedTo  *int
}

// NewTask is the payload for creating a task. AssignedTo is always sent,
// null meaning unassigned.
type NewTask struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Project     int    `json:"project"`
	Status      int    `json:"status"`
	UserStory   *int   `json:"user_story,omitempty"`
	AssignedTo  *int   `json:"assigned_to"`
}

// BulkResult is the per-position outcome of a bulk creation. Exactly one
// of Task or Err is set; Data carries the original payload on failure so
// the caller can retry or report it.
type BulkResult struct {
	Task *Task
	Data NewTask
	Err  error
}

// IntPtrEqual compares two optional ints by value, treating nil as
// "unassigned".
func IntPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
