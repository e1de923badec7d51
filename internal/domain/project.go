package domain

// User is the logged-in account as returned by /users/me.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Slug     string `json:"slug"`
}

// Project scopes statuses, members, stories and tasks. Tasks reference it
// by id only.
type Project struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// UserStory is an optional parent for tasks.
type UserStory struct {
	ID      int    `json:"id"`
	Ref     int    `json:"ref"`
	Subject string `json:"subject"`
	Project int    `json:"project"`
	Status  int    `json:"status"`
}

// Epic groups user stories. Referenced for navigation only.
type Epic struct {
	ID      int    `json:"id"`
	Ref     int    `json:"ref"`
	Subject string `json:"subject"`
	Project int    `json:"project"`
	Color   string `json:"color,omitempty"`
}
