// Package state owns the process-wide mutable session data: the
// logged-in user, the selected project and story, and the loaded task
// board. There is one Store per running app; services receive it by
// injection and a successful mutation triggers a full reload that
// overwrites it wholesale.
package state

import (
	"sync"

	"github.com/google/uuid"
	"github.com/riordanpawley/melia/internal/domain"
)

// Store is the single owned state container.
type Store struct {
	mu       sync.RWMutex
	user     domain.User
	project  *domain.Project
	story    *domain.UserStory
	tasks    []domain.Task
	statuses []domain.TaskStatus
	members  []domain.Member
	drafts   []domain.Draft
}

// NewStore creates an empty state container.
func NewStore() *Store {
	return &Store{}
}

// User returns the logged-in user.
func (s *Store) User() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser records the logged-in user.
func (s *Store) SetUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Project returns the currently selected project, or nil.
func (s *Store) Project() *domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project
}

// SetProject selects a project and clears project-scoped data.
func (s *Store) SetProject(p *domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project = p
	s.story = nil
	s.tasks = nil
	s.statuses = nil
	s.members = nil
	s.drafts = nil
}

// RefreshProject replaces the selected project's record with a fuller
// one (the list endpoint returns an abbreviated record) without
// clearing any project-scoped data. A record for a different project is
// ignored.
func (s *Store) RefreshProject(p *domain.Project) {
	if p == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil || s.project.ID != p.ID {
		return
	}
	s.project = p
}

// Story returns the currently selected user story, or nil when browsing
// project-level tasks.
func (s *Store) Story() *domain.UserStory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.story
}

// SetStory selects a story (nil for the project-level view) and clears
// the loaded task list.
func (s *Store) SetStory(story *domain.UserStory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.story = story
	s.tasks = nil
	s.drafts = nil
}

// Tasks returns a copy of the loaded persisted task list.
func (s *Store) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// SetTasks overwrites the loaded task list.
func (s *Store) SetTasks(tasks []domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
}

// Statuses returns the project's ordered status list.
func (s *Store) Statuses() []domain.TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TaskStatus, len(s.statuses))
	copy(out, s.statuses)
	return out
}

// SetStatuses overwrites the project's status list.
func (s *Store) SetStatuses(statuses []domain.TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = statuses
}

// SetMembers overwrites the project's membership records.
func (s *Store) SetMembers(members []domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = members
}

// Members returns the project's membership records.
func (s *Store) Members() []domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Member, len(s.members))
	copy(out, s.members)
	return out
}

// SortedMembers returns the members in display order: current user
// first, then alphabetical.
func (s *Store) SortedMembers() []domain.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.SortMembers(s.members, s.user)
}

// Drafts returns a copy of the pending-new-task cards.
func (s *Store) Drafts() []domain.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Draft, len(s.drafts))
	copy(out, s.drafts)
	return out
}

// NewDraft appends an empty pending-new-task card and returns its
// temporary key.
func (s *Store) NewDraft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := "new-" + uuid.NewString()
	s.drafts = append(s.drafts, domain.Draft{Key: key})
	return key
}

// RemoveDraft discards a pending-new-task card.
func (s *Store) RemoveDraft(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.drafts {
		if d.Key == key {
			s.drafts = append(s.drafts[:i], s.drafts[i+1:]...)
			return
		}
	}
}

// UpdateDraft applies fn to the draft with the given key.
func (s *Store) UpdateDraft(key string, fn func(*domain.Draft)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drafts {
		if s.drafts[i].Key == key {
			fn(&s.drafts[i])
			return true
		}
	}
	return false
}

// MutateDrafts applies fn to every draft. Used by bulk operations to
// pre-fill not-yet-created cards without any network call.
func (s *Store) MutateDrafts(fn func(*domain.Draft)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drafts {
		fn(&s.drafts[i])
	}
	return len(s.drafts)
}

// TaskByID looks up a loaded task.
func (s *Store) TaskByID(id int) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

func (s *Store) setBoard(tasks []domain.Task, statuses []domain.TaskStatus, members []domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.statuses = statuses
	s.members = members
}
