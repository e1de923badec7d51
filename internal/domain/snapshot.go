package domain

// Snapshot captures a task's editable fields at the moment it was
// rendered into an editable card. It exists only to compute a minimal
// diff on save and is discarded on reload.
type Snapshot struct {
	Subject     string
	Description string
	Status      int
	AssignedTo  *int
}

// NewSnapshot captures the editable fields of a task.
func NewSnapshot(t Task) Snapshot {
	return Snapshot{
		Subject:     t.Subject,
		Description: t.Description,
		Status:      t.Status,
		AssignedTo:  t.AssignedTo,
	}
}

// Form holds the edited field values read from a card. Subject and
// Description are expected to be trimmed by the caller.
type Form struct {
	Subject     string
	Description string
	Status      int
	AssignedTo  *int
}

// TaskPatch is a partial update. Nil field pointers mean "unchanged".
// AssignedTo needs a separate set flag because nil is a legal target
// value (unassignment). Version is always sent.
type TaskPatch struct {
	Version       int
	Subject       *string
	Description   *string
	Status        *int
	AssignedTo    *int
	AssignedToSet bool
}

// Empty reports whether the patch carries nothing besides the version.
func (p TaskPatch) Empty() bool {
	return p.Subject == nil && p.Description == nil && p.Status == nil && !p.AssignedToSet
}

// Fields returns the wire representation of the patch. Unset fields are
// omitted entirely; an unassignment is an explicit null.
func (p TaskPatch) Fields() map[string]any {
	m := map[string]any{"version": p.Version}
	if p.Subject != nil {
		m["subject"] = *p.Subject
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.AssignedToSet {
		if p.AssignedTo != nil {
			m["assigned_to"] = *p.AssignedTo
		} else {
			m["assigned_to"] = nil
		}
	}
	return m
}

// Diff compares edited values against the snapshot and builds the
// minimal patch: only fields that actually differ are included, plus the
// version the task was read at. Status 0 in the form means "no selection"
// and never produces a status change.
func (s Snapshot) Diff(f Form, version int) TaskPatch {
	p := TaskPatch{Version: version}

	if f.Subject != s.Subject {
		subject := f.Subject
		p.Subject = &subject
	}
	if f.Description != s.Description {
		description := f.Description
		p.Description = &description
	}
	if f.Status != 0 && f.Status != s.Status {
		status := f.Status
		p.Status = &status
	}
	if !IntPtrEqual(f.AssignedTo, s.AssignedTo) {
		p.AssignedTo = f.AssignedTo
		p.AssignedToSet = true
	}
	return p
}
