package domain

import "time"

// Task is a single to-do item. ID and CreatedAt are assigned by the store on
// creation and never change afterwards. UpdatedAt stays nil until the first
// update.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// NewTask creates an unsaved task. Completed starts as false.
func NewTask(title, description string) *Task {
	return &Task{
		Title:       title,
		Description: description,
	}
}

// TaskPatch is a partial update. A nil field is left unchanged; there is no
// way to clear a field, so "omitted" and "null" mean the same thing.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Apply copies every supplied field onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
