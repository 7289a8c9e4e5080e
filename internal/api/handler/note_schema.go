package handler

import "time"

type todoItemRequest struct {
	ID          string `json:"id"   validate:"required"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
}

type createNoteRequest struct {
	Title   string            `json:"title" validate:"required"`
	Content string            `json:"content"`
	IsTodo  bool              `json:"is_todo"`
	Todos   []todoItemRequest `json:"todos" validate:"omitempty,dive"`
}

type updateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// setArchivedRequest carries the explicit target value so the operation is
// idempotent and safe to retry, unlike a blind toggle.
type setArchivedRequest struct {
	IsArchived *bool `json:"is_archived" validate:"required"`
}

type setTrashedRequest struct {
	IsTrashed *bool `json:"is_trashed" validate:"required"`
}

type createNoteResponse struct {
	InsertedID string `json:"inserted_id"`
	Replayed   bool   `json:"replayed,omitempty"`
}

type todoItemResponse struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
}

type noteResponse struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	IsTodo     bool               `json:"is_todo"`
	Todos      []todoItemResponse `json:"todos"`
	IsArchived bool               `json:"is_archived"`
	IsTrashed  bool               `json:"is_trashed"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type updateNoteResponse struct {
	UpdatedID string `json:"updated_id"`
}

type noteStatusResponse struct {
	ID         string `json:"id"`
	IsArchived *bool  `json:"is_archived,omitempty"`
	IsTrashed  *bool  `json:"is_trashed,omitempty"`
}

type deleteNoteResponse struct {
	Success bool `json:"success"`
}
