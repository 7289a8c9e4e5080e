package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrInvalidNote = errors.New("invalid note")

// TodoItem is a single checklist entry. The ID only needs to be unique
// within its note; the client generates it.
type TodoItem struct {
	ID          string `json:"id" bson:"id"`
	Text        string `json:"text" bson:"text"`
	IsCompleted bool   `json:"is_completed" bson:"is_completed"`
}

// Note is a user-owned document holding either free text or a checklist.
// IsArchived and IsTrashed are independent flags: a note may carry both,
// and each list filter applies on its own. Trashing is a soft delete;
// the only hard delete permitted is on an already-trashed note.
type Note struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	Email      string     `json:"email" bson:"email"`
	Title      string     `json:"title" bson:"title"`
	Content    string     `json:"content" bson:"content"`
	IsTodo     bool       `json:"is_todo" bson:"is_todo"`
	Todos      []TodoItem `json:"todos" bson:"todos"`
	IsArchived bool       `json:"is_archived" bson:"is_archived"`
	IsTrashed  bool       `json:"is_trashed" bson:"is_trashed"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

// Validate enforces the content rules fixed at creation time: a title is
// always required; a checklist note carries no free text and at least one
// item with text; a text note carries no checklist. All violations wrap
// ErrInvalidNote so callers can map them to a single error class.
func (n *Note) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidNote)
	}
	if n.IsTodo {
		if len(n.Todos) == 0 {
			return fmt.Errorf("%w: checklist note requires at least one item", ErrInvalidNote)
		}
		for _, item := range n.Todos {
			if item.Text == "" {
				return fmt.Errorf("%w: checklist items must have text", ErrInvalidNote)
			}
		}
		return nil
	}
	if len(n.Todos) > 0 {
		return fmt.Errorf("%w: checklist items only allowed on checklist notes", ErrInvalidNote)
	}
	if n.Content == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidNote)
	}
	return nil
}
