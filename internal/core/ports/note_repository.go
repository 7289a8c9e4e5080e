package ports

import (
	"context"

	"github.com/notekeeper/notes-api/internal/core/domain"
)

// ListNotesFilter carries the query parameters for listing notes.
// Email is always enforced by the service layer; results never cross
// owner boundaries. Nil flag pointers mean "no filter".
type ListNotesFilter struct {
	Email      string
	IsArchived *bool
	IsTrashed  *bool
	// Search is a case-insensitive substring matched against title and content.
	Search string
}

// NoteRepository defines persistence for note documents. Every method
// that addresses a single note filters by both id and owner email, so a
// foreign id reports domain.ErrNoteNotFound rather than leaking data.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (string, error)
	FindByID(ctx context.Context, email, id string) (*domain.Note, error)
	// List returns matching notes in insertion order.
	List(ctx context.Context, filter ListNotesFilter) ([]*domain.Note, error)
	// UpdateContent overwrites title and content, leaving status flags
	// and the checklist untouched.
	UpdateContent(ctx context.Context, email, id, title, content string) error
	SetArchived(ctx context.Context, email, id string, archived bool) error
	SetTrashed(ctx context.Context, email, id string, trashed bool) error
	// Delete removes a note permanently. Only trashed notes qualify;
	// anything else reports domain.ErrNoteNotFound.
	Delete(ctx context.Context, email, id string) error
}
