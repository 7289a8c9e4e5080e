package ports

import (
	"context"

	"github.com/notekeeper/notes-api/internal/core/domain"
)

// TodoItemInput is one checklist entry as submitted by the client.
type TodoItemInput struct {
	ID          string
	Text        string
	IsCompleted bool
}

// CreateNoteInput carries all data needed to create a note. The owner
// email comes from the verified token, never from the request body.
type CreateNoteInput struct {
	Email   string
	Title   string
	Content string
	IsTodo  bool
	Todos   []TodoItemInput
	// IdempotencyKey, when non-empty, makes the create safe to retry:
	// a replayed key returns the originally inserted id.
	IdempotencyKey string
}

// CreateNoteResult is returned by NoteService.Create.
type CreateNoteResult struct {
	InsertedID string
	// Replayed is true when the idempotency key matched a previous create.
	Replayed bool
}

// UpdateNoteInput carries an in-place title/content overwrite.
type UpdateNoteInput struct {
	Email   string
	ID      string
	Title   string
	Content string
}

// NoteService defines the note lifecycle use cases. All operations are
// scoped to the given owner email.
type NoteService interface {
	Create(ctx context.Context, input CreateNoteInput) (*CreateNoteResult, error)
	List(ctx context.Context, filter ListNotesFilter) ([]*domain.Note, error)
	Get(ctx context.Context, email, id string) (*domain.Note, error)
	Update(ctx context.Context, input UpdateNoteInput) error
	SetArchived(ctx context.Context, email, id string, archived bool) error
	SetTrashed(ctx context.Context, email, id string, trashed bool) error
	Delete(ctx context.Context, email, id string) error
}
