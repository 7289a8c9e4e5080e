package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/notekeeper/notes-api/internal/core/domain"
	"github.com/notekeeper/notes-api/internal/core/ports"
)

// IdempotencyStore abstracts the replay guard for note creation (Redis).
type IdempotencyStore interface {
	// Lookup returns the note id previously stored under (email, key),
	// or ok=false when the key has not been seen.
	Lookup(ctx context.Context, email, key string) (noteID string, ok bool, err error)
	// Remember records the id inserted for (email, key).
	Remember(ctx context.Context, email, key, noteID string) error
}

// NoteService implements the note lifecycle over a NoteRepository.
type NoteService struct {
	repo ports.NoteRepository
	idem IdempotencyStore
	log  zerolog.Logger
}

func NewNoteService(repo ports.NoteRepository, idem IdempotencyStore, log zerolog.Logger) *NoteService {
	return &NoteService{repo: repo, idem: idem, log: log}
}

// Create validates and persists a new note. New notes always start
// un-archived and un-trashed. When an idempotency key is provided and
// already seen, the original inserted id is returned without a second
// insert.
func (s *NoteService) Create(ctx context.Context, input ports.CreateNoteInput) (*ports.CreateNoteResult, error) {
	if input.IdempotencyKey != "" && s.idem != nil {
		id, ok, err := s.idem.Lookup(ctx, input.Email, input.IdempotencyKey)
		if err != nil {
			// The guard is best-effort: a broken replay store must not
			// block writes, it only loses retry protection.
			s.log.Warn().Err(err).Msg("idempotency lookup failed")
		} else if ok {
			s.log.Info().Str("email", input.Email).Str("note_id", id).Msg("idempotent replay")
			return &ports.CreateNoteResult{InsertedID: id, Replayed: true}, nil
		}
	}

	content := input.Content
	if input.IsTodo {
		// The checklist is the source of truth for checklist notes.
		content = ""
	}

	todos := make([]domain.TodoItem, 0, len(input.Todos))
	for _, t := range input.Todos {
		todos = append(todos, domain.TodoItem{ID: t.ID, Text: t.Text, IsCompleted: t.IsCompleted})
	}

	now := time.Now().UTC()
	note := &domain.Note{
		Email:      input.Email,
		Title:      input.Title,
		Content:    content,
		IsTodo:     input.IsTodo,
		Todos:      todos,
		IsArchived: false,
		IsTrashed:  false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, note)
	if err != nil {
		s.log.Error().Err(err).Str("email", input.Email).Msg("failed to create note")
		return nil, err
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, input.Email, input.IdempotencyKey, id); err != nil {
			s.log.Warn().Err(err).Msg("idempotency record failed")
		}
	}

	s.log.Info().Str("note_id", id).Str("email", input.Email).Bool("is_todo", note.IsTodo).Msg("note created")

	return &ports.CreateNoteResult{InsertedID: id}, nil
}

func (s *NoteService) List(ctx context.Context, filter ports.ListNotesFilter) ([]*domain.Note, error) {
	return s.repo.List(ctx, filter)
}

func (s *NoteService) Get(ctx context.Context, email, id string) (*domain.Note, error) {
	return s.repo.FindByID(ctx, email, id)
}

// Update overwrites title and content. A checklist note keeps its
// checklist as the source of truth, so submitted content is discarded
// for it, same as on create.
func (s *NoteService) Update(ctx context.Context, input ports.UpdateNoteInput) error {
	if input.Title == "" {
		return domain.ErrInvalidNote
	}

	current, err := s.repo.FindByID(ctx, input.Email, input.ID)
	if err != nil {
		return err
	}

	content := input.Content
	if current.IsTodo {
		content = ""
	}
	return s.repo.UpdateContent(ctx, input.Email, input.ID, input.Title, content)
}

func (s *NoteService) SetArchived(ctx context.Context, email, id string, archived bool) error {
	return s.repo.SetArchived(ctx, email, id, archived)
}

func (s *NoteService) SetTrashed(ctx context.Context, email, id string, trashed bool) error {
	return s.repo.SetTrashed(ctx, email, id, trashed)
}

// Delete permanently removes a trashed note. The repository enforces the
// trashed-only policy, so anything else surfaces as not found.
func (s *NoteService) Delete(ctx context.Context, email, id string) error {
	if err := s.repo.Delete(ctx, email, id); err != nil {
		return err
	}
	s.log.Info().Str("note_id", id).Str("email", email).Msg("note deleted")
	return nil
}
