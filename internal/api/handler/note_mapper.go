package handler

import (
	"github.com/notekeeper/notes-api/internal/core/domain"
	"github.com/notekeeper/notes-api/internal/core/ports"
)

// toCreateInput maps the HTTP request to the service DTO. The owner email
// and idempotency key come from the transport, never from the body.
func toCreateInput(email, idempotencyKey string, req createNoteRequest) ports.CreateNoteInput {
	todos := make([]ports.TodoItemInput, 0, len(req.Todos))
	for _, t := range req.Todos {
		todos = append(todos, ports.TodoItemInput{ID: t.ID, Text: t.Text, IsCompleted: t.IsCompleted})
	}
	return ports.CreateNoteInput{
		Email:          email,
		Title:          req.Title,
		Content:        req.Content,
		IsTodo:         req.IsTodo,
		Todos:          todos,
		IdempotencyKey: idempotencyKey,
	}
}

func toNoteResponse(n *domain.Note) noteResponse {
	todos := make([]todoItemResponse, 0, len(n.Todos))
	for _, t := range n.Todos {
		todos = append(todos, todoItemResponse{ID: t.ID, Text: t.Text, IsCompleted: t.IsCompleted})
	}
	return noteResponse{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		IsTodo:     n.IsTodo,
		Todos:      todos,
		IsArchived: n.IsArchived,
		IsTrashed:  n.IsTrashed,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func toNoteListResponse(notes []*domain.Note) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out
}
