package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/notekeeper/notes-api/internal/api/metrics"
	"github.com/notekeeper/notes-api/internal/core/ports"
)

// NoteHandler handles HTTP requests for the note lifecycle. Every route it
// serves sits behind the Auth middleware; the owner email always comes
// from the verified token.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// Create handles POST /v1/notes.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Makes the create safe to retry"
// @Param        body             body      createNoteRequest  true   "Note contents"
// @Success      201              {object}  createNoteResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /v1/notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")

	result, err := h.service.Create(c.Request().Context(), toCreateInput(email, idempotencyKey, req))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
		metrics.CreateReplaysTotal.Inc()
	} else {
		kind := "text"
		if req.IsTodo {
			kind = "checklist"
		}
		metrics.NotesCreatedTotal.WithLabelValues(kind).Inc()
	}
	return c.JSON(status, createNoteResponse{InsertedID: result.InsertedID, Replayed: result.Replayed})
}

// List handles GET /v1/notes.
//
// @Summary      List the caller's notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        is_archived  query     bool    false  "Filter by archived flag"
// @Param        is_trashed   query     bool    false  "Filter by trashed flag"
// @Param        search       query     string  false  "Case-insensitive substring match on title or content"
// @Success      200          {array}   noteResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Router       /v1/notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	filter := ports.ListNotesFilter{
		Email:  email,
		Search: c.QueryParam("search"),
	}
	if filter.IsArchived, err = boolQueryParam(c, "is_archived"); err != nil {
		return err
	}
	if filter.IsTrashed, err = boolQueryParam(c, "is_trashed"); err != nil {
		return err
	}

	notes, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toNoteListResponse(notes))
}

// Get handles GET /v1/notes/:id.
//
// @Summary      Get a single note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  noteResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	note, err := h.service.Get(c.Request().Context(), email, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Update handles PUT /v1/notes/:id — overwrites title and content,
// leaving status flags and the checklist untouched.
//
// @Summary      Update a note's title and content
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Note id"
// @Param        body  body      updateNoteRequest  true  "New title and content"
// @Success      200   {object}  updateNoteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	if err := h.service.Update(c.Request().Context(), ports.UpdateNoteInput{
		Email:   email,
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateNoteResponse{UpdatedID: id})
}

// SetArchived handles PATCH /v1/notes/:id/archive. The body names the
// target value, so retries are harmless; restoring is setting false.
//
// @Summary      Archive or unarchive a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Note id"
// @Param        body  body      setArchivedRequest  true  "Target archived value"
// @Success      200   {object}  noteStatusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/notes/{id}/archive [patch]
func (h *NoteHandler) SetArchived(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req setArchivedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	if err := h.service.SetArchived(c.Request().Context(), email, id, *req.IsArchived); err != nil {
		return err
	}
	metrics.NoteStatusChangesTotal.WithLabelValues("archived", strconv.FormatBool(*req.IsArchived)).Inc()

	return c.JSON(http.StatusOK, noteStatusResponse{ID: id, IsArchived: req.IsArchived})
}

// SetTrashed handles PATCH /v1/notes/:id/trash. Trashing is a soft
// delete; setting false restores the note.
//
// @Summary      Trash or restore a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Note id"
// @Param        body  body      setTrashedRequest  true  "Target trashed value"
// @Success      200   {object}  noteStatusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/notes/{id}/trash [patch]
func (h *NoteHandler) SetTrashed(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req setTrashedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	if err := h.service.SetTrashed(c.Request().Context(), email, id, *req.IsTrashed); err != nil {
		return err
	}
	metrics.NoteStatusChangesTotal.WithLabelValues("trashed", strconv.FormatBool(*req.IsTrashed)).Inc()

	return c.JSON(http.StatusOK, noteStatusResponse{ID: id, IsTrashed: req.IsTrashed})
}

// Delete handles DELETE /v1/notes/:id — permanent removal, only valid for
// a note that is already trashed.
//
// @Summary      Permanently delete a trashed note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  deleteNoteResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), email, c.Param("id")); err != nil {
		return err
	}
	metrics.NotesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, deleteNoteResponse{Success: true})
}

// boolQueryParam parses an optional tri-state boolean query parameter:
// absent means nil (no filter).
func boolQueryParam(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a boolean")
	}
	return &v, nil
}
