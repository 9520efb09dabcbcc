package delivery

import (
	"net/http"

	"notespace-backend/internal/note/dto"
	"notespace-backend/internal/note/usecase"
	"notespace-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// NoteHandler handles note-related HTTP requests. All routes sit behind
// AuthMiddleware, so "userID" is always set.
type NoteHandler struct {
	noteUsecase        usecase.NoteUsecase
	log                *zap.Logger
	exposeErrorDetails bool
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteUsecase usecase.NoteUsecase, log *zap.Logger, exposeErrorDetails bool) *NoteHandler {
	return &NoteHandler{
		noteUsecase:        noteUsecase,
		log:                log,
		exposeErrorDetails: exposeErrorDetails,
	}
}

// ListNotes returns the caller's notes
// GET /api/notes/
func (h *NoteHandler) ListNotes(c *gin.Context) {
	notes, err := h.noteUsecase.ListNotes(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		apperr.Respond(c, err, "Error listing notes", h.exposeErrorDetails)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// GetNote returns one of the caller's notes
// GET /api/notes/:id/
func (h *NoteHandler) GetNote(c *gin.Context) {
	note, err := h.noteUsecase.GetNote(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err, "Error retrieving note", h.exposeErrorDetails)
		return
	}
	c.JSON(http.StatusOK, note)
}

// CreateNote creates a note owned by the caller
// POST /api/notes/
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID := c.GetString("userID")
	raw := h.logRequest(c, "note create request")

	var req dto.CreateNoteRequest
	if err := binding.JSON.BindBody(raw, &req); err != nil {
		apperr.Respond(c, apperr.FromBinding(err), "", false)
		return
	}

	note, err := h.noteUsecase.CreateNote(c.Request.Context(), userID, usecase.NoteInput{
		Title: req.Title,
		Body:  req.Text(),
		Tags:  req.Tags,
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			h.log.Error("error in create note",
				zap.String("user", userID),
				zap.ByteString("payload", raw),
				zap.Error(err))
		}
		apperr.Respond(c, err, "Error creating note", h.exposeErrorDetails)
		return
	}

	c.JSON(http.StatusCreated, note)
}

// UpdateNote updates one of the caller's notes. PUT requires a title,
// PATCH accepts any subset of fields.
// PUT|PATCH /api/notes/:id/
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID := c.GetString("userID")
	raw := h.logRequest(c, "note update request")

	var req dto.UpdateNoteRequest
	if err := binding.JSON.BindBody(raw, &req); err != nil {
		apperr.Respond(c, apperr.FromBinding(err), "", false)
		return
	}
	if c.Request.Method == http.MethodPut && req.Title == nil {
		apperr.Respond(c, apperr.NewValidationError("title", "this field is required"), "", false)
		return
	}

	note, err := h.noteUsecase.UpdateNote(c.Request.Context(), userID, c.Param("id"), usecase.NoteUpdate{
		Title: req.Title,
		Body:  req.TextPtr(),
		Tags:  req.Tags,
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			h.log.Error("error in update note",
				zap.String("user", userID),
				zap.String("note_id", c.Param("id")),
				zap.ByteString("payload", raw),
				zap.Error(err))
		}
		apperr.Respond(c, err, "Error updating note", h.exposeErrorDetails)
		return
	}

	c.JSON(http.StatusOK, note)
}

// DeleteNote deletes one of the caller's notes
// DELETE /api/notes/:id/
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	if err := h.noteUsecase.DeleteNote(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		apperr.Respond(c, err, "Error deleting note", h.exposeErrorDetails)
		return
	}
	c.Status(http.StatusNoContent)
}

// logRequest reads the raw body and logs it with the caller, method and path
// before anything else happens. The payload is logged verbatim.
func (h *NoteHandler) logRequest(c *gin.Context, msg string) []byte {
	raw, err := c.GetRawData()
	if err != nil {
		h.log.Warn("read request body", zap.Error(err))
	}
	h.log.Info(msg,
		zap.String("user", c.GetString("userID")),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.ByteString("payload", raw))
	return raw
}
