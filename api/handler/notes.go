package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/notedeck/api/models"
	"github.com/jon4hz/notedeck/database"
	"github.com/samber/lo"
)

// ListNotes handles GET /notes. Every note is returned with its owner's
// username attached. An empty table is reported as an error to the client,
// matching the behavior the frontend was built against.
func (h *Handler) ListNotes(c *gin.Context) {
	notes, err := h.db.GetAllNotes(c.Request.Context())
	if err != nil {
		log.Error("failed to list notes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if len(notes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No notes found"})
		return
	}

	c.JSON(http.StatusOK, lo.Map(notes, func(note database.Note, _ int) models.NoteResponse {
		return models.NoteResponseFrom(note)
	}))
}

// CreateNote handles POST /notes.
func (h *Handler) CreateNote(c *gin.Context) {
	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	if req.Title == "" || req.Text == "" || req.User == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	ctx := c.Request.Context()

	// The owning user must exist before anything is written.
	if _, err := h.db.GetUserByID(ctx, req.User); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if _, err := h.db.GetNoteByTitle(ctx, req.Title); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Duplicate note title"})
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	note := &database.Note{
		Title:  req.Title,
		Text:   req.Text,
		UserID: req.User,
	}
	if err := h.db.CreateNote(ctx, note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid note data received"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "New note created"})
}

// UpdateNote handles PATCH /notes. A note may keep its own title: the
// duplicate check only rejects titles held by a different note.
func (h *Handler) UpdateNote(c *gin.Context) {
	var req models.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	if req.ID == 0 || req.Title == "" || req.Text == "" || req.User == 0 || req.Completed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.db.GetUserByID(ctx, req.User); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	note, err := h.db.GetNoteByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	duplicate, err := h.db.GetNoteByTitle(ctx, req.Title)
	if err == nil && duplicate.ID != note.ID {
		c.JSON(http.StatusConflict, gin.H{"message": "Duplicate note found"})
		return
	} else if err != nil && !errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	note.Title = req.Title
	note.Text = req.Text
	note.Completed = *req.Completed
	note.UserID = req.User

	if err := h.db.SaveNote(ctx, note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s updated", note.Title)})
}

// DeleteNote handles DELETE /notes.
func (h *Handler) DeleteNote(c *gin.Context) {
	var req models.DeleteNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Note ID required"})
		return
	}

	ctx := c.Request.Context()

	note, err := h.db.GetNoteByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if err := h.db.DeleteNote(ctx, note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Note %s with ID %d deleted", note.Title, note.ID)})
}
