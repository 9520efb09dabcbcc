package usecase

import (
	"context"

	"notespace-backend/internal/note/domain"
)

// NoteUsecase defines the interface for note business logic. Every method
// takes the authenticated caller as ownerID and never sees other users' notes.
type NoteUsecase interface {
	// ListNotes returns the caller's notes
	ListNotes(ctx context.Context, ownerID string) ([]*domain.Note, error)

	// GetNote returns one of the caller's notes
	GetNote(ctx context.Context, ownerID, noteID string) (*domain.Note, error)

	// CreateNote creates a note owned by the caller
	CreateNote(ctx context.Context, ownerID string, input NoteInput) (*domain.Note, error)

	// UpdateNote applies changes to one of the caller's notes
	UpdateNote(ctx context.Context, ownerID, noteID string, updates NoteUpdate) (*domain.Note, error)

	// DeleteNote deletes one of the caller's notes
	DeleteNote(ctx context.Context, ownerID, noteID string) error
}

// NoteInput holds the client-supplied fields of a new note.
type NoteInput struct {
	Title string
	Body  string
	Tags  []string
}

// NoteUpdate holds the fields to change; nil means unchanged.
type NoteUpdate struct {
	Title *string
	Body  *string
	Tags  []string
}
