package repository

import (
	"context"

	"notespace-backend/internal/note/domain"
)

// NoteRepository defines the interface for note data access. Every read and
// write except Create is filtered by owner; there is deliberately no lookup
// by note ID alone.
type NoteRepository interface {
	// Create inserts a note, assigning its ID and timestamps
	Create(ctx context.Context, note *domain.Note) error

	// FindByOwner returns all notes owned by ownerID, most recently updated first
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error)

	// FindByIDAndOwner returns ErrNoteNotFound if the note is missing or owned by someone else
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Note, error)

	// Update saves client-editable fields of a note owned by ownerID
	Update(ctx context.Context, ownerID string, note *domain.Note) error

	// Delete removes a note owned by ownerID
	Delete(ctx context.Context, id, ownerID string) error
}
