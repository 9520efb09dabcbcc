package usecase

import (
	"context"

	"notespace-backend/internal/note/domain"
	"notespace-backend/internal/note/repository"

	"go.uber.org/zap"
)

// noteUsecase implements NoteUsecase interface
type noteUsecase struct {
	noteRepo repository.NoteRepository
	log      *zap.Logger
}

// NewNoteUsecase creates a new instance of noteUsecase
func NewNoteUsecase(noteRepo repository.NoteRepository, log *zap.Logger) NoteUsecase {
	return &noteUsecase{
		noteRepo: noteRepo,
		log:      log,
	}
}

func (u *noteUsecase) ListNotes(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	return u.noteRepo.FindByOwner(ctx, ownerID)
}

func (u *noteUsecase) GetNote(ctx context.Context, ownerID, noteID string) (*domain.Note, error) {
	return u.noteRepo.FindByIDAndOwner(ctx, noteID, ownerID)
}

func (u *noteUsecase) CreateNote(ctx context.Context, ownerID string, input NoteInput) (*domain.Note, error) {
	note := &domain.Note{
		OwnerID: ownerID,
		Title:   input.Title,
		Body:    input.Body,
		Tags:    input.Tags,
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}

	u.log.Info("creating note", zap.String("user_id", ownerID))
	if err := u.noteRepo.Create(ctx, note); err != nil {
		u.log.Error("error creating note", zap.String("user_id", ownerID), zap.Error(err))
		return nil, err
	}
	return note, nil
}

func (u *noteUsecase) UpdateNote(ctx context.Context, ownerID, noteID string, updates NoteUpdate) (*domain.Note, error) {
	note, err := u.noteRepo.FindByIDAndOwner(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		note.Title = *updates.Title
	}
	if updates.Body != nil {
		note.Body = *updates.Body
	}
	if updates.Tags != nil {
		note.Tags = updates.Tags
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}

	u.log.Info("updating note", zap.String("user_id", ownerID), zap.String("note_id", noteID))
	if err := u.noteRepo.Update(ctx, ownerID, note); err != nil {
		u.log.Error("error updating note", zap.String("user_id", ownerID), zap.String("note_id", noteID), zap.Error(err))
		return nil, err
	}
	return note, nil
}

func (u *noteUsecase) DeleteNote(ctx context.Context, ownerID, noteID string) error {
	return u.noteRepo.Delete(ctx, noteID, ownerID)
}
