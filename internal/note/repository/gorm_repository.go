package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notespace-backend/internal/note/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormNoteRepository implements NoteRepository using GORM
type gormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GORM-based NoteRepository
func NewGormNoteRepository(db *gorm.DB) NoteRepository {
	return &gormNoteRepository{db: db}
}

func (r *gormNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	if note.Tags == nil {
		note.Tags = []string{}
	}

	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *gormNoteRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	notes := []*domain.Note{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC, created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (r *gormNoteRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	var note domain.Note
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return &note, nil
}

func (r *gormNoteRepository) Update(ctx context.Context, ownerID string, note *domain.Note) error {
	note.OwnerID = ownerID
	note.UpdatedAt = time.Now()
	if note.Tags == nil {
		note.Tags = []string{}
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Note{}).
		Where("id = ? AND owner_id = ?", note.ID, ownerID).
		Select("owner_id", "title", "body", "tags", "updated_at").
		Updates(note)
	if res.Error != nil {
		return fmt.Errorf("update note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *gormNoteRepository) Delete(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&domain.Note{})
	if res.Error != nil {
		return fmt.Errorf("delete note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}
