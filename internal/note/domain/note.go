package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	authdomain "notespace-backend/internal/auth/domain"
	"notespace-backend/pkg/apperr"
)

const MaxTitleLength = 200

var ErrNoteNotFound = fmt.Errorf("note %w", apperr.ErrNotFound)

// Note is a piece of text owned by exactly one user. OwnerID is assigned
// from the authenticated caller and never from request input.
type Note struct {
	ID        string           `json:"id" gorm:"primaryKey"`
	OwnerID   string           `json:"owner" gorm:"index;not null"`
	Owner     *authdomain.User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Title     string           `json:"title" gorm:"size:200;not null"`
	Body      string           `json:"body"`
	Tags      []string         `json:"tags" gorm:"serializer:json"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Validate checks the fields a client controls.
func (n *Note) Validate() error {
	title := strings.TrimSpace(n.Title)
	if title == "" {
		return apperr.NewValidationError("title", "this field may not be blank")
	}
	if utf8.RuneCountInString(n.Title) > MaxTitleLength {
		return apperr.NewValidationError("title", fmt.Sprintf("ensure this field has no more than %d characters", MaxTitleLength))
	}
	for _, tag := range n.Tags {
		if strings.TrimSpace(tag) == "" {
			return apperr.NewValidationError("tags", "tags may not be blank")
		}
	}
	return nil
}
