package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedPost is the many-to-many join between users and the posts they saved.
type SavedPost struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_post"`
	PostID    uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_post"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (s *SavedPost) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
