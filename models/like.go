package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like records a single like per (post, user) pair. The composite unique
// index is the source of truth for toggle idempotence; the toggle's
// find-then-act branches are advisory only.
type Like struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PostID    uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_post_user"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_post_user"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
