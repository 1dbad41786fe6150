package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// View records that a viewer has seen a post. UserID may be a synthetic
// visitor id minted for anonymous readers; either way a (post, viewer) pair
// counts at most once.
type View struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PostID    uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_view_post_user"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_view_post_user"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (v *View) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
