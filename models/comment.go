package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a comment on a post. A non-nil ParentID marks it as a reply.
// Nesting is capped at two tiers (top level + replies); the cap is enforced
// at submit time, not by the schema.
type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Content   string     `json:"content" db:"content" gorm:"type:text;not null"`
	AuthorID  uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Author    *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	PostID    uuid.UUID  `json:"postId" db:"post_id" gorm:"type:uuid;not null;index"`
	ParentID  *uuid.UUID `json:"parentId,omitempty" db:"parent_id" gorm:"type:uuid;index"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`

	// Replies is populated by the tree builder, never by gorm.
	Replies []Comment `json:"replies,omitempty" gorm:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// IsReply reports whether the comment sits in the reply tier.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
