package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPost represents a published post with metadata. Like/view/comment
// counts are computed from join-table cardinality at read time, never stored
// here.
type BlogPost struct {
	ID         uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title      string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug       string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Excerpt    string                      `json:"excerpt" db:"excerpt" gorm:"type:text;not null"`
	Content    string                      `json:"content" db:"content" gorm:"type:text;not null"`
	AuthorID   uuid.UUID                   `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Author     *Author                     `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	CategoryID string                      `json:"categoryId" db:"category_id" gorm:"type:text;not null;index"`
	Category   *Category                   `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Tags       datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	Image      string                      `json:"image" db:"image" gorm:"type:text"`
	ReadTime   int                         `json:"readTime" db:"read_time" gorm:"type:integer;not null;default:0"`
	CreatedAt  time.Time                   `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time                   `json:"updatedAt" db:"updated_at"`

	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
