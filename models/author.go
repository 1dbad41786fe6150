package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Author is the public-facing writer identity. It links one-to-one with a
// User, but the link is nullable: an author can pre-exist without an account.
type Author struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID    *uuid.UUID `json:"userId,omitempty" db:"user_id" gorm:"type:uuid;uniqueIndex"`
	Name      string     `json:"name" db:"name" gorm:"type:text;not null"`
	Bio       *string    `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	Avatar    *string    `json:"avatar,omitempty" db:"avatar" gorm:"type:text"`
	Twitter   *string    `json:"twitter,omitempty" db:"twitter" gorm:"type:text"`
	Github    *string    `json:"github,omitempty" db:"github" gorm:"type:text"`
	Website   *string    `json:"website,omitempty" db:"website" gorm:"type:text"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
