package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-labs/inkwell-backend/models"
)

type AuthorRepo struct {
	db *gorm.DB
}

func NewAuthorRepo(db *gorm.DB) *AuthorRepo {
	return &AuthorRepo{db}
}

// FindByID returns an author by ID, or nil when it does not exist
func (r *AuthorRepo) FindByID(id uuid.UUID) (*models.Author, error) {
	var author models.Author
	err := r.db.First(&author, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// FindByUserID returns the author linked to a user account, or nil when the
// user has no public author identity yet
func (r *AuthorRepo) FindByUserID(userID uuid.UUID) (*models.Author, error) {
	var author models.Author
	err := r.db.First(&author, "user_id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Add inserts a new author
func (r *AuthorRepo) Add(author *models.Author) error {
	return r.db.Create(author).Error
}

// Update updates an existing author
func (r *AuthorRepo) Update(author *models.Author) error {
	return r.db.Save(author).Error
}
