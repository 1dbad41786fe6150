package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-labs/inkwell-backend/models"
)

type SavedPostRepo struct {
	db *gorm.DB
}

func NewSavedPostRepo(db *gorm.DB) *SavedPostRepo {
	return &SavedPostRepo{db}
}

// Insert saves a post for a user and reports whether a row was actually
// created. Same ON CONFLICT guard as likes.
func (r *SavedPostRepo) Insert(userID, postID uuid.UUID) (bool, error) {
	saved := models.SavedPost{UserID: userID, PostID: postID}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&saved)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete unsaves a post for a user and reports whether a row was actually
// deleted.
func (r *SavedPostRepo) Delete(userID, postID uuid.UUID) (bool, error) {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.SavedPost{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the user has saved the post
func (r *SavedPostRepo) Exists(userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedPost{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

// ListByUser returns the posts a user has saved, most recently saved first
func (r *SavedPostRepo) ListByUser(userID uuid.UUID) ([]*models.BlogPost, error) {
	var saved []models.SavedPost
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error; err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(saved))
	for _, s := range saved {
		ids = append(ids, s.PostID)
	}

	var posts []*models.BlogPost
	if err := r.db.Preload("Author").Preload("Category").Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, err
	}

	// Preserve save order
	byID := make(map[uuid.UUID]*models.BlogPost, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*models.BlogPost, 0, len(posts))
	for _, s := range saved {
		if p, ok := byID[s.PostID]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
