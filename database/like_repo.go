package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-labs/inkwell-backend/models"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Insert adds a like for (postID, userID) and reports whether a row was
// actually created. The insert is ON CONFLICT DO NOTHING against the
// composite unique index, so two racing toggles cannot both insert.
func (r *LikeRepo) Insert(postID, userID uuid.UUID) (bool, error) {
	like := models.Like{PostID: postID, UserID: userID}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the like for (postID, userID) and reports whether a row was
// actually deleted.
func (r *LikeRepo) Delete(postID, userID uuid.UUID) (bool, error) {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the user has liked the post
func (r *LikeRepo) Exists(postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}

// CountByPostID returns the number of likes on a post
func (r *LikeRepo) CountByPostID(postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
