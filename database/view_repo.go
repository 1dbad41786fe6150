package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-labs/inkwell-backend/models"
)

type ViewRepo struct {
	db *gorm.DB
}

func NewViewRepo(db *gorm.DB) *ViewRepo {
	return &ViewRepo{db}
}

// Insert records a view for (postID, viewerID) and reports whether a row was
// actually created. A second view from the same viewer is a no-op.
func (r *ViewRepo) Insert(postID, viewerID uuid.UUID) (bool, error) {
	view := models.View{PostID: postID, UserID: viewerID}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&view)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountByPostID returns the number of distinct viewers of a post
func (r *ViewRepo) CountByPostID(postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.View{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
