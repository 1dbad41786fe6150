package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-labs/inkwell-backend/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns all blog posts, newest first
func (r *BlogPostRepo) FindAll() ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.Preload("Author").Preload("Category").Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// FindByCategory returns all blog posts in a category, newest first
func (r *BlogPostRepo) FindByCategory(categoryID string) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.Preload("Author").Preload("Category").
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// FindByID returns a blog post by its ID, or nil when it does not exist
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").Preload("Category").First(&post, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug returns a blog post by its slug, or nil when it does not exist
func (r *BlogPostRepo) FindBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").Preload("Category").First(&post, "slug = ?", slug).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Exists reports whether a blog post with the given ID exists
func (r *BlogPostRepo) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// Update updates an existing blog post in the database
func (r *BlogPostRepo) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete removes a blog post and its comments
func (r *BlogPostRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.View{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BlogPost{}, "id = ?", id).Error
	})
}
