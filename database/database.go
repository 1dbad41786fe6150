package database

import (
	"gorm.io/gorm"

	"github.com/inkwell-labs/inkwell-backend/models"
)

type Database struct {
	userRepo      *UserRepo
	authorRepo    *AuthorRepo
	categoryRepo  *CategoryRepo
	blogPostRepo  *BlogPostRepo
	commentRepo   *CommentRepo
	likeRepo      *LikeRepo
	viewRepo      *ViewRepo
	savedPostRepo *SavedPostRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:      NewUserRepo(db),
		authorRepo:    NewAuthorRepo(db),
		categoryRepo:  NewCategoryRepo(db),
		blogPostRepo:  NewBlogPostRepo(db),
		commentRepo:   NewCommentRepo(db),
		likeRepo:      NewLikeRepo(db),
		viewRepo:      NewViewRepo(db),
		savedPostRepo: NewSavedPostRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) AuthorRepo() *AuthorRepo {
	return d.authorRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

func (d Database) ViewRepo() *ViewRepo {
	return d.viewRepo
}

func (d Database) SavedPostRepo() *SavedPostRepo {
	return d.savedPostRepo
}

// Migrate creates or updates the schema for every entity. The composite
// unique indexes on likes, views and saved posts are what make the toggle
// operations safe under concurrency.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Author{},
		&models.Category{},
		&models.BlogPost{},
		&models.Comment{},
		&models.Like{},
		&models.View{},
		&models.SavedPost{},
	)
}
