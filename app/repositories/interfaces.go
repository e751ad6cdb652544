package repositories

import (
	"time"

	"pressroom/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	GetBySlug(publish time.Time, slug string) (*models.Post, error)
	List() ([]*models.Post, error)
	ListByTag(tagSlug string) ([]*models.Post, error)
	GetTag(slug string) (*models.Tag, error)
	ListTags() ([]*models.Tag, error)
	Update(post *models.Post) error
	// Delete removes the post together with every comment it owns.
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	List() ([]*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id int) error
}
