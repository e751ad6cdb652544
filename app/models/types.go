package models

import "time"

// Status is the publication state of a post.
type Status string

const (
	StatusDraft     Status = "DF"
	StatusPublished Status = "PB"
)

// DefaultThumbnail is used for posts created without a thumbnail.
const DefaultThumbnail = "static/images/post_default_thumbnail.png"

// Label returns the human readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPublished:
		return "Published"
	default:
		return string(s)
	}
}

// Post represents a blog post.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title" validate:"required,max=250"`
	Slug      string    `json:"slug" validate:"required,max=250,slug"`
	Author    string    `json:"author" validate:"required,max=150"`
	Body      string    `json:"body" validate:"required"`
	Thumbnail string    `json:"thumbnail" validate:"max=255"`
	Publish   time.Time `json:"publish"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
	Status    Status    `json:"status" validate:"oneof=DF PB"`
	Tags      []Tag     `json:"tags" validate:"dive"`
}

// Tag is a free-form label shared between posts.
type Tag struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"required,max=100,slug"`
}

// Comment represents a reader comment on a blog post.
type Comment struct {
	ID      int       `json:"id"`
	PostID  int       `json:"post_id" validate:"required,gt=0"`
	Name    string    `json:"name" validate:"required,max=100"`
	Email   string    `json:"email" validate:"required,email,max=254"`
	Body    string    `json:"body" validate:"required"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	Active  bool      `json:"active"`
}
