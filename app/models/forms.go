package models

import (
	"strings"
	"time"
)

// CommentForm is the public input for a new comment.
type CommentForm struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
	Body  string `json:"body" validate:"required"`
}

// Clean trims the form's fields and validates them.
func (f *CommentForm) Clean() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Body = strings.TrimSpace(f.Body)
	return validateStruct(f)
}

// ShareForm is the input for recommending a post by email.
type ShareForm struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
	To       string `json:"to" validate:"required,email,max=254"`
	Comments string `json:"comments"`
}

// Clean trims the form's fields and validates them.
func (f *ShareForm) Clean() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.To = strings.TrimSpace(f.To)
	f.Comments = strings.TrimSpace(f.Comments)
	return validateStruct(f)
}

// SearchForm carries a search query.
type SearchForm struct {
	Query string `json:"query" validate:"required"`
}

// Clean trims the query and validates it.
func (f *SearchForm) Clean() error {
	f.Query = strings.TrimSpace(f.Query)
	return validateStruct(f)
}

// PostForm is the admin input for creating or editing a post.
type PostForm struct {
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Author    string     `json:"author"`
	Body      string     `json:"body"`
	Thumbnail string     `json:"thumbnail"`
	Publish   *time.Time `json:"publish"`
	Status    Status     `json:"status"`
	Tags      []string   `json:"tags"`
}

// Post builds a post from the form. Validation happens on the post itself.
func (f *PostForm) Post() *Post {
	post := &Post{
		Title:     strings.TrimSpace(f.Title),
		Slug:      strings.TrimSpace(f.Slug),
		Author:    strings.TrimSpace(f.Author),
		Body:      f.Body,
		Thumbnail: strings.TrimSpace(f.Thumbnail),
		Status:    f.Status,
	}
	if f.Publish != nil {
		post.Publish = f.Publish.UTC()
	}
	tags := make([]Tag, 0, len(f.Tags))
	for _, name := range f.Tags {
		tags = append(tags, NewTag(name))
	}
	post.SetTags(tags)
	return post
}
