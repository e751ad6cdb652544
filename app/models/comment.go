package models

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}

	if c.Created.IsZero() {
		return errors.New("created cannot be zero")
	}

	return nil
}

// BeforeCreate stamps a new comment and marks it active.
func (c *Comment) BeforeCreate(now time.Time) {
	now = now.UTC()
	c.Created = now
	c.Updated = now
	c.Active = true
}

// BeforeUpdate refreshes the update time, keeping it at or after creation.
func (c *Comment) BeforeUpdate(now time.Time) {
	c.Updated = now.UTC()
	if c.Updated.Before(c.Created) {
		c.Updated = c.Created
	}
}

// SetPost sets the parent post and updates the PostID
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.PostID = post.ID
	return nil
}

// IsVisible reports whether the comment may be shown publicly under post.
func (c *Comment) IsVisible(post *Post) bool {
	return c != nil && c.Active && post != nil && post.ID == c.PostID && post.IsVisible()
}

func (c *Comment) String() string {
	return fmt.Sprintf("Comment by %s on post %d", c.Name, c.PostID)
}
