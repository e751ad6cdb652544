package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// PublishDateLayout is the calendar-day format posts are addressed by.
const PublishDateLayout = "2006-01-02"

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}

	if p.Created.IsZero() {
		return errors.New("created cannot be zero")
	}
	if p.Updated.Before(p.Created) {
		return errors.New("updated cannot be before created")
	}

	return nil
}

// BeforeCreate fills the defaults a new post needs. now becomes both the
// creation and the update time; publish defaults to it as well.
func (p *Post) BeforeCreate(now time.Time) {
	now = now.UTC()
	p.Created = now
	p.Updated = now
	if p.Publish.IsZero() {
		p.Publish = now
	}
	p.Publish = p.Publish.UTC()
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.Thumbnail == "" {
		p.Thumbnail = DefaultThumbnail
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	p.SetTags(p.Tags)
}

// BeforeUpdate refreshes the update time while keeping the creation time
// from the stored version of the post.
func (p *Post) BeforeUpdate(existing *Post, now time.Time) {
	p.Created = existing.Created
	p.Updated = now.UTC()
	if p.Updated.Before(p.Created) {
		p.Updated = p.Created
	}
	if p.Publish.IsZero() {
		p.Publish = existing.Publish
	}
	p.Publish = p.Publish.UTC()
	if p.Status == "" {
		p.Status = existing.Status
	}
	if p.Thumbnail == "" {
		p.Thumbnail = DefaultThumbnail
	}
	p.SetTags(p.Tags)
}

// IsVisible reports whether the post may be shown to the public.
func (p *Post) IsVisible() bool {
	return p != nil && p.Status == StatusPublished
}

// PublishDate returns the UTC calendar day the post is addressed by.
func (p *Post) PublishDate() string {
	return p.Publish.UTC().Format(PublishDateLayout)
}

// AbsoluteURL returns the path of the public detail endpoint for this post.
func (p *Post) AbsoluteURL() string {
	pub := p.Publish.UTC()
	return fmt.Sprintf("/api/posts/%d/%d/%d/%s", pub.Year(), int(pub.Month()), pub.Day(), p.Slug)
}

// SetTags replaces the post's tags, dropping blanks and duplicate slugs.
func (p *Post) SetTags(tags []Tag) {
	seen := make(map[string]bool, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		tag.Name = strings.TrimSpace(tag.Name)
		if tag.Slug == "" {
			tag.Slug = Slugify(tag.Name)
		}
		if tag.Name == "" || tag.Slug == "" || seen[tag.Slug] {
			continue
		}
		seen[tag.Slug] = true
		out = append(out, tag)
	}
	p.Tags = out
}

// TagSlugs returns the slugs of the post's tags.
func (p *Post) TagSlugs() []string {
	slugs := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		slugs = append(slugs, tag.Slug)
	}
	return slugs
}

// HasTag reports whether the post carries the tag with the given slug.
func (p *Post) HasTag(slug string) bool {
	for _, tag := range p.Tags {
		if tag.Slug == slug {
			return true
		}
	}
	return false
}

func (p *Post) String() string {
	return p.Title
}
