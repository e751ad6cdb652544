package services

import (
	"fmt"
	"sort"
	"strings"

	"pressroom/app/models"
)

// AdminPostsPerPage is the page size of admin listings.
const AdminPostsPerPage = 20

// AdminPostQuery filters the admin post listing. Zero values disable a filter.
type AdminPostQuery struct {
	Status models.Status
	Author string
	Year   int
	Month  int
	Day    int
	Query  string
	Page   string
}

// AdminListPosts lists posts of any status, filtered and searched the way
// models.PostAdmin describes, ordered by status then publish date.
func (s *PostService) AdminListPosts(q AdminPostQuery) (*Page[*models.Post], error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(q.Query))
	filtered := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		if q.Status != "" && post.Status != q.Status {
			continue
		}
		if q.Author != "" && !strings.EqualFold(post.Author, q.Author) {
			continue
		}
		if !inDateHierarchy(post, q.Year, q.Month, q.Day) {
			continue
		}
		if needle != "" && !containsAny(post.SearchValues(models.PostAdmin.SearchFields), needle) {
			continue
		}
		filtered = append(filtered, post)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.Status != b.Status {
			return a.Status > b.Status
		}
		return newerFirst(a, b)
	})

	return NewPaginator(filtered, AdminPostsPerPage).GetPage(q.Page), nil
}

// GetPost returns a post of any status.
func (s *PostService) GetPost(id int) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// CreatePost validates and stores a new post. A blank slug is derived from
// the title.
func (s *PostService) CreatePost(form *models.PostForm) (*models.Post, error) {
	post := form.Post()
	post.BeforeCreate(s.now())
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	s.PurgeSearchCache()
	s.logger.Info("post created", "post_id", post.ID, "slug", post.Slug, "status", post.Status)
	return post, nil
}

// UpdatePost replaces the editable fields of an existing post. Fields left
// blank keep their stored value where the model has no sensible default.
func (s *PostService) UpdatePost(id int, form *models.PostForm) (*models.Post, error) {
	existing, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	post := form.Post()
	post.ID = existing.ID
	if post.Slug == "" {
		post.Slug = existing.Slug
	}
	post.BeforeUpdate(existing, s.now())
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	s.PurgeSearchCache()
	s.logger.Info("post updated", "post_id", post.ID, "status", post.Status)
	return post, nil
}

// DeletePost removes a post and all of its comments.
func (s *PostService) DeletePost(id int) error {
	if err := s.postRepo.Delete(id); err != nil {
		return err
	}
	s.PurgeSearchCache()
	s.logger.Info("post deleted", "post_id", id)
	return nil
}

// ListTags returns every known tag.
func (s *PostService) ListTags() ([]*models.Tag, error) {
	return s.postRepo.ListTags()
}

func inDateHierarchy(post *models.Post, year, month, day int) bool {
	pub := post.Publish.UTC()
	if year != 0 && pub.Year() != year {
		return false
	}
	if month != 0 && int(pub.Month()) != month {
		return false
	}
	if day != 0 && pub.Day() != day {
		return false
	}
	return true
}

func containsAny(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
