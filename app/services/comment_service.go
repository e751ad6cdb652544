package services

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"sort"
	"strings"
	"time"

	"pressroom/app/models"
	"pressroom/app/repositories"

	"github.com/microcosm-cc/bluemonday"
)

// AdminCommentQuery filters the admin comment listing.
type AdminCommentQuery struct {
	Active *bool
	PostID int
	Query  string
	Page   string
}

// CommentService accepts reader comments and lets admins moderate them.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	policy      *bluemonday.Policy
	logger      *slog.Logger
	now         func() time.Time
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, logger *slog.Logger) *CommentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		policy:      bluemonday.StrictPolicy(),
		logger:      logger,
		now:         time.Now,
	}
}

// sanitize strips every HTML tag from s and returns plain text.
func (s *CommentService) sanitize(text string) string {
	return html.UnescapeString(s.policy.Sanitize(text))
}

// SubmitComment creates an active comment on a visible post. HTML is stripped
// from the body; the name is stored as typed. Invalid input returns
// models.ValidationErrors and nothing is written.
func (s *CommentService) SubmitComment(postID int, form *models.CommentForm) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !post.IsVisible() {
		return nil, fmt.Errorf("post %d is not published: %w", postID, repositories.ErrNotFound)
	}

	raw := form.Body
	form.Body = s.sanitize(raw)
	markupOnly := strings.TrimSpace(raw) != "" && strings.TrimSpace(form.Body) == ""
	if err := form.Clean(); err != nil {
		var errs models.ValidationErrors
		if markupOnly && errors.As(err, &errs) {
			errs["body"] = []string{"Write some text; HTML markup is removed from comments."}
		}
		return nil, err
	}

	comment := &models.Comment{
		Name:  form.Name,
		Email: form.Email,
		Body:  form.Body,
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	comment.BeforeCreate(s.now())
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("comment created", "comment_id", comment.ID, "post_id", post.ID)
	return comment, nil
}

// GetComment returns a comment regardless of its state.
func (s *CommentService) GetComment(id int) (*models.Comment, error) {
	return s.commentRepo.GetByID(id)
}

// SetActive shows or hides a comment.
func (s *CommentService) SetActive(id int, active bool) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	comment.Active = active
	comment.BeforeUpdate(s.now())
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	s.logger.Info("comment moderated", "comment_id", id, "active", active)
	return comment, nil
}

// DeleteComment removes a comment.
func (s *CommentService) DeleteComment(id int) error {
	if err := s.commentRepo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("comment deleted", "comment_id", id)
	return nil
}

// AdminListComments lists comments of any state, filtered and searched the
// way models.CommentAdmin describes, oldest first.
func (s *CommentService) AdminListComments(q AdminCommentQuery) (*Page[*models.Comment], error) {
	var (
		comments []*models.Comment
		err      error
	)
	if q.PostID > 0 {
		comments, err = s.commentRepo.ListByPost(q.PostID)
	} else {
		comments, err = s.commentRepo.List()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(q.Query))
	filtered := make([]*models.Comment, 0, len(comments))
	for _, comment := range comments {
		if q.Active != nil && comment.Active != *q.Active {
			continue
		}
		if needle != "" && !containsAny(comment.SearchValues(models.CommentAdmin.SearchFields), needle) {
			continue
		}
		filtered = append(filtered, comment)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Created.Equal(filtered[j].Created) {
			return filtered[i].ID < filtered[j].ID
		}
		return filtered[i].Created.Before(filtered[j].Created)
	})

	return NewPaginator(filtered, AdminPostsPerPage).GetPage(q.Page), nil
}
