package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pressroom/app/mailer"
	"pressroom/app/models"
	"pressroom/app/repositories"
)

// ShareService recommends posts to third parties by email.
type ShareService struct {
	postRepo repositories.PostRepository
	mailer   mailer.Mailer
	baseURL  string
	from     string
	logger   *slog.Logger
}

// NewShareService creates a new ShareService. baseURL prefixes post paths in
// outgoing mail and from is the envelope sender.
func NewShareService(postRepo repositories.PostRepository, m mailer.Mailer, baseURL, from string, logger *slog.Logger) *ShareService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShareService{
		postRepo: postRepo,
		mailer:   m,
		baseURL:  strings.TrimRight(baseURL, "/"),
		from:     from,
		logger:   logger,
	}
}

// ShareMessage builds the recommendation mail for post.
func (s *ShareService) ShareMessage(post *models.Post, form *models.ShareForm) *mailer.Message {
	postURL := s.baseURL + post.AbsoluteURL()
	return &mailer.Message{
		From:    s.from,
		To:      []string{form.To},
		ReplyTo: form.Email,
		Subject: fmt.Sprintf("%s recommends you read %s", form.Name, post.Title),
		Body: fmt.Sprintf("Read %s at %s\n\n%s's comments: %s",
			post.Title, postURL, form.Name, form.Comments),
	}
}

// SharePost mails a recommendation of a visible post. Invalid input returns
// models.ValidationErrors and nothing is sent; a transport failure returns
// *DeliveryError. Only a nil error means the mail was sent.
func (s *ShareService) SharePost(ctx context.Context, postID int, form *models.ShareForm) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if !post.IsVisible() {
		return fmt.Errorf("post %d is not published: %w", postID, repositories.ErrNotFound)
	}
	if err := form.Clean(); err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, s.ShareMessage(post, form)); err != nil {
		s.logger.ErrorContext(ctx, "share delivery failed", "post_id", post.ID, "error", err)
		return &DeliveryError{Err: err}
	}
	s.logger.InfoContext(ctx, "post shared", "post_id", post.ID)
	return nil
}
