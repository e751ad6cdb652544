package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"pressroom/app/models"
	"pressroom/app/repositories"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// SimilarPostsLimit is the number of recommendations on a post detail.
	SimilarPostsLimit = 4
	// MostCommentedDefault is used when no positive count is requested.
	MostCommentedDefault = 5
	// DefaultSearchCacheSize bounds the number of cached search results.
	DefaultSearchCacheSize = 128
)

// PostList is one page of public posts, optionally restricted to a tag.
type PostList struct {
	Page *Page[*models.Post] `json:"page"`
	Tag  *models.Tag         `json:"tag,omitempty"`
}

// PostDetail bundles a visible post with its public comments and
// recommendations.
type PostDetail struct {
	Post         *models.Post      `json:"post"`
	Comments     []*models.Comment `json:"comments"`
	SimilarPosts []*models.Post    `json:"similar_posts"`
}

// CommentedPost is a post with the number of its active comments.
type CommentedPost struct {
	Post     *models.Post `json:"post"`
	Comments int          `json:"comments"`
}

// SitemapEntry describes one public post in the sitemap.
type SitemapEntry struct {
	Location   string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

// PostService serves the public read side of the blog and the admin
// post management.
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	cache       *lru.Cache[string, []SearchResult]
	logger      *slog.Logger
	now         func() time.Time
}

// PostServiceOption configures a PostService.
type PostServiceOption func(*PostService)

// WithClock overrides the time source used to stamp mutations.
func WithClock(now func() time.Time) PostServiceOption {
	return func(s *PostService) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) PostServiceOption {
	return func(s *PostService) { s.logger = logger }
}

// WithSearchCacheSize sets the capacity of the search result cache.
func WithSearchCacheSize(size int) PostServiceOption {
	return func(s *PostService) {
		if size <= 0 {
			size = DefaultSearchCacheSize
		}
		cache, err := lru.New[string, []SearchResult](size)
		if err == nil {
			s.cache = cache
		}
	}
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, opts ...PostServiceOption) *PostService {
	s := &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		WithSearchCacheSize(DefaultSearchCacheSize)(s)
	}
	return s
}

// publishedPosts returns the visible posts, newest first.
func (s *PostService) publishedPosts() ([]*models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	posts = visiblePosts(posts)
	sortNewestFirst(posts)
	return posts, nil
}

// ListPosts returns the requested page of visible posts. When tagSlug is set
// only posts carrying that tag are listed; an unknown tag is ErrNotFound.
// The page number never causes an error.
func (s *PostService) ListPosts(rawPage, tagSlug string) (*PostList, error) {
	var (
		posts []*models.Post
		tag   *models.Tag
		err   error
	)

	if tagSlug != "" {
		tag, err = s.postRepo.GetTag(tagSlug)
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", tagSlug, err)
		}
		posts, err = s.postRepo.ListByTag(tag.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to list posts by tag: %w", err)
		}
		posts = visiblePosts(posts)
		sortNewestFirst(posts)
	} else {
		posts, err = s.publishedPosts()
		if err != nil {
			return nil, err
		}
	}

	return &PostList{
		Page: NewPaginator(posts, PostsPerPage).GetPage(rawPage),
		Tag:  tag,
	}, nil
}

// GetPublishedPost returns the visible post published on the given UTC day
// under slug. Impossible dates and drafts are ErrNotFound.
func (s *PostService) GetPublishedPost(year, month, day int, slug string) (*models.Post, error) {
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return nil, fmt.Errorf("no such date %04d-%02d-%02d: %w", year, month, day, repositories.ErrNotFound)
	}

	post, err := s.postRepo.GetBySlug(date, slug)
	if err != nil {
		return nil, err
	}
	if !post.IsVisible() {
		return nil, fmt.Errorf("post %d is not published: %w", post.ID, repositories.ErrNotFound)
	}
	return post, nil
}

// GetPostDetail returns a visible post with its active comments, oldest
// first, and its similar posts.
func (s *PostService) GetPostDetail(year, month, day int, slug string) (*PostDetail, error) {
	post, err := s.GetPublishedPost(year, month, day, slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	comments = visibleComments(post, comments)
	repositories.SortComments(comments)

	similar, err := s.SimilarPosts(post)
	if err != nil {
		return nil, err
	}

	return &PostDetail{Post: post, Comments: comments, SimilarPosts: similar}, nil
}

// SimilarPosts ranks the other visible posts by the number of tags they share
// with post, then by publish date, and returns the best SimilarPostsLimit.
// Posts sharing no tag are never returned.
func (s *PostService) SimilarPosts(post *models.Post) ([]*models.Post, error) {
	similar := make([]*models.Post, 0, SimilarPostsLimit)
	if len(post.Tags) == 0 {
		return similar, nil
	}

	shared := make(map[int]int)
	candidates := make(map[int]*models.Post)
	for _, slug := range post.TagSlugs() {
		tagged, err := s.postRepo.ListByTag(slug)
		if err != nil {
			return nil, fmt.Errorf("failed to list posts by tag %q: %w", slug, err)
		}
		for _, other := range visiblePosts(tagged) {
			if other.ID == post.ID {
				continue
			}
			shared[other.ID]++
			candidates[other.ID] = other
		}
	}

	for _, other := range candidates {
		similar = append(similar, other)
	}
	sort.SliceStable(similar, func(i, j int) bool {
		a, b := similar[i], similar[j]
		if shared[a.ID] != shared[b.ID] {
			return shared[a.ID] > shared[b.ID]
		}
		return newerFirst(a, b)
	})
	if len(similar) > SimilarPostsLimit {
		similar = similar[:SimilarPostsLimit]
	}
	return similar, nil
}

// Search ranks visible posts against query. A query without any searchable
// term yields an empty result.
func (s *PostService) Search(query string) ([]SearchResult, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return []SearchResult{}, nil
	}

	key := strings.Join(terms, " ")
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	posts, err := s.publishedPosts()
	if err != nil {
		return nil, err
	}
	results := rankPosts(posts, terms)
	s.cache.Add(key, results)
	s.logger.Debug("search", "terms", key, "results", len(results))
	return results, nil
}

// PurgeSearchCache drops every cached search result.
func (s *PostService) PurgeSearchCache() {
	s.cache.Purge()
}

// TotalPosts returns the number of visible posts.
func (s *PostService) TotalPosts() (int, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return len(visiblePosts(posts)), nil
}

// MostCommented returns up to n visible posts ordered by the number of their
// active comments. Posts without comments are included after commented ones.
func (s *PostService) MostCommented(n int) ([]CommentedPost, error) {
	if n <= 0 {
		n = MostCommentedDefault
	}
	posts, err := s.publishedPosts()
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	counts := make(map[int]int)
	for _, comment := range comments {
		if comment.Active {
			counts[comment.PostID]++
		}
	}

	ranked := make([]CommentedPost, 0, len(posts))
	for _, post := range posts {
		ranked = append(ranked, CommentedPost{Post: post, Comments: counts[post.ID]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Comments > ranked[j].Comments
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// SitemapEntries lists every visible post for the sitemap.
func (s *PostService) SitemapEntries() ([]SitemapEntry, error) {
	posts, err := s.publishedPosts()
	if err != nil {
		return nil, err
	}
	entries := make([]SitemapEntry, 0, len(posts))
	for _, post := range posts {
		entries = append(entries, SitemapEntry{
			Location:   post.AbsoluteURL(),
			LastMod:    post.Updated,
			ChangeFreq: "weekly",
			Priority:   0.9,
		})
	}
	return entries, nil
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}

func newerFirst(a, b *models.Post) bool {
	if !a.Publish.Equal(b.Publish) {
		return a.Publish.After(b.Publish)
	}
	return a.ID > b.ID
}

func sortNewestFirst(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return newerFirst(posts[i], posts[j])
	})
}
