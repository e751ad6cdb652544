package mock

import (
	"sort"
	"sync"
	"time"

	"pressroom/app/models"
	"pressroom/app/repositories"
)

type PostRepository struct {
	posts    map[int]*models.Post
	tags     map[string]*models.Tag
	nextID   int
	mutex    sync.RWMutex
	comments *CommentRepository
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
	posts    *PostRepository
}

// NewStore returns linked in-memory repositories: deleting a post removes its
// comments and comments can only be created for existing posts.
func NewStore() (*PostRepository, *CommentRepository) {
	posts := NewPostRepository()
	comments := NewCommentRepository()
	posts.comments = comments
	comments.posts = posts
	return posts, comments
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		tags:   make(map[string]*models.Tag),
		nextID: 1,
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[int]*models.Post)
	m.tags = make(map[string]*models.Tag)
	m.nextID = 1
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

// PostRepository implementation
func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.slugTaken(post, 0) {
		return repositories.ErrDuplicateSlug
	}
	post.ID = m.nextID
	m.nextID++
	m.store(post)
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return clonePost(post), nil
}

func (m *PostRepository) GetBySlug(publish time.Time, slug string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	day := publish.UTC().Format(models.PublishDateLayout)
	for _, post := range m.posts {
		if post.Slug == slug && post.PublishDate() == day {
			return clonePost(post), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.collect(func(*models.Post) bool { return true }), nil
}

func (m *PostRepository) ListByTag(tagSlug string) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.collect(func(p *models.Post) bool { return p.HasTag(tagSlug) }), nil
}

func (m *PostRepository) GetTag(slug string) (*models.Tag, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	tag, exists := m.tags[slug]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *tag
	return &copied, nil
}

func (m *PostRepository) ListTags() ([]*models.Tag, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	tags := make([]*models.Tag, 0, len(m.tags))
	for _, tag := range m.tags {
		copied := *tag
		tags = append(tags, &copied)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Slug < tags[j].Slug })
	return tags, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	if m.slugTaken(post, post.ID) {
		return repositories.ErrDuplicateSlug
	}
	m.store(post)
	return nil
}

func (m *PostRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	if m.comments != nil {
		m.comments.deleteByPost(id)
	}
	return nil
}

func (m *PostRepository) exists(id int) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.posts[id]
	return ok
}

func (m *PostRepository) slugTaken(post *models.Post, owner int) bool {
	for id, other := range m.posts {
		if id != owner && other.Slug == post.Slug && other.PublishDate() == post.PublishDate() {
			return true
		}
	}
	return false
}

func (m *PostRepository) store(post *models.Post) {
	for _, tag := range post.Tags {
		if _, ok := m.tags[tag.Slug]; !ok {
			copied := tag
			m.tags[tag.Slug] = &copied
		}
	}
	m.posts[post.ID] = clonePost(post)
}

func (m *PostRepository) collect(keep func(*models.Post) bool) []*models.Post {
	var posts []*models.Post
	for _, post := range m.posts {
		if keep(post) {
			posts = append(posts, clonePost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts
}

func clonePost(post *models.Post) *models.Post {
	copied := *post
	copied.Tags = append([]models.Tag(nil), post.Tags...)
	return &copied
}

// CommentRepository implementation
func (m *CommentRepository) Create(comment *models.Comment) error {
	if m.posts != nil && !m.posts.exists(comment.PostID) {
		return repositories.ErrNotFound
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	copied := *comment
	m.comments[comment.ID] = &copied
	return nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (m *CommentRepository) Update(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.comments[comment.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	comment.PostID = existing.PostID
	copied := *comment
	m.comments[comment.ID] = &copied
	return nil
}

func (m *CommentRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	repositories.SortComments(comments)
	return comments, nil
}

func (m *CommentRepository) List() ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := make([]*models.Comment, 0, len(m.comments))
	for _, comment := range m.comments {
		copied := *comment
		comments = append(comments, &copied)
	}
	repositories.SortComments(comments)
	return comments, nil
}

// Count returns the number of stored comments.
func (m *CommentRepository) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.comments)
}

func (m *CommentRepository) deleteByPost(postID int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
}
