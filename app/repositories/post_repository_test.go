package repositories

import (
	"testing"
	"time"

	"pressroom/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func newTestPost(title string, publish time.Time, tags ...string) *models.Post {
	post := &models.Post{
		Title:   title,
		Author:  "admin",
		Body:    "Body of " + title,
		Publish: publish,
		Status:  models.StatusPublished,
	}
	for _, name := range tags {
		post.Tags = append(post.Tags, models.NewTag(name))
	}
	post.BeforeCreate(publish)
	return post
}

func TestPostRepository(t *testing.T) {
	store := newTestStore(t)
	repo := store.Posts
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("create and get post", func(t *testing.T) {
		post := newTestPost("First Post", day, "Go", "Badger")

		err := repo.Create(post)
		require.NoError(t, err)
		assert.Greater(t, post.ID, 0)

		retrieved, err := repo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Title, retrieved.Title)
		assert.Equal(t, post.Body, retrieved.Body)
		assert.Equal(t, []string{"go", "badger"}, retrieved.TagSlugs())
	})

	t.Run("get by slug and date", func(t *testing.T) {
		retrieved, err := repo.GetBySlug(day.Add(10*time.Hour), "first-post")
		require.NoError(t, err)
		assert.Equal(t, "First Post", retrieved.Title)

		_, err = repo.GetBySlug(day.AddDate(0, 0, 1), "first-post")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("slug is unique per publish date", func(t *testing.T) {
		err := repo.Create(newTestPost("First Post", day.Add(time.Hour)))
		assert.ErrorIs(t, err, ErrDuplicateSlug)

		err = repo.Create(newTestPost("First Post", day.AddDate(0, 0, 1)))
		assert.NoError(t, err)
	})

	t.Run("list by tag uses the tag index", func(t *testing.T) {
		other := newTestPost("Second Post", day, "Go")
		require.NoError(t, repo.Create(other))

		posts, err := repo.ListByTag("go")
		require.NoError(t, err)
		assert.Len(t, posts, 2)

		posts, err = repo.ListByTag("badger")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "First Post", posts[0].Title)

		posts, err = repo.ListByTag("missing")
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("tags are registered", func(t *testing.T) {
		tag, err := repo.GetTag("badger")
		require.NoError(t, err)
		assert.Equal(t, "Badger", tag.Name)

		_, err = repo.GetTag("nope")
		assert.ErrorIs(t, err, ErrNotFound)

		tags, err := repo.ListTags()
		require.NoError(t, err)
		assert.Len(t, tags, 2)
	})

	t.Run("update moves indexes", func(t *testing.T) {
		post := newTestPost("Movable", day, "Old")
		require.NoError(t, repo.Create(post))

		post.Slug = "moved"
		post.Publish = day.AddDate(0, 1, 0)
		post.SetTags([]models.Tag{models.NewTag("New")})
		require.NoError(t, repo.Update(post))

		_, err := repo.GetBySlug(day, "movable")
		assert.ErrorIs(t, err, ErrNotFound)

		moved, err := repo.GetBySlug(day.AddDate(0, 1, 0), "moved")
		require.NoError(t, err)
		assert.Equal(t, post.ID, moved.ID)

		posts, err := repo.ListByTag("old")
		require.NoError(t, err)
		assert.Empty(t, posts)

		posts, err = repo.ListByTag("new")
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})

	t.Run("update keeping its own slug", func(t *testing.T) {
		post, err := repo.GetBySlug(day, "first-post")
		require.NoError(t, err)
		post.Title = "First Post, Edited"
		require.NoError(t, repo.Update(post))
	})

	t.Run("update onto a taken slug", func(t *testing.T) {
		post, err := repo.GetBySlug(day, "second-post")
		require.NoError(t, err)
		post.Slug = "first-post"
		assert.ErrorIs(t, repo.Update(post), ErrDuplicateSlug)
	})

	t.Run("update non-existent post", func(t *testing.T) {
		post := newTestPost("Ghost", day)
		post.ID = 999
		assert.ErrorIs(t, repo.Update(post), ErrNotFound)
	})

	t.Run("list returns every status", func(t *testing.T) {
		draft := newTestPost("Draft", day)
		draft.Status = models.StatusDraft
		require.NoError(t, repo.Create(draft))

		posts, err := repo.List()
		require.NoError(t, err)
		assert.Len(t, posts, 5)
	})

	t.Run("delete post", func(t *testing.T) {
		post := newTestPost("Doomed", day, "Go")
		require.NoError(t, repo.Create(post))

		require.NoError(t, repo.Delete(post.ID))

		_, err := repo.GetByID(post.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = repo.GetBySlug(day, "doomed")
		assert.ErrorIs(t, err, ErrNotFound)

		posts, err := repo.ListByTag("go")
		require.NoError(t, err)
		for _, p := range posts {
			assert.NotEqual(t, post.ID, p.ID)
		}

		// Shared tags outlive the posts that used them.
		_, err = repo.GetTag("go")
		assert.NoError(t, err)

		assert.ErrorIs(t, repo.Delete(post.ID), ErrNotFound)
	})
}

func TestPostDeleteCascadesComments(t *testing.T) {
	store := newTestStore(t)
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	post := newTestPost("Parent", day)
	require.NoError(t, store.Posts.Create(post))
	sibling := newTestPost("Sibling", day)
	require.NoError(t, store.Posts.Create(sibling))

	var ids []int
	for i := 0; i < 3; i++ {
		comment := newTestComment(post.ID, day)
		require.NoError(t, store.Comments.Create(comment))
		ids = append(ids, comment.ID)
	}
	kept := newTestComment(sibling.ID, day)
	require.NoError(t, store.Comments.Create(kept))

	require.NoError(t, store.Posts.Delete(post.ID))

	for _, id := range ids {
		_, err := store.Comments.GetByID(id)
		assert.ErrorIs(t, err, ErrNotFound)
	}
	remaining, err := store.Comments.List()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	for _, c := range remaining {
		_, err := store.Posts.GetByID(c.PostID)
		assert.NoError(t, err, "comment %d references a missing post", c.ID)
	}
}
