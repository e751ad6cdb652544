package services

import (
	"testing"
	"time"

	"pressroom/app/models"
	"pressroom/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	f := newFixture(t)

	post, err := f.service.CreatePost(&models.PostForm{
		Title:  "Crème Brûlée Recipes",
		Author: "chef",
		Body:   "Sugar.",
		Tags:   []string{"Food", "food", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, "creme-brulee-recipes", post.Slug)
	assert.Equal(t, models.StatusDraft, post.Status)
	assert.Equal(t, models.DefaultThumbnail, post.Thumbnail)
	assert.Equal(t, baseTime, post.Created)
	assert.Equal(t, baseTime, post.Publish)
	assert.Equal(t, []string{"food"}, post.TagSlugs())

	_, err = f.service.CreatePost(&models.PostForm{Title: "Crème Brûlée Recipes", Author: "chef", Body: "Again."})
	assert.ErrorIs(t, err, repositories.ErrDuplicateSlug)

	_, err = f.service.CreatePost(&models.PostForm{Title: "No body", Author: "chef"})
	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("body"))
}

func TestUpdatePost(t *testing.T) {
	f := newFixture(t)
	post := f.addPost(t, "Original", models.StatusDraft, baseTime.Add(-time.Hour))

	f.service.now = func() time.Time { return baseTime.Add(time.Hour) }
	updated, err := f.service.UpdatePost(post.ID, &models.PostForm{
		Title:  "Renamed",
		Author: "admin",
		Body:   "New body",
		Status: models.StatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Slug)
	assert.Equal(t, post.Created, updated.Created)
	assert.Equal(t, post.Publish, updated.Publish)
	assert.True(t, updated.Updated.After(updated.Created))
	assert.True(t, updated.IsVisible())

	stored, err := f.service.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)

	_, err = f.service.UpdatePost(999, &models.PostForm{Title: "x", Author: "a", Body: "b"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeletePostCascadesComments(t *testing.T) {
	f := newFixture(t)
	post := f.addPost(t, "Doomed", models.StatusPublished, baseTime)
	keep := f.addPost(t, "Kept", models.StatusPublished, baseTime)
	f.addComment(t, post, "one", true, baseTime)
	f.addComment(t, post, "two", false, baseTime)
	kept := f.addComment(t, keep, "three", true, baseTime)

	require.NoError(t, f.service.DeletePost(post.ID))

	_, err := f.service.GetPost(post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	remaining, err := f.comments.List()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	assert.ErrorIs(t, f.service.DeletePost(post.ID), repositories.ErrNotFound)
}

func TestAdminListPosts(t *testing.T) {
	f := newFixture(t)
	draft := f.addPost(t, "Draft about Go", models.StatusDraft, baseTime)
	oldPub := f.addPost(t, "Old news", models.StatusPublished, baseTime.AddDate(-1, 0, 0))
	newPub := f.addPost(t, "Fresh Go news", models.StatusPublished, baseTime)

	tests := []struct {
		name  string
		query AdminPostQuery
		want  []int
	}{
		{name: "default ordering", query: AdminPostQuery{}, want: []int{newPub.ID, oldPub.ID, draft.ID}},
		{name: "status filter", query: AdminPostQuery{Status: models.StatusDraft}, want: []int{draft.ID}},
		{name: "year filter", query: AdminPostQuery{Year: 2023}, want: []int{oldPub.ID}},
		{name: "day filter", query: AdminPostQuery{Year: 2024, Month: 3, Day: 10}, want: []int{newPub.ID, draft.ID}},
		{name: "search", query: AdminPostQuery{Query: "GO"}, want: []int{newPub.ID, draft.ID}},
		{name: "author", query: AdminPostQuery{Author: "nobody"}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.service.AdminListPosts(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, postIDs(page.Items))
		})
	}
}
