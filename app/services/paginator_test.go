package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginatorPageSizes(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	p := NewPaginator(items, PostsPerPage)

	require.Equal(t, 3, p.NumPages())

	var sizes []int
	for n := 1; n <= p.NumPages(); n++ {
		page, err := p.Page(n)
		require.NoError(t, err)
		sizes = append(sizes, len(page.Items))
	}
	assert.Equal(t, []int{3, 3, 1}, sizes)

	last, err := p.Page(3)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, last.Items)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)
	assert.Equal(t, 7, last.Count)
}

func TestPaginatorGetPage(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	p := NewPaginator(items, PostsPerPage)

	tests := []struct {
		name       string
		raw        string
		wantNumber int
	}{
		{name: "missing page", raw: "", wantNumber: 1},
		{name: "non-numeric page", raw: "abc", wantNumber: 1},
		{name: "fractional page", raw: "1.5", wantNumber: 1},
		{name: "second page", raw: "2", wantNumber: 2},
		{name: "padded number", raw: " 2 ", wantNumber: 2},
		{name: "beyond last page", raw: "999", wantNumber: 2},
		{name: "zero", raw: "0", wantNumber: 2},
		{name: "negative", raw: "-1", wantNumber: 2},
		{name: "overflowing number", raw: "99999999999999999999", wantNumber: 2},
		{name: "overflowing negative", raw: "-99999999999999999999", wantNumber: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := p.GetPage(tt.raw)
			require.NotNil(t, page)
			assert.Equal(t, tt.wantNumber, page.Number)
		})
	}
}

func TestPaginatorEmpty(t *testing.T) {
	p := NewPaginator([]int{}, PostsPerPage)

	assert.Equal(t, 1, p.NumPages())
	page := p.GetPage("5")
	require.NotNil(t, page)
	assert.Equal(t, 1, page.Number)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
}

func TestPaginatorPageOutOfRange(t *testing.T) {
	p := NewPaginator([]int{1}, PostsPerPage)

	_, err := p.Page(2)
	assert.ErrorIs(t, err, ErrEmptyPage)

	_, err = p.ValidateNumber("x")
	assert.ErrorIs(t, err, ErrPageNotAnInteger)

	_, err = p.ValidateNumber("99999999999999999999")
	assert.ErrorIs(t, err, ErrEmptyPage)
}
