package services

import (
	"errors"
	"strconv"
	"strings"
)

// PostsPerPage is the page size of public post listings.
const PostsPerPage = 3

var (
	ErrPageNotAnInteger = errors.New("page number is not an integer")
	ErrEmptyPage        = errors.New("page number is out of range")
)

// Page is one page of a paginated result. Numbers are 1-based.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	NumPages    int  `json:"num_pages"`
	Count       int  `json:"count"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginator splits an ordered slice into fixed-size pages.
type Paginator[T any] struct {
	items   []T
	perPage int
}

// NewPaginator creates a new Paginator
func NewPaginator[T any](items []T, perPage int) *Paginator[T] {
	if perPage < 1 {
		perPage = 1
	}
	return &Paginator[T]{items: items, perPage: perPage}
}

// NumPages is the number of pages. An empty result still has one page.
func (p *Paginator[T]) NumPages() int {
	if len(p.items) == 0 {
		return 1
	}
	return (len(p.items) + p.perPage - 1) / p.perPage
}

// ValidateNumber parses a raw page number. An integer too large to represent
// is still an integer, just not a page that exists.
func (p *Paginator[T]) ValidateNumber(raw string) (int, error) {
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		return number, ErrEmptyPage
	}
	if err != nil {
		return 0, ErrPageNotAnInteger
	}
	if number < 1 || number > p.NumPages() {
		return number, ErrEmptyPage
	}
	return number, nil
}

// Page returns page number, or ErrEmptyPage when it does not exist.
func (p *Paginator[T]) Page(number int) (*Page[T], error) {
	numPages := p.NumPages()
	if number < 1 || number > numPages {
		return nil, ErrEmptyPage
	}

	start := (number - 1) * p.perPage
	end := start + p.perPage
	if end > len(p.items) {
		end = len(p.items)
	}
	items := make([]T, end-start)
	copy(items, p.items[start:end])

	return &Page[T]{
		Items:       items,
		Number:      number,
		NumPages:    numPages,
		Count:       len(p.items),
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}, nil
}

// GetPage never fails: a missing or non-numeric page yields the first page,
// and a number outside the valid range yields the last page.
func (p *Paginator[T]) GetPage(raw string) *Page[T] {
	number, err := p.ValidateNumber(raw)
	switch {
	case errors.Is(err, ErrPageNotAnInteger):
		number = 1
	case errors.Is(err, ErrEmptyPage):
		number = p.NumPages()
	}

	page, _ := p.Page(number)
	return page
}
