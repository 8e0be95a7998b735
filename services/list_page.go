package services

import (
	"context"
	"daassist-web/models"
)

// Page sizes of the list screens
const (
	DefaultPageLimit    = 20
	TechnicianPageLimit = 50
	lookupClientsLimit  = 1000
	formClientsLimit    = 100
	relatedListLimit    = 100
	openTicketsLimit    = 50
)

// ListQuery is what a list screen sends: page, free-text search and the
// structured filters
type ListQuery[F any] struct {
	Page    int
	Search  string
	Filters F
}

// FetchFunc loads one page of results and the total count
type FetchFunc[F, R any] func(ctx context.Context, page, limit int, search string, filters F) ([]R, int, error)

// ListPage is the state of a paginated list: page, fixed limit, search,
// filters and the last loaded page
type ListPage[F, R any] struct {
	Page    int
	Limit   int
	Search  string
	Filters F
	Items   []R
	Total   int

	fetch FetchFunc[F, R]
}

// NewListPage starts at page 1 with empty search
func NewListPage[F, R any](limit int, filters F, fetch FetchFunc[F, R]) *ListPage[F, R] {
	return &ListPage[F, R]{Page: 1, Limit: limit, Filters: filters, fetch: fetch}
}

// Submit applies a search and goes back to the first page
func (p *ListPage[F, R]) Submit(search string) {
	p.Search = search
	p.Page = 1
}

// SetFilters replaces the filters and goes back to the first page
func (p *ListPage[F, R]) SetFilters(filters F) {
	p.Filters = filters
	p.Page = 1
}

func (p *ListPage[F, R]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	p.Page = page
}

// Load fetches the current page with one request
func (p *ListPage[F, R]) Load(ctx context.Context) error {
	items, total, err := p.fetch(ctx, p.Page, p.Limit, p.Search, p.Filters)
	if err != nil {
		return err
	}
	p.Items = items
	p.Total = total
	return nil
}

func (p *ListPage[F, R]) Pagination() models.Pagination {
	return models.NewPagination(p.Page, p.Limit, p.Total)
}

// loadQuery applies a stateless query (filters, then search, then page) and loads it
func loadQuery[F, R any](ctx context.Context, limit int, q ListQuery[F], fetch FetchFunc[F, R]) (*ListPage[F, R], error) {
	var zero F
	page := NewListPage(limit, zero, fetch)
	page.SetFilters(q.Filters)
	page.Submit(q.Search)
	page.SetPage(q.Page)
	if err := page.Load(ctx); err != nil {
		return nil, err
	}
	return page, nil
}
