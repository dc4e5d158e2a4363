// Package listview implements the paginated data view used by every list
// command: one contract pairing a remote page fetch with filter, search,
// sort, and pagination state, safe against stale-response overwrites.
package listview

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// SortOrder is the direction of a sorted column.
type SortOrder string

const (
	// Asc sorts ascending.
	Asc SortOrder = "asc"
	// Desc sorts descending.
	Desc SortOrder = "desc"
)

// PageSizes is the fixed set of accepted page sizes.
var PageSizes = []int{10, 20, 50, 100}

// Query is the reactive dependency set of a list view: any change to it is a
// reason to refetch.
type Query struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder SortOrder
	Filters   map[string]string
}

func (q Query) clone() Query {
	c := q
	c.Filters = maps.Clone(q.Filters)
	if c.Filters == nil {
		c.Filters = map[string]string{}
	}
	return c
}

// Page describes where the current result sits in the full result set. The
// server's count is authoritative; the client never second-guesses it.
type Page struct {
	Current      int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
}

// CanPrev reports whether a previous page exists. Controls for first/previous
// are disabled when it is false.
func (p Page) CanPrev() bool {
	return p.Current > 1
}

// CanNext reports whether a following page exists. Controls for next/last are
// disabled when it is false.
func (p Page) CanNext() bool {
	return p.Current < p.TotalPages
}

// FetchFunc retrieves one page of rows. A nil Page means the server omitted
// pagination metadata and the view falls back to a client-side count.
type FetchFunc[T any] func(ctx context.Context, q Query) ([]T, *Page, error)

// KeyFunc extracts a stable row identifier.
type KeyFunc[T any] func(T) string

// Column renders one cell from a row. Pure function of the row.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// View coordinates fetching and state for one list. Construct one per list
// command invocation; it lives until the command returns.
type View[T any] struct {
	mu      sync.Mutex
	fetch   FetchFunc[T]
	applied Query
	draft   map[string]string
	defFil  map[string]string

	primaryKey   KeyFunc[T]
	secondaryKey KeyFunc[T]

	seq     uint64
	items   []T
	page    Page
	loading bool
	lastErr error
}

// Option configures a View.
type Option[T any] func(*View[T])

// WithPageSize sets the initial page size.
func WithPageSize[T any](n int) Option[T] {
	return func(v *View[T]) { v.applied.PageSize = n }
}

// WithSort sets the initial sort.
func WithSort[T any](by string, order SortOrder) Option[T] {
	return func(v *View[T]) {
		v.applied.SortBy = by
		v.applied.SortOrder = order
	}
}

// WithDefaultFilters sets the filter values Clear resets to.
func WithDefaultFilters[T any](filters map[string]string) Option[T] {
	return func(v *View[T]) { v.defFil = maps.Clone(filters) }
}

// WithKeys sets the row identity functions: primary id first, falling back
// to a secondary identifying field. Rows are never keyed by index; identity
// must survive a refetch.
func WithKeys[T any](primary, secondary KeyFunc[T]) Option[T] {
	return func(v *View[T]) {
		v.primaryKey = primary
		v.secondaryKey = secondary
	}
}

// NewView creates a view over the given fetch.
func NewView[T any](fetch FetchFunc[T], opts ...Option[T]) *View[T] {
	v := &View[T]{
		fetch: fetch,
		applied: Query{
			Page:     1,
			PageSize: 20,
			Filters:  map[string]string{},
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.defFil == nil {
		v.defFil = map[string]string{}
	}
	maps.Copy(v.applied.Filters, v.defFil)
	v.draft = maps.Clone(v.applied.Filters)
	return v
}

// Query returns a copy of the applied query.
func (v *View[T]) Query() Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.applied.clone()
}

// SetPage moves to the given page. Page indexes are 1-based.
func (v *View[T]) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 1 {
		n = 1
	}
	v.applied.Page = n
}

// SetPageSize changes the page size and resets to page 1.
func (v *View[T]) SetPageSize(n int) error {
	valid := false
	for _, s := range PageSizes {
		if n == s {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("page size must be one of %v, got %d", PageSizes, n)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if n != v.applied.PageSize {
		v.applied.PageSize = n
		v.applied.Page = 1
	}
	return nil
}

// SetSearch changes the search term and resets to page 1. Callers debounce
// keystroke input through a Debouncer before reaching here.
func (v *View[T]) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if term != v.applied.Search {
		v.applied.Search = term
		v.applied.Page = 1
	}
}

// SetSort changes the sort column and order. Sorting does not reset the page.
func (v *View[T]) SetSort(by string, order SortOrder) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.applied.SortBy = by
	v.applied.SortOrder = order
}

// SetDraftFilter stages a filter value without applying it. Staging one
// filter never applies another.
func (v *View[T]) SetDraftFilter(key, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if value == "" {
		delete(v.draft, key)
		return
	}
	v.draft[key] = value
}

// DraftFilters returns a copy of the staged filter values.
func (v *View[T]) DraftFilters() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return maps.Clone(v.draft)
}

// ApplyFilters commits the draft as the applied filter set and resets to
// page 1.
func (v *View[T]) ApplyFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.applied.Filters = maps.Clone(v.draft)
	v.applied.Page = 1
}

// ClearFilters resets both draft and applied filters to the defaults and
// resets to page 1.
func (v *View[T]) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = maps.Clone(v.defFil)
	v.applied.Filters = maps.Clone(v.defFil)
	v.applied.Page = 1
}

// Refresh fetches the page described by the current query. Overlapping
// refreshes resolve latest-issued-wins: a response belonging to a superseded
// request is discarded without touching state, so the view always reflects
// the most recently requested query, not the most recently resolved one.
func (v *View[T]) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.seq++
	seq := v.seq
	q := v.applied.clone()
	v.loading = true
	v.mu.Unlock()

	items, page, err := v.fetch(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		// A newer request was issued while this one was in flight.
		return nil
	}
	v.loading = false
	v.lastErr = err
	if err != nil {
		return err
	}

	v.items = items
	if page != nil {
		v.page = *page
	} else {
		// Server sent no pagination block: assume it returned everything and
		// compute a count locally.
		v.page = Page{
			Current:      q.Page,
			TotalPages:   clientPageCount(len(items), q.PageSize),
			TotalItems:   len(items),
			ItemsPerPage: q.PageSize,
		}
	}
	return nil
}

func clientPageCount(items, perPage int) int {
	if perPage <= 0 || items == 0 {
		return 1
	}
	n := (items + perPage - 1) / perPage
	if n < 1 {
		n = 1
	}
	return n
}

// Items returns the current rows.
func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.items
}

// Page returns the current pagination state.
func (v *View[T]) Page() Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Loading reports whether a fetch is in flight.
func (v *View[T]) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err returns the error from the most recent completed fetch, nil after a
// success.
func (v *View[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// Key returns the stable identity of a row: the primary id when present,
// otherwise the secondary identifier.
func (v *View[T]) Key(row T) string {
	if v.primaryKey != nil {
		if k := v.primaryKey(row); k != "" {
			return k
		}
	}
	if v.secondaryKey != nil {
		return v.secondaryKey(row)
	}
	return ""
}

// Keys returns the identities of the current rows, in row order.
func (v *View[T]) Keys() []string {
	items := v.Items()
	keys := make([]string, len(items))
	for i, row := range items {
		keys[i] = v.Key(row)
	}
	return keys
}

// Rows renders the current items through the column set.
func (v *View[T]) Rows(cols []Column[T]) [][]string {
	items := v.Items()
	rows := make([][]string, len(items))
	for i, row := range items {
		cells := make([]string, len(cols))
		for j, col := range cols {
			cells[j] = col.Value(row)
		}
		rows[i] = cells
	}
	return rows
}
