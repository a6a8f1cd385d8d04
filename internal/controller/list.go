package controller

import (
	"context"
	"fmt"
	"sort"

	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/notify"
	"github.com/inovacc/shelfr/internal/store"
)

// ListStore is the slice of the record store a list controller needs.
// *store.Resource[E] satisfies it.
type ListStore[E model.Entity] interface {
	List(ctx context.Context, query string, page, size int) (store.Page[E], error)
	Patch(ctx context.Context, id string, fields map[string]any) (E, error)
	BulkDelete(ctx context.Context, ids []string) error
}

// ListController owns the paginated, searchable view of one collection
// and mediates per-row and bulk mutations. Its in-memory page is a
// disposable projection: every successful mutation is followed by a
// refresh, never by a local patch.
type ListController[E model.Entity] struct {
	store    ListStore[E]
	notifier *notify.Dispatcher
	schema   model.Schema[E]

	query      string
	page       int
	pageSize   int
	totalCount int
	rows       []E
	selected   map[string]struct{}

	// seq numbers refresh requests; only the response matching the most
	// recently issued request is applied, discarding stale in-flight
	// responses that resolve out of order.
	seq     uint64
	loading bool
	closed  bool
}

type pageLoadedMsg[E model.Entity] struct {
	seq  uint64
	page store.Page[E]
	err  error
}

type rowEditedMsg[E model.Entity] struct {
	id  string
	err error
}

type bulkDeletedMsg struct {
	count int
	err   error
}

// NewListController creates a controller over the given resource. The
// first page is not fetched until Refresh is called.
func NewListController[E model.Entity](st ListStore[E], schema model.Schema[E], notifier *notify.Dispatcher, pageSize int) *ListController[E] {
	if pageSize <= 0 {
		pageSize = 5
	}

	return &ListController[E]{
		store:    st,
		notifier: notifier,
		schema:   schema,
		pageSize: pageSize,
		selected: make(map[string]struct{}),
	}
}

// Refresh requests the current {query, page, pageSize} window. The
// returned effect resolves to a message Apply consumes.
func (c *ListController[E]) Refresh() Effect {
	c.seq++
	c.loading = true

	seq := c.seq
	st := c.store
	query, page, size := c.query, c.page, c.pageSize

	return func(ctx context.Context) any {
		result, err := st.List(ctx, query, page, size)

		return pageLoadedMsg[E]{seq: seq, page: result, err: err}
	}
}

// SetQuery updates the search term without refreshing; the refresh is an
// explicit follow-up (search submit), so typing never causes a request
// storm.
func (c *ListController[E]) SetQuery(query string) {
	c.query = query
}

// ClearQuery resets the search and pagination and refreshes.
func (c *ListController[E]) ClearQuery() Effect {
	c.query = ""
	c.page = 0

	return c.Refresh()
}

// SetPage moves the pagination window and refreshes.
func (c *ListController[E]) SetPage(page int) Effect {
	if page < 0 {
		page = 0
	}

	c.page = page

	return c.Refresh()
}

// SetPageSize changes the window size and refreshes from the first page.
func (c *ListController[E]) SetPageSize(size int) Effect {
	if size <= 0 {
		return nil
	}

	c.pageSize = size
	c.page = 0

	return c.Refresh()
}

// ToggleSelection flips the selection state of one row.
func (c *ListController[E]) ToggleSelection(id string) {
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
		return
	}

	c.selected[id] = struct{}{}
}

// SelectAllOnPage selects every row on the displayed page.
func (c *ListController[E]) SelectAllOnPage() {
	for _, row := range c.rows {
		c.selected[row.EntityID()] = struct{}{}
	}
}

// ClearSelection drops all selections.
func (c *ListController[E]) ClearSelection() {
	c.selected = make(map[string]struct{})
}

// CommitRowEdit sends a partial update for one displayed row. The row is
// not patched locally: the follow-up refresh shows the store's version,
// which is authoritative for formatting and denormalized fields. On
// failure the row therefore still shows its pre-edit value.
func (c *ListController[E]) CommitRowEdit(id string, fields map[string]any) (Effect, error) {
	if !c.onPage(id) {
		return nil, fmt.Errorf("no %s with id %q on the current page", c.schema.Singular, id)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	st := c.store

	return func(ctx context.Context) any {
		_, err := st.Patch(ctx, id, fields)

		return rowEditedMsg[E]{id: id, err: err}
	}, nil
}

// BulkDelete removes all selected rows in one batch request. The caller
// is responsible for the yes/no confirmation gate before running the
// effect. Partial failures are reported as whole-operation failures; the
// store contract is all-or-nothing.
func (c *ListController[E]) BulkDelete() (Effect, error) {
	ids := c.SelectedIDs()
	if len(ids) == 0 {
		return nil, fmt.Errorf("no %s selected", c.schema.Plural)
	}

	st := c.store

	return func(ctx context.Context) any {
		err := st.BulkDelete(ctx, ids)

		return bulkDeletedMsg{count: len(ids), err: err}
	}, nil
}

// Apply consumes a message produced by one of this controller's effects.
// It reports whether the message belonged to this controller, and may
// hand back a follow-up effect (typically a refresh after a mutation).
func (c *ListController[E]) Apply(msg any) (Effect, bool) {
	switch m := msg.(type) {
	case pageLoadedMsg[E]:
		return c.applyPageLoaded(m), true
	case rowEditedMsg[E]:
		return c.applyRowEdited(m), true
	case bulkDeletedMsg:
		return c.applyBulkDeleted(m), true
	}

	return nil, false
}

func (c *ListController[E]) applyPageLoaded(msg pageLoadedMsg[E]) Effect {
	if c.closed || msg.seq != c.seq {
		// Stale response: a newer request was issued (or the screen was
		// left) before this one resolved.
		return nil
	}

	c.loading = false

	if msg.err != nil {
		c.notifier.Error(context.Background(), c.schema.Plural,
			fmt.Sprintf("Failed to load %s", c.schema.Plural), msg.err)

		return nil
	}

	c.rows = msg.page.Items
	c.totalCount = msg.page.TotalCount
	c.pruneSelection()

	// A shrink (e.g. after a delete) can leave the window past the end of
	// the collection. Clamp to the last page with rows rather than show
	// an empty page.
	if c.page > 0 && len(c.rows) == 0 && c.totalCount > 0 {
		c.page = lastPage(c.totalCount, c.pageSize)

		return c.Refresh()
	}

	return nil
}

func (c *ListController[E]) applyRowEdited(msg rowEditedMsg[E]) Effect {
	if c.closed {
		return nil
	}

	if msg.err != nil {
		c.notifier.Error(context.Background(), c.schema.Plural,
			fmt.Sprintf("Failed to update %s", c.schema.Singular), msg.err)

		return nil
	}

	c.notifier.Info(context.Background(), c.schema.Plural, "Updated",
		fmt.Sprintf("The %s has been updated successfully.", c.schema.Singular))

	return c.Refresh()
}

func (c *ListController[E]) applyBulkDeleted(msg bulkDeletedMsg) Effect {
	if c.closed {
		return nil
	}

	if msg.err != nil {
		c.notifier.Error(context.Background(), c.schema.Plural,
			fmt.Sprintf("Failed to delete %s", c.schema.Plural), msg.err)

		return nil
	}

	c.ClearSelection()
	c.notifier.Info(context.Background(), c.schema.Plural, "Deleted",
		fmt.Sprintf("%d %s(s) deleted successfully.", msg.count, c.schema.Singular))

	return c.Refresh()
}

// Close discards any in-flight responses; nothing is applied to a closed
// controller.
func (c *ListController[E]) Close() {
	c.closed = true
}

func (c *ListController[E]) pruneSelection() {
	onPage := make(map[string]struct{}, len(c.rows))
	for _, row := range c.rows {
		onPage[row.EntityID()] = struct{}{}
	}

	for id := range c.selected {
		if _, ok := onPage[id]; !ok {
			delete(c.selected, id)
		}
	}
}

func (c *ListController[E]) onPage(id string) bool {
	for _, row := range c.rows {
		if row.EntityID() == id {
			return true
		}
	}

	return false
}

// Rows returns the displayed page.
func (c *ListController[E]) Rows() []E { return c.rows }

// Row returns the displayed row with the given id.
func (c *ListController[E]) Row(id string) (E, bool) {
	for _, row := range c.rows {
		if row.EntityID() == id {
			return row, true
		}
	}

	var zero E

	return zero, false
}

// Query returns the current search term.
func (c *ListController[E]) Query() string { return c.query }

// Page returns the zero-based page index.
func (c *ListController[E]) Page() int { return c.page }

// PageSize returns the window size.
func (c *ListController[E]) PageSize() int { return c.pageSize }

// TotalCount returns the size of the whole filtered collection.
func (c *ListController[E]) TotalCount() int { return c.totalCount }

// TotalPages returns the number of pages the collection spans.
func (c *ListController[E]) TotalPages() int {
	if c.totalCount == 0 {
		return 1
	}

	return lastPage(c.totalCount, c.pageSize) + 1
}

// Loading reports whether a refresh is in flight.
func (c *ListController[E]) Loading() bool { return c.loading }

// IsSelected reports whether the row is selected.
func (c *ListController[E]) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

// SelectedIDs returns the selected ids in stable order.
func (c *ListController[E]) SelectedIDs() []string {
	ids := make([]string, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// SelectedCount returns the number of selected rows.
func (c *ListController[E]) SelectedCount() int { return len(c.selected) }

// Schema returns the entity schema the controller was built with.
func (c *ListController[E]) Schema() model.Schema[E] { return c.schema }
