package controller

import (
	"context"
	"fmt"
	"testing"

	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/notify"
	"github.com/inovacc/shelfr/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeListStore scripts the store responses so effects can be resolved in
// any order the test wants.
type fakeListStore struct {
	listFn   func(query string, page, size int) (store.Page[model.Author], error)
	patchFn  func(id string, fields map[string]any) (model.Author, error)
	deleteFn func(ids []string) error

	listCalls   int
	patchCalls  int
	deleteCalls int
}

func (f *fakeListStore) List(_ context.Context, query string, page, size int) (store.Page[model.Author], error) {
	f.listCalls++
	return f.listFn(query, page, size)
}

func (f *fakeListStore) Patch(_ context.Context, id string, fields map[string]any) (model.Author, error) {
	f.patchCalls++

	if f.patchFn == nil {
		return model.Author{}, nil
	}

	return f.patchFn(id, fields)
}

func (f *fakeListStore) BulkDelete(_ context.Context, ids []string) error {
	f.deleteCalls++

	if f.deleteFn == nil {
		return nil
	}

	return f.deleteFn(ids)
}

func authorsPage(total int, page, size int) store.Page[model.Author] {
	start := page * size

	var items []model.Author

	for i := start; i < total && i < start+size; i++ {
		items = append(items, model.Author{ID: fmt.Sprintf("a%d", i), Name: fmt.Sprintf("Author %d", i)})
	}

	return store.Page[model.Author]{Items: items, TotalCount: total, ServerPaged: true}
}

// recordingNotifier returns a sync dispatcher plus the events it saw.
func recordingNotifier() (*notify.Dispatcher, *[]notify.Event) {
	events := &[]notify.Event{}

	d := notify.NewDispatcher(false)
	d.Register(notify.NewFuncSender("record", func(e *notify.Event) {
		*events = append(*events, *e)
	}))

	return d, events
}

func newAuthorList(st *fakeListStore) *ListController[model.Author] {
	notifier, _ := recordingNotifier()
	return NewListController[model.Author](st, model.AuthorSchema(), notifier, 5)
}

func run(t *testing.T, c *ListController[model.Author], eff Effect) {
	t.Helper()

	ctx := context.Background()

	for eff != nil {
		msg := eff(ctx)

		var handled bool

		eff, handled = c.Apply(msg)
		require.True(t, handled)
	}
}

func TestRefreshLoadsPage(t *testing.T) {
	st := &fakeListStore{listFn: func(query string, page, size int) (store.Page[model.Author], error) {
		return authorsPage(12, page, size), nil
	}}

	c := newAuthorList(st)
	run(t, c, c.Refresh())

	assert.Len(t, c.Rows(), 5)
	assert.Equal(t, 12, c.TotalCount())
	assert.Equal(t, 3, c.TotalPages())
	assert.False(t, c.Loading())
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	st := &fakeListStore{listFn: func(query string, page, size int) (store.Page[model.Author], error) {
		if query == "old" {
			return store.Page[model.Author]{
				Items:      []model.Author{{ID: "old", Name: "Stale"}},
				TotalCount: 1, ServerPaged: true,
			}, nil
		}

		return authorsPage(3, page, size), nil
	}}

	c := newAuthorList(st)
	ctx := context.Background()

	c.SetQuery("old")
	staleEff := c.Refresh()

	c.SetQuery("")
	freshEff := c.Refresh()

	// The newer request resolves first; the older one lands afterwards.
	freshMsg := freshEff(ctx)
	staleMsg := staleEff(ctx)

	_, handled := c.Apply(freshMsg)
	require.True(t, handled)

	follow, handled := c.Apply(staleMsg)
	require.True(t, handled)
	assert.Nil(t, follow)

	require.Len(t, c.Rows(), 3)
	assert.NotEqual(t, "old", c.Rows()[0].ID)
	assert.Equal(t, 3, c.TotalCount())
}

func TestRefreshErrorKeepsRows(t *testing.T) {
	fail := false
	st := &fakeListStore{listFn: func(query string, page, size int) (store.Page[model.Author], error) {
		if fail {
			return store.Page[model.Author]{}, fmt.Errorf("connection refused")
		}

		return authorsPage(3, page, size), nil
	}}

	notifier, events := recordingNotifier()
	c := NewListController[model.Author](st, model.AuthorSchema(), notifier, 5)

	run(t, c, c.Refresh())
	require.Len(t, c.Rows(), 3)

	fail = true

	run(t, c, c.Refresh())

	assert.Len(t, c.Rows(), 3, "rows survive a failed refresh")
	require.NotEmpty(t, *events)
	assert.Equal(t, notify.SeverityError, (*events)[len(*events)-1].Severity)
}

func TestSelectionPrunedToPage(t *testing.T) {
	st := &fakeListStore{listFn: func(query string, page, size int) (store.Page[model.Author], error) {
		return authorsPage(12, page, size), nil
	}}

	c := newAuthorList(st)
	run(t, c, c.Refresh())

	c.ToggleSelection("a0")
	c.ToggleSelection("a1")
	require.Equal(t, 2, c.SelectedCount())

	run(t, c, c.SetPage(1))

	assert.Zero(t, c.SelectedCount(), "selection does not survive leaving the page")
}

func TestClearSelectionIdempotent(t *testing.T) {
	st := &fakeListStore{listFn: func(query string, page, size int) (store.Page[model.Author], error) {
		return authorsPage(3, page, size), nil
	}}

	c := newAuthorList(st)
	run(t, c, c.Refresh())

	c.ToggleSelection("a0")
	c.ClearSelection()
	c.ClearSelection()

	assert.Zero(t, c.SelectedCount())
	assert.False(t, c.IsSelected("a0"))
}

func TestEmptyTrailingPageClampsBack(t *testing.T) {
	total := 6
	st := &fakeListStore{listFn: func(query string, page, size int) (store.Page[model.Author], error) {
		return authorsPage(total, page, size), nil
	}}

	c := newAuthorList(st)
	run(t, c, c.SetPage(1))
	require.Len(t, c.Rows(), 1)

	// The last row of page 1 disappears; the next refresh finds the page
	// empty and must clamp to the new last page.
	total = 5

	run(t, c, c.Refresh())

	assert.Equal(t, 0, c.Page())
	assert.Len(t, c.Rows(), 5)
	assert.Equal(t, 5, c.TotalCount())
}

func TestCommitRowEditRequiresDisplayedRow(t *testing.T) {
	st := &fakeListStore{listFn: func(query string, page, size int) (store.Page[model.Author], error) {
		return authorsPage(3, page, size), nil
	}}

	c := newAuthorList(st)
	run(t, c, c.Refresh())

	_, err := c.CommitRowEdit("a99", map[string]any{"name": "X"})
	assert.Error(t, err)

	_, err = c.CommitRowEdit("a0", map[string]any{})
	assert.Error(t, err)
}

func TestCommitRowEditRefreshesAfterSuccess(t *testing.T) {
	st := &fakeListStore{listFn: func(query string, page, size int) (store.Page[model.Author], error) {
		return authorsPage(3, page, size), nil
	}}

	c := newAuthorList(st)
	run(t, c, c.Refresh())

	listCallsBefore := st.listCalls

	eff, err := c.CommitRowEdit("a0", map[string]any{"name": "Renamed"})
	require.NoError(t, err)

	run(t, c, eff)

	assert.Equal(t, 1, st.patchCalls)
	assert.Greater(t, st.listCalls, listCallsBefore, "a successful edit refreshes the page")
}

func TestCommitRowEditFailureLeavesRows(t *testing.T) {
	st := &fakeListStore{
		listFn: func(query string, page, size int) (store.Page[model.Author], error) {
			return authorsPage(3, page, size), nil
		},
		patchFn: func(id string, fields map[string]any) (model.Author, error) {
			return model.Author{}, &store.ValidationError{Errors: []store.FieldError{{Field: "name", Message: "must not be blank"}}}
		},
	}

	notifier, events := recordingNotifier()
	c := NewListController[model.Author](st, model.AuthorSchema(), notifier, 5)

	run(t, c, c.Refresh())
	before := c.Rows()[0].Name

	eff, err := c.CommitRowEdit("a0", map[string]any{"name": ""})
	require.NoError(t, err)

	run(t, c, eff)

	assert.Equal(t, before, c.Rows()[0].Name, "the displayed row keeps its pre-edit value")
	require.NotEmpty(t, *events)
	assert.Equal(t, notify.SeverityError, (*events)[len(*events)-1].Severity)
}

func TestBulkDeleteNeedsSelection(t *testing.T) {
	st := &fakeListStore{listFn: func(query string, page, size int) (store.Page[model.Author], error) {
		return authorsPage(3, page, size), nil
	}}

	c := newAuthorList(st)
	run(t, c, c.Refresh())

	_, err := c.BulkDelete()
	assert.Error(t, err)
}

func TestBulkDeleteClearsSelectionAndRefreshes(t *testing.T) {
	total := 3

	var deleted []string

	st := &fakeListStore{
		listFn: func(query string, page, size int) (store.Page[model.Author], error) {
			return authorsPage(total, page, size), nil
		},
		deleteFn: func(ids []string) error {
			deleted = ids
			total -= len(ids)

			return nil
		},
	}

	c := newAuthorList(st)
	run(t, c, c.Refresh())

	c.ToggleSelection("a0")
	c.ToggleSelection("a2")

	eff, err := c.BulkDelete()
	require.NoError(t, err)

	run(t, c, eff)

	assert.Equal(t, []string{"a0", "a2"}, deleted)
	assert.Zero(t, c.SelectedCount())
	assert.Equal(t, 1, c.TotalCount())
}

func TestClosedControllerDiscardsResponses(t *testing.T) {
	st := &fakeListStore{listFn: func(query string, page, size int) (store.Page[model.Author], error) {
		return authorsPage(3, page, size), nil
	}}

	c := newAuthorList(st)
	eff := c.Refresh()
	msg := eff(context.Background())

	c.Close()

	follow, handled := c.Apply(msg)
	require.True(t, handled)
	assert.Nil(t, follow)
	assert.Empty(t, c.Rows())
}

func TestApplyIgnoresForeignMessages(t *testing.T) {
	c := newAuthorList(&fakeListStore{})

	_, handled := c.Apply("not ours")
	assert.False(t, handled)
}
