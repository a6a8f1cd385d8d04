package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bookServer is a tiny in-memory record store serving /books with the
// envelope response shape, matching-title search, and blank-title
// rejection.
type bookServer struct {
	books  map[string]model.Book
	nextID int
}

func newBookServer() *bookServer {
	return &bookServer{books: make(map[string]model.Book), nextID: 1}
}

func (s *bookServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/books", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var draft model.Book
			_ = json.NewDecoder(r.Body).Decode(&draft)

			if strings.TrimSpace(draft.Title) == "" {
				s.reject(w, "title", "must not be blank")
				return
			}

			draft.ID = fmt.Sprintf("b%d", s.nextID)
			s.nextID++
			s.books[draft.ID] = draft

			s.respond(w, draft)

			return
		}

		s.list(w, r)
	})

	mux.HandleFunc("/books/bulk-delete", func(w http.ResponseWriter, r *http.Request) {
		var ids []string
		_ = json.NewDecoder(r.Body).Decode(&ids)

		for _, id := range ids {
			delete(s.books, id)
		}

		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/books/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/books/")

		book, ok := s.books[id]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		if r.Method == http.MethodPut {
			var fields map[string]any
			_ = json.NewDecoder(r.Body).Decode(&fields)

			if title, ok := fields["title"].(string); ok {
				if strings.TrimSpace(title) == "" {
					s.reject(w, "title", "must not be blank")
					return
				}

				book.Title = title
			}

			s.books[id] = book
		}

		s.respond(w, book)
	})

	return mux
}

func (s *bookServer) list(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("inquiry"))

	ids := make([]string, 0, len(s.books))
	for id := range s.books {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	var matched []model.Book

	for _, id := range ids {
		book := s.books[id]
		if query == "" || strings.Contains(strings.ToLower(book.Title), query) {
			matched = append(matched, book)
		}
	}

	page, size := 0, 5
	_, _ = fmt.Sscan(r.URL.Query().Get("page"), &page)
	_, _ = fmt.Sscan(r.URL.Query().Get("size"), &size)

	start := page * size
	if start > len(matched) {
		start = len(matched)
	}

	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	s.respond(w, map[string]any{
		"content":       matched[start:end],
		"totalElements": len(matched),
	})
}

func (s *bookServer) respond(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (s *bookServer) reject(w http.ResponseWriter, field, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"errors": []map[string]string{{"field": field, "message": message}},
	})
}

func newBookResource(t *testing.T) (*store.Resource[model.Book], *bookServer) {
	t.Helper()

	backend := newBookServer()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client, err := store.NewClient(srv.URL, store.Options{})
	require.NoError(t, err)

	return store.NewResource[model.Book](client, "/books"), backend
}

func runList(t *testing.T, c *ListController[model.Book], eff Effect) {
	t.Helper()

	ctx := context.Background()

	for eff != nil {
		msg := eff(ctx)

		var handled bool

		eff, handled = c.Apply(msg)
		require.True(t, handled)
	}
}

func TestCreatedBookAppearsInList(t *testing.T) {
	res, _ := newBookResource(t)
	notifier, _ := recordingNotifier()

	form := NewCreateForm[model.Book](res, model.BookSchema(), notifier)
	form.SetField("title", "Emma")
	form.SetField("authorId", "a1")

	eff := form.Submit()
	require.NotNil(t, eff)
	require.True(t, form.Apply(eff(context.Background())))
	require.True(t, form.Done())

	created := form.Record()
	assert.NotEmpty(t, created.ID)

	list := NewListController[model.Book](res, model.BookSchema(), notifier, 5)
	runList(t, list, list.Refresh())

	require.Len(t, list.Rows(), 1)
	assert.Equal(t, created.ID, list.Rows()[0].ID)
	assert.Equal(t, "Emma", list.Rows()[0].Title)
}

func TestRejectedRowEditKeepsDisplayedValue(t *testing.T) {
	res, backend := newBookResource(t)
	notifier, events := recordingNotifier()

	backend.books["b1"] = model.Book{ID: "b1", Title: "Emma", AuthorID: "a1"}

	list := NewListController[model.Book](res, model.BookSchema(), notifier, 5)
	runList(t, list, list.Refresh())
	require.Len(t, list.Rows(), 1)

	eff, err := list.CommitRowEdit("b1", map[string]any{"title": ""})
	require.NoError(t, err)

	runList(t, list, eff)

	row, ok := list.Row("b1")
	require.True(t, ok)
	assert.Equal(t, "Emma", row.Title)

	require.NotEmpty(t, *events)
	assert.Equal(t, "Error", (*events)[len(*events)-1].Summary)
}

func TestSearchNarrowsAndClearRestores(t *testing.T) {
	res, backend := newBookResource(t)
	notifier, _ := recordingNotifier()

	backend.books["b1"] = model.Book{ID: "b1", Title: "Emma", AuthorID: "a1"}
	backend.books["b2"] = model.Book{ID: "b2", Title: "Persuasion", AuthorID: "a1"}
	backend.books["b3"] = model.Book{ID: "b3", Title: "Emma II", AuthorID: "a1"}

	list := NewListController[model.Book](res, model.BookSchema(), notifier, 5)
	runList(t, list, list.Refresh())
	require.Len(t, list.Rows(), 3)

	list.SetQuery("emma")
	runList(t, list, list.SetPage(0))

	assert.Len(t, list.Rows(), 2)
	assert.Equal(t, 2, list.TotalCount())

	runList(t, list, list.ClearQuery())

	assert.Len(t, list.Rows(), 3)
	assert.Empty(t, list.Query())
}

func TestDeleteLastRowOnPageClampsToPreviousPage(t *testing.T) {
	res, backend := newBookResource(t)
	notifier, _ := recordingNotifier()

	for i := 1; i <= 6; i++ {
		id := fmt.Sprintf("b%d", i)
		backend.books[id] = model.Book{ID: id, Title: fmt.Sprintf("Book %d", i), AuthorID: "a1"}
	}

	list := NewListController[model.Book](res, model.BookSchema(), notifier, 5)
	runList(t, list, list.SetPage(1))
	require.Len(t, list.Rows(), 1)

	list.ToggleSelection(list.Rows()[0].ID)

	eff, err := list.BulkDelete()
	require.NoError(t, err)

	runList(t, list, eff)

	assert.Equal(t, 0, list.Page())
	assert.Len(t, list.Rows(), 5)
	assert.Equal(t, 5, list.TotalCount())
}
