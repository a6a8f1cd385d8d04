package cli

import (
	"context"

	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/store"
)

// refOptionLimit bounds how many referenced records a form picker loads.
const refOptionLimit = 200

// Column describes one table column of a list screen.
type Column[E model.Entity] struct {
	Title string
	Width int

	// Value renders the cell for a row.
	Value func(E) string

	// Field is the schema field an inline edit of this column commits;
	// empty means the column is read-only.
	Field string
}

// ListSpec is the per-entity configuration of the generic list screen.
type ListSpec[E model.Entity] struct {
	Title        string
	SearchPrompt string
	Columns      []Column[E]
}

// Option is one choice of a reference picker.
type Option struct {
	ID    string
	Label string
}

// OptionLoader fetches the options of one reference field.
type OptionLoader func(ctx context.Context) ([]Option, error)

func loadOptions[E model.Entity](res *store.Resource[E], label func(E) string) OptionLoader {
	return func(ctx context.Context) ([]Option, error) {
		page, err := res.List(ctx, "", 0, refOptionLimit)
		if err != nil {
			return nil, err
		}

		options := make([]Option, len(page.Items))
		for i, item := range page.Items {
			options[i] = Option{ID: item.EntityID(), Label: label(item)}
		}

		return options, nil
	}
}

func authorListSpec() ListSpec[model.Author] {
	return ListSpec[model.Author]{
		Title:        "Author List",
		SearchPrompt: "Search author by name...",
		Columns: []Column[model.Author]{
			{Title: "Name", Width: 28, Value: func(a model.Author) string { return a.Name }, Field: "name"},
			{Title: "Email", Width: 26, Value: func(a model.Author) string { return a.Email }, Field: "email"},
			{Title: "Bio", Width: 30, Value: func(a model.Author) string { return a.Bio }},
		},
	}
}

func bookListSpec() ListSpec[model.Book] {
	return ListSpec[model.Book]{
		Title:        "Book List",
		SearchPrompt: "Search book by title...",
		Columns: []Column[model.Book]{
			{Title: "Title", Width: 34, Value: func(b model.Book) string { return b.Title }, Field: "title"},
			{Title: "Author", Width: 28, Value: func(b model.Book) string {
				if b.AuthorName != "" {
					return b.AuthorName
				}

				return b.AuthorID
			}, Field: "authorId"},
		},
	}
}

func memberListSpec() ListSpec[model.Member] {
	return ListSpec[model.Member]{
		Title:        "Member List",
		SearchPrompt: "Search member by name...",
		Columns: []Column[model.Member]{
			{Title: "Name", Width: 24, Value: func(m model.Member) string { return m.Name }, Field: "name"},
			{Title: "Email", Width: 28, Value: func(m model.Member) string { return m.Email }, Field: "email"},
			{Title: "Phone", Width: 18, Value: func(m model.Member) string { return m.Phone }, Field: "phone"},
		},
	}
}

func borrowListSpec() ListSpec[model.BorrowRecord] {
	return ListSpec[model.BorrowRecord]{
		Title:        "Borrowed List",
		SearchPrompt: "Search borrow records...",
		Columns: []Column[model.BorrowRecord]{
			{Title: "Book", Width: 22, Value: func(r model.BorrowRecord) string { return r.BookID }},
			{Title: "Member", Width: 22, Value: func(r model.BorrowRecord) string { return r.MemberID }},
			{Title: "Borrowed", Width: 12, Value: func(r model.BorrowRecord) string { return r.BorrowDate.String() }, Field: "borrowDate"},
			{Title: "Returned", Width: 12, Value: func(r model.BorrowRecord) string { return r.ReturnDate.String() }, Field: "returnDate"},
		},
	}
}
