package model

import (
	"testing"
	"time"
)

func TestAuthorSchemaApplyTrims(t *testing.T) {
	schema := AuthorSchema()

	author, errs := schema.Apply(map[string]string{
		"name":  "  Jane Austen  ",
		"email": " jane@example.com ",
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if author.Name != "Jane Austen" {
		t.Errorf("Name = %q, want trimmed", author.Name)
	}

	if author.Email != "jane@example.com" {
		t.Errorf("Email = %q, want trimmed", author.Email)
	}
}

func TestBorrowSchemaApplyDates(t *testing.T) {
	schema := BorrowSchema()

	record, errs := schema.Apply(map[string]string{
		"bookId":     "b1",
		"memberId":   "m1",
		"borrowDate": "2024-03-01",
		"returnDate": "2024-03-15",
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := NewDate(2024, time.March, 1)
	if !record.BorrowDate.Equal(want.Time) {
		t.Errorf("BorrowDate = %v, want %v", record.BorrowDate, want)
	}
}

func TestBorrowSchemaApplyBadDate(t *testing.T) {
	schema := BorrowSchema()

	_, errs := schema.Apply(map[string]string{
		"bookId":     "b1",
		"memberId":   "m1",
		"borrowDate": "yesterday",
		"returnDate": "2024-03-15",
	})

	if errs["borrowDate"] == "" {
		t.Fatalf("expected an error for borrowDate, got %v", errs)
	}

	if _, bad := errs["returnDate"]; bad {
		t.Errorf("returnDate should be clean, got %v", errs)
	}
}

func TestSchemaLabelFallback(t *testing.T) {
	schema := BookSchema()

	if got := schema.Label("title"); got != "Title" {
		t.Errorf("Label(title) = %q", got)
	}

	if got := schema.Label("isbn"); got != "isbn" {
		t.Errorf("Label(isbn) = %q, want the raw name", got)
	}
}

func TestSchemaValuesRoundTrip(t *testing.T) {
	schema := MemberSchema()
	member := Member{ID: "m1", Name: "Ada", Email: "ada@example.com", Phone: "555-0100"}

	values := schema.Values(member)

	back, errs := schema.Apply(values)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}

	// Apply builds a draft; the id stays with the store.
	member.ID = ""
	if back != member {
		t.Errorf("round trip = %+v, want %+v", back, member)
	}
}
