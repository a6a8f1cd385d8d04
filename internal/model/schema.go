package model

import "strings"

// FieldKind tells the form layer which editor a field needs.
type FieldKind int

const (
	// FieldText is a free-text input.
	FieldText FieldKind = iota

	// FieldDate is a calendar date in YYYY-MM-DD form.
	FieldDate

	// FieldRef holds the id of a record in another collection.
	FieldRef
)

// Field describes one editable field of an entity.
type Field struct {
	// Name is the wire/form name, matching the JSON tag.
	Name string

	// Label is the human-readable name used in forms and messages.
	Label string

	// Required marks the field as mandatory on submit.
	Required bool

	Kind FieldKind

	// Ref is the base path of the referenced collection for FieldRef.
	Ref string
}

// Schema describes the editable surface of an entity: its fields in form
// order plus conversions between a record and flat string form values.
// Apply builds a draft (no id) from trimmed values and reports per-field
// parse failures; required-field checks are the form controller's job.
type Schema[E Entity] struct {
	Singular string
	Plural   string
	Fields   []Field

	Values func(E) map[string]string
	Apply  func(map[string]string) (E, map[string]string)
}

// Field returns the named field declaration.
func (s Schema[E]) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Label returns the field label, falling back to the raw name for fields
// the schema does not declare (e.g. server-reported extras).
func (s Schema[E]) Label(name string) string {
	if f, ok := s.Field(name); ok {
		return f.Label
	}

	return name
}

func trimmed(values map[string]string, name string) string {
	return strings.TrimSpace(values[name])
}

// AuthorSchema describes the author form.
func AuthorSchema() Schema[Author] {
	return Schema[Author]{
		Singular: "author",
		Plural:   "authors",
		Fields: []Field{
			{Name: "name", Label: "Name", Required: true},
			{Name: "email", Label: "Email"},
			{Name: "bio", Label: "Bio"},
		},
		Values: func(a Author) map[string]string {
			return map[string]string{
				"name":  a.Name,
				"email": a.Email,
				"bio":   a.Bio,
			}
		},
		Apply: func(values map[string]string) (Author, map[string]string) {
			return Author{
				Name:  trimmed(values, "name"),
				Email: trimmed(values, "email"),
				Bio:   trimmed(values, "bio"),
			}, nil
		},
	}
}

// BookSchema describes the book form. The denormalized author name is
// display-only and not part of the form.
func BookSchema() Schema[Book] {
	return Schema[Book]{
		Singular: "book",
		Plural:   "books",
		Fields: []Field{
			{Name: "title", Label: "Title", Required: true},
			{Name: "authorId", Label: "Author", Required: true, Kind: FieldRef, Ref: "/authors"},
		},
		Values: func(b Book) map[string]string {
			return map[string]string{
				"title":    b.Title,
				"authorId": b.AuthorID,
			}
		},
		Apply: func(values map[string]string) (Book, map[string]string) {
			return Book{
				Title:    trimmed(values, "title"),
				AuthorID: trimmed(values, "authorId"),
			}, nil
		},
	}
}

// MemberSchema describes the member form.
func MemberSchema() Schema[Member] {
	return Schema[Member]{
		Singular: "member",
		Plural:   "members",
		Fields: []Field{
			{Name: "name", Label: "Name", Required: true},
			{Name: "email", Label: "Email", Required: true},
			{Name: "phone", Label: "Phone", Required: true},
		},
		Values: func(m Member) map[string]string {
			return map[string]string{
				"name":  m.Name,
				"email": m.Email,
				"phone": m.Phone,
			}
		},
		Apply: func(values map[string]string) (Member, map[string]string) {
			return Member{
				Name:  trimmed(values, "name"),
				Email: trimmed(values, "email"),
				Phone: trimmed(values, "phone"),
			}, nil
		},
	}
}

// BorrowSchema describes the borrow-record form.
func BorrowSchema() Schema[BorrowRecord] {
	return Schema[BorrowRecord]{
		Singular: "borrow record",
		Plural:   "borrow records",
		Fields: []Field{
			{Name: "bookId", Label: "Book", Required: true, Kind: FieldRef, Ref: "/books"},
			{Name: "memberId", Label: "Member", Required: true, Kind: FieldRef, Ref: "/members"},
			{Name: "borrowDate", Label: "Borrow Date", Required: true, Kind: FieldDate},
			{Name: "returnDate", Label: "Return Date", Required: true, Kind: FieldDate},
		},
		Values: func(r BorrowRecord) map[string]string {
			return map[string]string{
				"bookId":     r.BookID,
				"memberId":   r.MemberID,
				"borrowDate": r.BorrowDate.String(),
				"returnDate": r.ReturnDate.String(),
			}
		},
		Apply: func(values map[string]string) (BorrowRecord, map[string]string) {
			errs := make(map[string]string)

			borrowDate, err := ParseDate(trimmed(values, "borrowDate"))
			if err != nil {
				errs["borrowDate"] = "must be a date in YYYY-MM-DD form"
			}

			returnDate, err := ParseDate(trimmed(values, "returnDate"))
			if err != nil {
				errs["returnDate"] = "must be a date in YYYY-MM-DD form"
			}

			if len(errs) == 0 {
				errs = nil
			}

			return BorrowRecord{
				BookID:     trimmed(values, "bookId"),
				MemberID:   trimmed(values, "memberId"),
				BorrowDate: borrowDate,
				ReturnDate: returnDate,
			}, errs
		},
	}
}
