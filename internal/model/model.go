// Package model defines the record types managed by the console and the
// per-entity schemas the form layer is driven by.
package model

import "encoding/json"

// Entity is implemented by every record kind the console manages. The id is
// opaque and assigned by the record store; a record without one is a draft
// that exists only inside an open form.
type Entity interface {
	EntityID() string
}

// Author is a book author.
type Author struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

func (a Author) EntityID() string { return a.ID }

// Book references its author by id. AuthorName is denormalized by the
// store for display and is never written back.
type Book struct {
	ID         string `json:"id,omitempty"`
	Title      string `json:"title" validate:"required"`
	AuthorID   string `json:"authorId" validate:"required"`
	AuthorName string `json:"authorName,omitempty"`
}

func (b Book) EntityID() string { return b.ID }

// Member is a registered library member.
type Member struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

func (m Member) EntityID() string { return m.ID }

// BorrowRecord ties a book to the member who borrowed it. Some store
// deployments return the referenced book and member as nested objects
// instead of flat id fields; decoding accepts both shapes.
type BorrowRecord struct {
	ID         string `json:"id,omitempty"`
	BookID     string `json:"bookId" validate:"required"`
	MemberID   string `json:"memberId" validate:"required"`
	BorrowDate Date   `json:"borrowDate" validate:"required"`
	ReturnDate Date   `json:"returnDate" validate:"required"`
}

func (r BorrowRecord) EntityID() string { return r.ID }

func (r *BorrowRecord) UnmarshalJSON(data []byte) error {
	type plain BorrowRecord

	aux := struct {
		*plain
		Book *struct {
			ID string `json:"id"`
		} `json:"book"`
		Member *struct {
			ID string `json:"id"`
		} `json:"member"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if r.BookID == "" && aux.Book != nil {
		r.BookID = aux.Book.ID
	}

	if r.MemberID == "" && aux.Member != nil {
		r.MemberID = aux.Member.ID
	}

	return nil
}
