package model

import (
	"encoding/json"
	"testing"
)

func TestBorrowRecordUnmarshalFlat(t *testing.T) {
	data := []byte(`{"id":"r1","bookId":"b1","memberId":"m1","borrowDate":"2024-03-01","returnDate":"2024-03-15"}`)

	var record BorrowRecord
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if record.BookID != "b1" || record.MemberID != "m1" {
		t.Errorf("ids = %q/%q, want b1/m1", record.BookID, record.MemberID)
	}
}

func TestBorrowRecordUnmarshalNested(t *testing.T) {
	data := []byte(`{
		"id": "r1",
		"book": {"id": "b1", "title": "Emma"},
		"member": {"id": "m1", "name": "Ada"},
		"borrowDate": "2024-03-01",
		"returnDate": null
	}`)

	var record BorrowRecord
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if record.BookID != "b1" {
		t.Errorf("BookID = %q, want b1", record.BookID)
	}

	if record.MemberID != "m1" {
		t.Errorf("MemberID = %q, want m1", record.MemberID)
	}

	if !record.ReturnDate.IsZero() {
		t.Errorf("ReturnDate = %v, want zero", record.ReturnDate)
	}
}

func TestBorrowRecordFlatWinsOverNested(t *testing.T) {
	data := []byte(`{"bookId":"flat","book":{"id":"nested"},"memberId":"m1","borrowDate":"2024-03-01","returnDate":"2024-03-15"}`)

	var record BorrowRecord
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if record.BookID != "flat" {
		t.Errorf("BookID = %q, want the flat field", record.BookID)
	}
}
