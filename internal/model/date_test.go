package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2024-03-15",
			want:  "2024-03-15",
		},
		{
			name:  "empty string is the zero date",
			input: "",
			want:  "",
		},
		{
			name:  "surrounding whitespace",
			input: "  2024-03-15  ",
			want:  "2024-03-15",
		},
		{
			name:    "wrong layout",
			input:   "15/03/2024",
			wantErr: true,
		},
		{
			name:    "not a date",
			input:   "soon",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %v", tt.input, got)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}

			if got.String() != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 15)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if string(data) != `"2024-03-15"` {
		t.Errorf("marshal = %s, want %q", data, "2024-03-15")
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !back.Equal(d.Time) {
		t.Errorf("round trip changed the date: %v != %v", back, d)
	}
}

func TestDateJSONZero(t *testing.T) {
	data, err := json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if string(data) != "null" {
		t.Errorf("zero date marshals as %s, want null", data)
	}

	var d Date
	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}

	if !d.IsZero() {
		t.Errorf("null did not decode to the zero date: %v", d)
	}
}
