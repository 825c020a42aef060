package types

import "testing"

func TestLocationID(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"line only", Location{SourceID: "a.js", Line: 10}, "a.js:10"},
		{"with column", Location{SourceID: "a.js", Line: 10, Column: 4}, "a.js:10:4"},
		{"url source", Location{SourceID: "http://x/a.js", Line: 1}, "http://x/a.js:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocationID(tt.loc); got != tt.want {
				t.Errorf("LocationID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocationID_SameSlot(t *testing.T) {
	a := Location{SourceID: "a.js", Line: 20}
	b := Location{SourceID: "a.js", Line: 20}
	if a.ID() != b.ID() {
		t.Errorf("identical locations produced different ids: %q vs %q", a.ID(), b.ID())
	}

	c := Location{SourceID: "a.js", Line: 20, Column: 3}
	if a.ID() == c.ID() {
		t.Error("column should distinguish breakpoint slots")
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in      string
		want    Location
		wantErr bool
	}{
		{in: "a.js:10", want: Location{SourceID: "a.js", Line: 10}},
		{in: "a.js:10:5", want: Location{SourceID: "a.js", Line: 10, Column: 5}},
		{in: "http://host/a.js:7", want: Location{SourceID: "http://host/a.js", Line: 7}},
		{in: " main.go:3 ", want: Location{SourceID: "main.go", Line: 3}},
		{in: "a.js", wantErr: true},
		{in: "a.js:x", wantErr: true},
		{in: ":10", wantErr: true},
		{in: "a.js:0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocation(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLocation(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLineRange(t *testing.T) {
	if !(LineRange{}).IsEmpty() {
		t.Error("zero range should be empty")
	}
	if !(LineRange{Start: 5, End: 4}).IsEmpty() {
		t.Error("inverted range should be empty")
	}

	r := LineRange{Start: 5, End: 8}
	if r.IsEmpty() {
		t.Fatal("range 5-8 should not be empty")
	}
	if r.String() != "[5-8]" {
		t.Errorf("String() = %q", r.String())
	}
}
