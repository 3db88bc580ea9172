package addr

import (
	"errors"
	"testing"
)

func TestIndexToLetter(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		got, err := IndexToLetter(tt.index)
		if err != nil {
			t.Fatalf("IndexToLetter(%d) failed: %v", tt.index, err)
		}
		if got != tt.expected {
			t.Errorf("IndexToLetter(%d) = %q, expected %q", tt.index, got, tt.expected)
		}
	}

	if _, err := IndexToLetter(-1); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("IndexToLetter(-1) error = %v, expected ErrInvalidAddress", err)
	}
}

func TestLetterToIndex(t *testing.T) {
	tests := []struct {
		letters  string
		expected int
	}{
		{"A", 0},
		{"z", 25},
		{"AA", 26},
		{"aa", 26},
		{"ZZ", 701},
		{"AAA", 702},
	}

	for _, tt := range tests {
		got, err := LetterToIndex(tt.letters)
		if err != nil {
			t.Fatalf("LetterToIndex(%q) failed: %v", tt.letters, err)
		}
		if got != tt.expected {
			t.Errorf("LetterToIndex(%q) = %d, expected %d", tt.letters, got, tt.expected)
		}
	}

	for _, bad := range []string{"", "A1", "?", "A B"} {
		if _, err := LetterToIndex(bad); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("LetterToIndex(%q) error = %v, expected ErrInvalidAddress", bad, err)
		}
	}
}

func TestLetterRoundTrip(t *testing.T) {
	for i := 0; i < 20000; i++ {
		letters, err := IndexToLetter(i)
		if err != nil {
			t.Fatalf("IndexToLetter(%d) failed: %v", i, err)
		}
		back, err := LetterToIndex(letters)
		if err != nil {
			t.Fatalf("LetterToIndex(%q) failed: %v", letters, err)
		}
		if back != i {
			t.Fatalf("round trip %d → %q → %d", i, letters, back)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		address  string
		expected Range
	}{
		{"C2:C51", Range{StartRow: 1, StartCol: 2, RowCount: 50, ColCount: 1}},
		{"A1:B2", Range{StartRow: 0, StartCol: 0, RowCount: 2, ColCount: 2}},
		{"B3", Range{StartRow: 2, StartCol: 1, RowCount: 1, ColCount: 1}},
		{"Sheet1!A1:B10", Range{Sheet: "Sheet1", StartRow: 0, StartCol: 0, RowCount: 10, ColCount: 2}},
		{"'My Sheet'!AA10", Range{Sheet: "My Sheet", StartRow: 9, StartCol: 26, RowCount: 1, ColCount: 1}},
		{"$A$1:$B$2", Range{StartRow: 0, StartCol: 0, RowCount: 2, ColCount: 2}},
	}

	for _, tt := range tests {
		got, err := ParseRange(tt.address)
		if err != nil {
			t.Fatalf("ParseRange(%q) failed: %v", tt.address, err)
		}
		if got != tt.expected {
			t.Errorf("ParseRange(%q) = %+v, expected %+v", tt.address, got, tt.expected)
		}
	}
}

func TestParseRangeInvalid(t *testing.T) {
	for _, bad := range []string{"", "Sheet1!", "1A", "A", "A0", "B2:A1", "A1:B2:C3"} {
		if _, err := ParseRange(bad); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("ParseRange(%q) error = %v, expected ErrInvalidAddress", bad, err)
		}
	}
}

func TestRangeString(t *testing.T) {
	tests := []struct {
		r        Range
		expected string
	}{
		{Range{Sheet: "Sheet1", StartRow: 1, StartCol: 2, RowCount: 50, ColCount: 1}, "Sheet1!C2:C51"},
		{Range{StartRow: 0, StartCol: 0, RowCount: 1, ColCount: 1}, "A1"},
		{Range{StartRow: 4, StartCol: 26, RowCount: 2, ColCount: 2}, "AA5:AB6"},
	}

	for _, tt := range tests {
		if got := tt.r.String(); got != tt.expected {
			t.Errorf("Range%+v.String() = %q, expected %q", tt.r, got, tt.expected)
		}
	}
}
