package formula

import (
	"reflect"
	"testing"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		formula   string
		rowOffset int
		colOffset int
		expected  string
	}{
		// relative vs absolute, axis by axis
		{"=A1", 1, 1, "=B2"},
		{"=$A1", 1, 1, "=$A2"},
		{"=A$1", 1, 1, "=B$1"},
		{"=$A$1", 1, 1, "=$A$1"},

		// only the requested axis moves
		{"=A1", 3, 0, "=A4"},
		{"=A1", 0, 3, "=D1"},
		{"=A1", 0, 0, "=A1"},

		// multiple tokens, surrounding text preserved
		{"=SUM(A1:A5)", 1, 0, "=SUM(A2:A6)"},
		{"=A1+B$2*$C3", 2, 1, "=B3+C$2*$C5"},
		{"=IF(A1>0,B1,C1)", 1, 1, "=IF(B2>0,C2,D2)"},

		// multi-letter columns cross the base-26 boundary
		{"=Z1", 0, 1, "=AA1"},
		{"=AZ10", 0, 1, "=BA10"},
		{"=ZZ1", 0, 1, "=AAA1"},

		// lexical scan: tokens inside string literals shift too
		{`=CONCAT("A1",B2)`, 1, 1, `=CONCAT("B2",C3)`},
	}

	for _, tt := range tests {
		got := Translate(tt.formula, tt.rowOffset, tt.colOffset)
		if got != tt.expected {
			t.Errorf("Translate(%q, %d, %d) = %q, expected %q",
				tt.formula, tt.rowOffset, tt.colOffset, got, tt.expected)
		}
	}
}

func TestTranslateIsPure(t *testing.T) {
	formula := "=SUM(A1:C3)+$D$4"
	first := Translate(formula, 2, 2)
	for i := 0; i < 5; i++ {
		if got := Translate(formula, 2, 2); got != first {
			t.Fatalf("Translate not deterministic: %q vs %q", got, first)
		}
	}
}

func TestTokens(t *testing.T) {
	tokens := Tokens("=SUM($A1:B$2)")
	expected := []Token{
		{ColAbsolute: true, Column: "A", Row: 1},
		{Column: "B", RowAbsolute: true, Row: 2},
	}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Tokens = %+v, expected %+v", tokens, expected)
	}

	if got := Tokens("=NOW()"); len(got) != 0 {
		t.Errorf("Tokens(\"=NOW()\") = %+v, expected none", got)
	}
}

func TestApplyShapes(t *testing.T) {
	t.Run("1x1", func(t *testing.T) {
		m := Apply("=A1+B1", 1, 1)
		if !reflect.DeepEqual(m, Matrix{{"=A1+B1"}}) {
			t.Errorf("got %v", m)
		}
	})

	t.Run("fill down", func(t *testing.T) {
		m := Apply("=SUM(A1:A5)", 3, 1)
		expected := Matrix{
			{"=SUM(A1:A5)"},
			{"=SUM(A2:A6)"},
			{"=SUM(A3:A7)"},
		}
		if !reflect.DeepEqual(m, expected) {
			t.Errorf("got %v, expected %v", m, expected)
		}
	})

	t.Run("fill right", func(t *testing.T) {
		m := Apply("=B2*2", 1, 3)
		expected := Matrix{{"=B2*2", "=C2*2", "=D2*2"}}
		if !reflect.DeepEqual(m, expected) {
			t.Errorf("got %v, expected %v", m, expected)
		}
	})

	t.Run("rectangular", func(t *testing.T) {
		m := Apply("=A$1", 2, 2)
		expected := Matrix{
			{"=A$1", "=B$1"},
			{"=A$1", "=B$1"},
		}
		if !reflect.DeepEqual(m, expected) {
			t.Errorf("got %v, expected %v", m, expected)
		}
	})
}

func TestApplyDimensions(t *testing.T) {
	for _, shape := range [][2]int{{1, 1}, {4, 1}, {1, 4}, {3, 5}} {
		m := Apply("=A1", shape[0], shape[1])
		if len(m) != shape[0] {
			t.Fatalf("shape %v: got %d rows", shape, len(m))
		}
		for _, row := range m {
			if len(row) != shape[1] {
				t.Fatalf("shape %v: got %d cols", shape, len(row))
			}
		}
	}
}
