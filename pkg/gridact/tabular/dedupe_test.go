package tabular

import (
	"reflect"
	"testing"
)

func TestDedupe(t *testing.T) {
	rows := [][]interface{}{
		{"a", int64(1)},
		{"b", int64(2)},
		{"a", int64(3)},
		{"b", int64(2)},
	}

	unique, removed := Dedupe(rows, []int{0})
	expected := [][]interface{}{
		{"a", int64(1)},
		{"b", int64(2)},
	}
	if !reflect.DeepEqual(unique, expected) {
		t.Errorf("unique = %v, expected %v", unique, expected)
	}
	if removed != 2 {
		t.Errorf("removed = %d, expected 2", removed)
	}
}

func TestDedupeAllColumnsDefault(t *testing.T) {
	rows := [][]interface{}{
		{"a", int64(1)},
		{"a", int64(2)},
		{"a", int64(1)},
	}

	unique, removed := Dedupe(rows, nil)
	if len(unique) != 2 || removed != 1 {
		t.Errorf("got %d unique, %d removed; expected 2, 1", len(unique), removed)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	rows := [][]interface{}{
		{"x", "1"},
		{"y", "2"},
		{"x", "3"},
		{"z", "4"},
		{"y", "5"},
	}
	keys := []int{0}

	once, removed := Dedupe(rows, keys)
	if len(once)+removed != len(rows) {
		t.Fatalf("unique(%d) + removed(%d) != total(%d)", len(once), removed, len(rows))
	}

	twice, removedAgain := Dedupe(once, keys)
	if removedAgain != 0 {
		t.Errorf("second pass removed %d rows", removedAgain)
	}
	if !reflect.DeepEqual(twice, once) {
		t.Errorf("second pass changed rows: %v vs %v", twice, once)
	}
}

func TestDedupeKeyNormalization(t *testing.T) {
	// nil and "" key cells produce the same key; numeric type does not
	// change the key either.
	rows := [][]interface{}{
		{nil, "keep"},
		{"", "drop"},
		{int64(7), "keep"},
		{"7", "drop"},
	}

	unique, removed := Dedupe(rows, []int{0})
	if len(unique) != 2 || removed != 2 {
		t.Fatalf("got %d unique, %d removed; expected 2, 2", len(unique), removed)
	}
	if unique[0][1] != "keep" || unique[1][1] != "keep" {
		t.Errorf("first occurrences not retained: %v", unique)
	}
}

func TestDedupeEmptyInput(t *testing.T) {
	unique, removed := Dedupe(nil, []int{0})
	if unique != nil || removed != 0 {
		t.Errorf("Dedupe(nil) = %v, %d", unique, removed)
	}
}
