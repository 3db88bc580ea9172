package action

import (
	"encoding/json"
	"fmt"
)

// ParseValues parses a values payload permissively. Accepted shapes, in
// order: JSON 2D array, JSON 1D array (promoted to one row), JSON scalar,
// and finally — the documented InvalidPayload recovery — any unparsable
// text as a single literal string cell. Ragged rows are padded to a
// rectangle with empty strings. The result always has at least one row and
// one column unless data is empty.
func ParseValues(data string) [][]interface{} {
	if data == "" {
		return [][]interface{}{{""}}
	}

	var grid [][]interface{}
	if err := json.Unmarshal([]byte(data), &grid); err == nil {
		return padRect(grid)
	}

	var row []interface{}
	if err := json.Unmarshal([]byte(data), &row); err == nil {
		return [][]interface{}{row}
	}

	var scalar interface{}
	if err := json.Unmarshal([]byte(data), &scalar); err == nil {
		return [][]interface{}{{scalar}}
	}

	// Unparsable JSON: treat the payload as a literal scalar value.
	return [][]interface{}{{data}}
}

// padRect pads ragged rows with "" so the block is rectangular, matching
// the write-shape invariant of the grid store.
func padRect(grid [][]interface{}) [][]interface{} {
	cols := 0
	for _, row := range grid {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return [][]interface{}{{""}}
	}
	for i, row := range grid {
		for len(row) < cols {
			row = append(row, "")
		}
		grid[i] = row
	}
	return grid
}

// dedupPayload is the JSON shape of a removeDuplicates payload.
type dedupPayload struct {
	Columns []int `json:"columns"`
}

// ParseDedupColumns extracts the key-column list from a removeDuplicates
// payload. An empty or unparsable payload recovers to nil, meaning all
// columns participate in the key.
func ParseDedupColumns(data string) []int {
	if data == "" {
		return nil
	}
	var p dedupPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil
	}
	for _, col := range p.Columns {
		if col < 0 {
			return nil
		}
	}
	return p.Columns
}

// asInt coerces a loosely-typed JSON value to an int.
func asInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case json.Number:
		n, err := t.Int64()
		return int(n), err
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrInvalidPayload, v)
	}
}
