package tabular

import "strings"

// keySeparator joins key-column values into a composite dedup key. A pipe
// is unlikely to appear in cell data; collisions would require it in the
// values themselves.
const keySeparator = "|"

// Dedupe retains the first row observed per distinct composite key, in
// original row order, and reports how many rows were dropped. The key is
// built from the string-coerced cells of keyColumns (nil cells become "");
// an empty keyColumns means all columns participate. Runs in O(n) over a
// key set.
func Dedupe(rows [][]interface{}, keyColumns []int) (unique [][]interface{}, removed int) {
	if len(rows) == 0 {
		return nil, 0
	}

	seen := make(map[string]struct{}, len(rows))
	unique = make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		key := dedupKey(row, keyColumns)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, row)
	}
	return unique, removed
}

// dedupKey builds the composite key for one row. Out-of-range key columns
// contribute "" so ragged rows still key deterministically.
func dedupKey(row []interface{}, keyColumns []int) string {
	if len(keyColumns) == 0 {
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = stringify(v)
		}
		return strings.Join(parts, keySeparator)
	}

	parts := make([]string, len(keyColumns))
	for i, col := range keyColumns {
		if col >= 0 && col < len(row) {
			parts[i] = stringify(row[col])
		}
	}
	return strings.Join(parts, keySeparator)
}
