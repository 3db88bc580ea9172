package tabular

import (
	"sort"
	"strings"
)

// Entry is one output row of an aggregation, keyed by category value.
type Entry struct {
	Key   string
	Value float64
}

// bucket accumulates per-key totals while rows stream through Aggregate.
// A bucket is created on the first row with its key, mutated per subsequent
// row, and read exactly once when output is assembled.
type bucket struct {
	count int
	sum   float64
}

// Aggregate buckets the data rows of a header+data block by the trimmed
// string value of categoryCol and reduces measureCol into each bucket.
// Rows with an empty category key are skipped. When measureCol is negative
// (no measure column) the bucket value is the row count; otherwise it is
// the sum of the cells that parse as a finite number.
//
// The result is sorted descending by value; ties keep the insertion order
// of each key's first occurrence.
func Aggregate(rows [][]interface{}, categoryCol, measureCol int) []Entry {
	buckets := make(map[string]*bucket)
	var order []string

	for r := 1; r < len(rows); r++ {
		row := rows[r]
		if categoryCol >= len(row) {
			continue
		}
		key := strings.TrimSpace(stringify(row[categoryCol]))
		if key == "" {
			continue
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			order = append(order, key)
		}
		b.count++
		if measureCol >= 0 && measureCol < len(row) {
			if v, ok := toFloat(row[measureCol]); ok {
				b.sum += v
			}
		}
	}

	entries := make([]Entry, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		value := float64(b.count)
		if measureCol >= 0 {
			value = b.sum
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	return entries
}

// Block renders aggregation entries as a two-column header+data block ready
// to write back into the grid before charting.
func Block(entries []Entry, categoryLabel, valueLabel string) [][]interface{} {
	if categoryLabel == "" {
		categoryLabel = "Category"
	}
	if valueLabel == "" {
		valueLabel = "Value"
	}
	block := make([][]interface{}, 0, len(entries)+1)
	block = append(block, []interface{}{categoryLabel, valueLabel})
	for _, e := range entries {
		block = append(block, []interface{}{e.Key, e.Value})
	}
	return block
}
