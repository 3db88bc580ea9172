package tabular

import "strings"

// Sample sizes for classification. These are tuning knobs, not exact
// analysis: category detection looks at the first rows below the header,
// measure detection at a slightly deeper slice.
const (
	CategorySampleRows = 5
	MeasureSampleRows  = 9

	// Aggregation only pays off past this many total rows (header included)
	// and with at least this many columns; smaller blocks chart as-is.
	MinRowsForAggregation = 10 // exclusive
	MinColsForAggregation = 2
)

// Role classifies one column of a sampled header+data block.
type Role int

const (
	RoleUnclassified Role = iota
	RoleCategory
	RoleMeasure
	RoleIdentifier
)

func (r Role) String() string {
	switch r {
	case RoleCategory:
		return "category"
	case RoleMeasure:
		return "measure"
	case RoleIdentifier:
		return "identifier"
	default:
		return "unclassified"
	}
}

// Classification is the outcome of inspecting a tabular block.
// Column indices are -1 when no column qualified.
type Classification struct {
	CategoryColumn int
	MeasureColumn  int
	Roles          []Role
}

// identifierHeaderMarkers are header substrings that mark a numeric column
// as an identifier rather than a measure.
var identifierHeaderMarkers = []string{"id", "no", "number"}

// Classify inspects a header+data block and picks the category and measure
// columns used for chart aggregation. It returns ok=false when the block is
// too small to aggregate (MinRowsForAggregation / MinColsForAggregation) or
// when no category column qualifies — in both cases the caller should chart
// the raw range instead.
//
// Category: scanning left to right over a CategorySampleRows sample (header
// excluded), the first column with at least one textual value and at least
// one repeated value wins. Measure: scanning the remaining columns over a
// MeasureSampleRows sample, the first all-numeric column wins, except
// columns whose header contains an identifier marker and columns whose
// sample is strictly increasing and pairwise unique (sequential IDs). With
// no measure column, aggregation falls back to row counting.
func Classify(rows [][]interface{}) (Classification, bool) {
	cls := Classification{CategoryColumn: -1, MeasureColumn: -1}
	if len(rows) <= MinRowsForAggregation {
		return cls, false
	}
	cols := len(rows[0])
	if cols < MinColsForAggregation {
		return cls, false
	}
	cls.Roles = make([]Role, cols)

	for c := 0; c < cols; c++ {
		if isCategorySample(sampleColumn(rows, c, CategorySampleRows)) {
			cls.CategoryColumn = c
			cls.Roles[c] = RoleCategory
			break
		}
	}
	if cls.CategoryColumn < 0 {
		return cls, false
	}

	for c := 0; c < cols; c++ {
		if c == cls.CategoryColumn {
			continue
		}
		sample := sampleColumn(rows, c, MeasureSampleRows)
		if !allNumeric(sample) {
			continue
		}
		if hasIdentifierHeader(stringify(rows[0][c])) || isSequential(sample) {
			cls.Roles[c] = RoleIdentifier
			continue
		}
		cls.MeasureColumn = c
		cls.Roles[c] = RoleMeasure
		break
	}

	return cls, true
}

// sampleColumn collects up to n data-row values of one column, header
// excluded.
func sampleColumn(rows [][]interface{}, col, n int) []interface{} {
	sample := make([]interface{}, 0, n)
	for r := 1; r < len(rows) && len(sample) < n; r++ {
		if col < len(rows[r]) {
			sample = append(sample, rows[r][col])
		}
	}
	return sample
}

// isCategorySample reports whether a sample looks category-like: at least
// one textual value, and at least one repeated value (cardinality below the
// sample size).
func isCategorySample(sample []interface{}) bool {
	if len(sample) < 2 {
		return false
	}
	hasString := false
	distinct := make(map[string]struct{}, len(sample))
	for _, v := range sample {
		if isText(v) {
			hasString = true
		}
		distinct[stringify(v)] = struct{}{}
	}
	return hasString && len(distinct) < len(sample)
}

func allNumeric(sample []interface{}) bool {
	if len(sample) == 0 {
		return false
	}
	for _, v := range sample {
		if _, ok := toFloat(v); !ok {
			return false
		}
	}
	return true
}

func hasIdentifierHeader(header string) bool {
	h := strings.ToLower(header)
	for _, marker := range identifierHeaderMarkers {
		if strings.Contains(h, marker) {
			return true
		}
	}
	return false
}

// isSequential reports whether a numeric sample is strictly increasing with
// no repeats, the signature of a sequential identifier column.
func isSequential(sample []interface{}) bool {
	if len(sample) < 2 {
		return false
	}
	prev, _ := toFloat(sample[0])
	for _, v := range sample[1:] {
		f, _ := toFloat(v)
		if f <= prev {
			return false
		}
		prev = f
	}
	return true
}
