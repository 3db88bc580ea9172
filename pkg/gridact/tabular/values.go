// Package tabular implements the heuristics the engine applies to tabular
// range data: column role classification, category aggregation, and row
// deduplication. All functions are pure over [][]interface{} blocks whose
// first row is the header.
package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// stringify coerces a cell value to its string form. nil normalizes to ""
// so missing cells compare equal regardless of how the store reported them.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// toFloat reports the numeric value of a cell: numbers directly, strings
// when they parse as a finite number.
func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// isText reports whether a cell holds non-numeric text.
func isText(v interface{}) bool {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return false
	}
	_, numeric := toFloat(s)
	return !numeric
}
