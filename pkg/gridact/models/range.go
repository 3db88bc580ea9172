package models

// RangeData is the result of reading a rectangular block from a grid store.
// Values holds one entry per cell: string, int64, float64, bool, or nil for
// empty cells. Formulas, when present, has the same dimensions and holds the
// formula text of formula cells ("" elsewhere).
type RangeData struct {
	Values   [][]interface{} `json:"values"`
	Formulas [][]string      `json:"formulas,omitempty"`
	RowCount int             `json:"rowCount"`
	ColCount int             `json:"colCount"`
}

// SortSpec is a normalized, validated sort request for one column.
type SortSpec struct {
	Column     int  `json:"column"`
	Ascending  bool `json:"ascending"`
	HasHeaders bool `json:"hasHeaders"`
}

// FilterSpec is a normalized filter request: keep rows whose cell in Column
// matches one of Values.
type FilterSpec struct {
	Column int      `json:"column"`
	Values []string `json:"values"`
}

// ChartSpec describes a chart to create over an already-written data block.
type ChartSpec struct {
	Type string `json:"type"` // "col", "bar", "line", "pie", "scatter"
	// Source is the sheet-qualified address of the data block.
	Source string `json:"source"`
	// SeriesOrientation is "columns" (each column after the first is a
	// series) or "rows" (each row after the first is a series).
	SeriesOrientation string `json:"seriesOrientation"`
	Title             string `json:"title,omitempty"`
	// Anchor is the cell the chart is placed at; empty lets the store pick
	// a position next to the source block.
	Anchor string `json:"anchor,omitempty"`
}
