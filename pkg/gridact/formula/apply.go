package formula

// Matrix is a rectangular block of formula strings. Its dimensions always
// equal the (rowCount, colCount) of the range it was built for.
type Matrix [][]string

// Apply expands an anchor formula over a rows×cols target, reproducing
// fill-down/fill-right semantics: cell (r, c) holds the anchor translated by
// (r, c), and cell (0, 0) holds the anchor unchanged. rows and cols below 1
// are treated as 1.
func Apply(anchorFormula string, rows, cols int) Matrix {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	matrix := make(Matrix, rows)
	for r := 0; r < rows; r++ {
		matrix[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			if r == 0 && c == 0 {
				matrix[r][c] = anchorFormula
				continue
			}
			matrix[r][c] = Translate(anchorFormula, r, c)
		}
	}
	return matrix
}
