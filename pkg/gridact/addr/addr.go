// Package addr converts between spreadsheet column letters, zero-based
// indices, and A1-style range addresses.
package addr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAddress indicates a malformed column, cell, or range reference.
var ErrInvalidAddress = errors.New("invalid address")

// IndexToLetter converts a zero-based column index to its spreadsheet
// letter name using bijective base-26: 0 → "A", 25 → "Z", 26 → "AA",
// 701 → "ZZ", 702 → "AAA". There is no width limit.
func IndexToLetter(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: negative column index %d", ErrInvalidAddress, index)
	}
	var buf []byte
	n := index + 1
	for n > 0 {
		n--
		buf = append([]byte{byte('A' + n%26)}, buf...)
		n /= 26
	}
	return string(buf), nil
}

// LetterToIndex converts a column letter name to its zero-based index.
// It is case-insensitive and is the inverse of IndexToLetter.
func LetterToIndex(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column name", ErrInvalidAddress)
	}
	index := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: column %q contains non-alphabetic character", ErrInvalidAddress, letters)
		}
		index = index*26 + int(r-'A'+1)
	}
	return index - 1, nil
}

// Range is a sheet-qualified rectangle in zero-based coordinates.
// RowCount and ColCount are always at least 1.
type Range struct {
	Sheet    string
	StartRow int
	StartCol int
	RowCount int
	ColCount int
}

// ParseRange resolves a human-readable address such as "C2:C51",
// "Sheet1!A1:B10", or a single cell "B3" into a Range. The sheet part is
// optional; surrounding single quotes on the sheet name are stripped.
func ParseRange(address string) (Range, error) {
	sheet := ""
	rest := address
	if i := strings.LastIndex(address, "!"); i >= 0 {
		sheet = strings.Trim(address[:i], "'")
		rest = address[i+1:]
	}
	if rest == "" {
		return Range{}, fmt.Errorf("%w: empty range in %q", ErrInvalidAddress, address)
	}

	parts := strings.Split(rest, ":")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	startRow, startCol, err := parseCell(parts[0])
	if err != nil {
		return Range{}, err
	}
	endRow, endCol := startRow, startCol
	if len(parts) == 2 {
		endRow, endCol, err = parseCell(parts[1])
		if err != nil {
			return Range{}, err
		}
	}
	if endRow < startRow || endCol < startCol {
		return Range{}, fmt.Errorf("%w: %q is not top-left to bottom-right", ErrInvalidAddress, address)
	}

	return Range{
		Sheet:    sheet,
		StartRow: startRow,
		StartCol: startCol,
		RowCount: endRow - startRow + 1,
		ColCount: endCol - startCol + 1,
	}, nil
}

// parseCell splits "C12" into zero-based (row, col). Absolute markers ($)
// are accepted and ignored; addresses carry no relative/absolute meaning.
func parseCell(cell string) (row, col int, err error) {
	cell = strings.ReplaceAll(cell, "$", "")
	split := len(cell)
	for i, r := range cell {
		if r >= '0' && r <= '9' {
			split = i
			break
		}
	}
	if split == 0 || split == len(cell) {
		return 0, 0, fmt.Errorf("%w: cell %q", ErrInvalidAddress, cell)
	}
	col, err = LetterToIndex(cell[:split])
	if err != nil {
		return 0, 0, err
	}
	n, err := strconv.Atoi(cell[split:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("%w: cell %q has invalid row", ErrInvalidAddress, cell)
	}
	return n - 1, col, nil
}

// CellName renders zero-based (row, col) as an A1-style cell name.
func CellName(row, col int) (string, error) {
	if row < 0 {
		return "", fmt.Errorf("%w: negative row %d", ErrInvalidAddress, row)
	}
	letters, err := IndexToLetter(col)
	if err != nil {
		return "", err
	}
	return letters + strconv.Itoa(row+1), nil
}

// String renders the range as a sheet-qualified A1-style address.
func (r Range) String() string {
	start, _ := CellName(r.StartRow, r.StartCol)
	end, _ := CellName(r.StartRow+r.RowCount-1, r.StartCol+r.ColCount-1)
	ref := start
	if end != start {
		ref = start + ":" + end
	}
	if r.Sheet == "" {
		return ref
	}
	return r.Sheet + "!" + ref
}

// Resize returns a copy of the range with the same anchor and the given
// dimensions.
func (r Range) Resize(rowCount, colCount int) Range {
	r.RowCount = rowCount
	r.ColCount = colCount
	return r
}

// Offset returns a copy of the range shifted down and right by the given
// number of rows and columns.
func (r Range) Offset(rows, cols int) Range {
	r.StartRow += rows
	r.StartCol += cols
	return r
}
