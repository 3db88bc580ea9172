// Package formula rewrites A1-style cell references inside formula text and
// expands an anchor formula over a rectangular target range.
package formula

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gridact/gridact-go/pkg/gridact/addr"
)

// refToken matches one cell reference: optional absolute markers per axis,
// one or more column letters, and a 1-based row number.
var refToken = regexp.MustCompile(`(\$?)([A-Z]+)(\$?)(\d+)`)

// Token is a single cell reference recognized inside a formula.
type Token struct {
	ColAbsolute bool
	Column      string
	RowAbsolute bool
	Row         int // 1-based, as written
}

func (t Token) String() string {
	var b strings.Builder
	if t.ColAbsolute {
		b.WriteByte('$')
	}
	b.WriteString(t.Column)
	if t.RowAbsolute {
		b.WriteByte('$')
	}
	b.WriteString(strconv.Itoa(t.Row))
	return b.String()
}

// Tokens scans formula text and returns every cell reference token in order
// of appearance. The scan is purely lexical: tokens inside quoted string
// arguments are reported exactly like real references.
func Tokens(formula string) []Token {
	matches := refToken.FindAllStringSubmatch(formula, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		row, _ := strconv.Atoi(m[4])
		tokens = append(tokens, Token{
			ColAbsolute: m[1] == "$",
			Column:      m[2],
			RowAbsolute: m[3] == "$",
			Row:         row,
		})
	}
	return tokens
}

// Translate shifts every relative cell reference in the formula down by
// rowOffset and right by colOffset. Axes marked absolute with "$" are never
// altered. All text between reference tokens is preserved verbatim.
//
// Translate does not distinguish references inside quoted string literals
// from real ones; "A1" inside a string argument shifts like any other token.
// Translate is pure: the same input always yields the same output.
func Translate(formula string, rowOffset, colOffset int) string {
	if rowOffset == 0 && colOffset == 0 {
		return formula
	}

	var b strings.Builder
	last := 0
	for _, loc := range refToken.FindAllStringSubmatchIndex(formula, -1) {
		b.WriteString(formula[last:loc[0]])
		b.WriteString(shiftToken(formula[loc[0]:loc[1]], rowOffset, colOffset))
		last = loc[1]
	}
	b.WriteString(formula[last:])
	return b.String()
}

func shiftToken(text string, rowOffset, colOffset int) string {
	m := refToken.FindStringSubmatch(text)
	row, _ := strconv.Atoi(m[4])
	tok := Token{
		ColAbsolute: m[1] == "$",
		Column:      m[2],
		RowAbsolute: m[3] == "$",
		Row:         row,
	}

	if !tok.ColAbsolute && colOffset > 0 {
		index, err := addr.LetterToIndex(tok.Column)
		if err == nil {
			if shifted, err := addr.IndexToLetter(index + colOffset); err == nil {
				tok.Column = shifted
			}
		}
	}
	if !tok.RowAbsolute && rowOffset > 0 {
		tok.Row += rowOffset
	}
	return tok.String()
}
