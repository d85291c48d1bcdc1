package fileio

import (
	"strconv"
	"strings"
)

type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
	CellBool
)

// Cell is one spreadsheet value. Only the field matching Kind is meaningful.
type Cell struct {
	Kind CellKind
	Num  float64
	Text string
	Bool bool
}

func Number(v float64) Cell { return Cell{Kind: CellNumber, Num: v} }
func Bool(v bool) Cell      { return Cell{Kind: CellBool, Bool: v} }

// Text returns an empty cell for "" so that untyped sources (csv, xls) and
// typed ones agree on what a missing value looks like.
func Text(v string) Cell {
	if v == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: v}
}

func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	default:
		return false
	}
}

func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellText:
		return c.Text
	case CellBool:
		return strconv.FormatBool(c.Bool)
	default:
		return ""
	}
}

// RowBlank reports whether every cell of the row is blank.
func RowBlank(row []Cell) bool {
	for _, c := range row {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}

// normalizeCell чистит строковое значение из xls/csv: NBSP → пробел, trim.
func normalizeCell(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	return strings.TrimSpace(s)
}
