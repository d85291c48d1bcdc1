package fileio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	excelize "github.com/xuri/excelize/v2"
)

// readXLSX reads raw (unformatted) values of every sheet and types each cell
// from the workbook's own cell type.
func readXLSX(r io.Reader) ([]Sheet, error) {
	opts := excelize.Options{RawCellValue: true}
	f, err := excelize.OpenReader(r, opts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name, opts)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		grid := make([][]Cell, len(rows))
		for i, row := range rows {
			cells := make([]Cell, len(row))
			for j, v := range row {
				if v == "" {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(j+1, i+1)
				if err != nil {
					return nil, err
				}
				typ, err := f.GetCellType(name, axis)
				if err != nil {
					return nil, fmt.Errorf("sheet %q cell %s: %w", name, axis, err)
				}
				cells[j] = typedCell(v, typ)
			}
			grid[i] = cells
		}
		sheets = append(sheets, Sheet{Name: name, Rows: grid})
	}
	return sheets, nil
}

func typedCell(v string, typ excelize.CellType) Cell {
	switch typ {
	case excelize.CellTypeBool:
		s := strings.ToUpper(strings.TrimSpace(v))
		return Bool(s == "1" || s == "TRUE")
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		// cells without an explicit type are numeric in OOXML
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return Number(f)
		}
		return Text(v)
	default:
		return Text(v)
	}
}
