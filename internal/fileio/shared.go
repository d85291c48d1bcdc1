package fileio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoSheets    = errors.New("workbook has no sheets")
	ErrUnsupported = errors.New("unsupported file type")
)

// Sheet is one tab of a workbook. Rows keep their original positions: Rows[0]
// is spreadsheet row 1, and rows may have different lengths.
type Sheet struct {
	Name string
	Rows [][]Cell
}

type Workbook struct {
	Path   string
	Sheets []Sheet
}

// Open reads the workbook at path. A missing file yields an error that wraps
// fs.ErrNotExist.
func Open(path string) (Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return Workbook{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read picks the parser by extension and returns every sheet of the file.
func Read(r io.Reader, filename string) (Workbook, error) {
	var (
		sheets []Sheet
		err    error
	)
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		sheets, err = readXLSX(r)
	case ".xls":
		sheets, err = readXLS(r)
	case ".csv":
		sheets, err = readCSV(r, strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	default:
		return Workbook{}, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	if err != nil {
		return Workbook{}, fmt.Errorf("read %s: %w", filepath.Base(filename), err)
	}
	if len(sheets) == 0 {
		return Workbook{}, ErrNoSheets
	}
	return Workbook{Path: filename, Sheets: sheets}, nil
}

// textRows converts an untyped grid (xls, csv) into cells.
func textRows(rows [][]string) [][]Cell {
	out := make([][]Cell, len(rows))
	for i, rec := range rows {
		cells := make([]Cell, len(rec))
		for j, v := range rec {
			cells[j] = Text(normalizeCell(v))
		}
		out[i] = cells
	}
	return out
}
