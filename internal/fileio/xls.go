// Парсер .xls: ширину таблицы считаем сами и читаем все ячейки до неё.
package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

// legacy exports from the bots are mostly cp1252, sometimes already UTF-8
var xlsCharsets = []string{"utf-8", "windows-1252", "iso-8859-1"}

// computeMaxCols finds the real width: probe a bounded number of columns and
// keep the rightmost non-empty one. Row.LastCol() is unreliable for these files.
func computeMaxCols(sheet *xls.WorkSheet) int {
	const probeMax = 256
	maxCols := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		for j := maxCols; j < probeMax; j++ {
			if v := normalizeCell(r.Col(j)); v != "" {
				maxCols = j + 1
			}
		}
	}
	return maxCols
}

func readXLS(r io.Reader) ([]Sheet, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var wb *xls.WorkBook
	var lastErr error
	for _, ch := range xlsCharsets {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	sheets := make([]Sheet, 0, wb.NumSheets())
	for s := 0; s < wb.NumSheets(); s++ {
		ws := wb.GetSheet(s)
		if ws == nil {
			continue
		}
		maxCols := computeMaxCols(ws)
		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for i := 0; i <= int(ws.MaxRow); i++ {
			row := ws.Row(i)
			cols := make([]string, maxCols)
			if row != nil {
				for j := 0; j < maxCols; j++ {
					cols[j] = row.Col(j)
				}
			}
			rows = append(rows, cols)
		}
		sheets = append(sheets, Sheet{Name: ws.Name, Rows: textRows(rows)})
	}
	return sheets, nil
}
