package fileio

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV reads a CSV export as a single sheet, auto-detecting the encoding
// (UTF-8, Windows-1252, ISO-8859-1) and the delimiter (";" from pt-BR Excel, or ",")
// from the first lines of the file.
func readCSV(r io.Reader, sheetName string) ([]Sheet, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimPrefix(b, utf8BOM)

	if dec := detectDecoder(b); dec != nil {
		if out, _, err := transform.Bytes(dec, b); err == nil {
			b = out
		}
	}

	cr := csv.NewReader(bytes.NewReader(b))
	cr.Comma = sniffDelimiter(b)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return []Sheet{{Name: sheetName, Rows: textRows(rows)}}, nil
}

func detectDecoder(b []byte) *encoding.Decoder {
	peek := b
	if len(peek) > 4096 {
		peek = peek[:4096]
	}
	if len(peek) == 0 || utf8.Valid(b) {
		return nil
	}
	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err == nil && det != nil {
		switch strings.ToLower(det.Charset) {
		case "iso-8859-1", "latin1":
			return charmap.ISO8859_1.NewDecoder()
		}
	}
	// not UTF-8: Excel on pt-BR Windows writes cp1252
	return charmap.Windows1252.NewDecoder()
}

// sniffDelimiter votes over the first non-blank lines: the delimiter found on
// more lines wins, then the one with more occurrences, ";" on a tie. A title
// line above the header has neither, and pt-BR decimals put "," inside ";" rows.
func sniffDelimiter(b []byte) rune {
	const maxLines = 10
	var semiLines, commaLines, semis, commas, seen int
	for _, line := range bytes.Split(b, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		s, c := bytes.Count(line, []byte{';'}), bytes.Count(line, []byte{','})
		if s > 0 {
			semiLines++
		}
		if c > 0 {
			commaLines++
		}
		semis += s
		commas += c
		if seen++; seen == maxLines {
			break
		}
	}
	switch {
	case semiLines != commaLines:
		if semiLines > commaLines {
			return ';'
		}
		return ','
	case semis > 0 && semis >= commas:
		return ';'
	default:
		return ','
	}
}
