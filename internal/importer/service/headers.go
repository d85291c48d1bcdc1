package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"portal-import/internal/fileio"
	"portal-import/internal/importer/fields"
	"portal-import/internal/importer/model"
)

// minSuggestScore is the similarity a header needs to be reported as a
// possible spelling of an unmatched field.
const minSuggestScore = 0.8

// stripDiacritics: "Média Móvel" → "Media Movel".
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeHeader: trim, no diacritics, lower case, single spaces (NBSP included).
func NormalizeHeader(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(stripDiacritics(s))
}

// headerCells returns the header texts of a sheet, or ok=false when the sheet
// has fewer rows than headerRow (1-based).
func headerCells(sheet fileio.Sheet, headerRow int) ([]string, bool) {
	if len(sheet.Rows) < headerRow {
		return nil, false
	}
	row := sheet.Rows[headerRow-1]
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.String()
	}
	return out, true
}

// ResolveField finds the column of one field: aliases are tried in declaration
// order and the first alias present among the headers wins (leftmost column
// for that alias). Returns -1 when nothing matched.
func ResolveField(normHeaders []string, aliases []string) int {
	for _, a := range aliases {
		na := NormalizeHeader(a)
		if na == "" {
			continue
		}
		for i, h := range normHeaders {
			if h == na {
				return i
			}
		}
	}
	return -1
}

// ResolveHeaders maps every dictionary field onto the given header row.
func ResolveHeaders(headers []string, dict fields.Dictionary) model.FieldMapping {
	normed := make([]string, len(headers))
	for i, h := range headers {
		normed[i] = NormalizeHeader(h)
	}
	out := make(model.FieldMapping, 0, len(dict))
	for _, f := range dict {
		m := model.FieldMatch{Field: f.Name, Index: ResolveField(normed, f.Aliases)}
		if m.Matched() {
			m.Header = headers[m.Index]
		}
		out = append(out, m)
	}
	return out
}

// suggestHeaders proposes, for each unmatched field, the unused header that
// is closest to one of its aliases. Suggestions are informational only.
func suggestHeaders(headers []string, mapping model.FieldMapping, dict fields.Dictionary) map[string]string {
	used := make(map[int]bool, len(mapping))
	for _, m := range mapping {
		if m.Matched() {
			used[m.Index] = true
		}
	}
	out := map[string]string{}
	for _, m := range mapping {
		if m.Matched() {
			continue
		}
		best, bestIdx := 0.0, -1
		for _, a := range dict.Aliases(m.Field) {
			na := NormalizeHeader(a)
			for i, h := range headers {
				if used[i] {
					continue
				}
				nh := NormalizeHeader(h)
				if nh == "" {
					continue
				}
				if s := similarity(na, nh); s > best {
					best, bestIdx = s, i
				}
			}
		}
		if bestIdx >= 0 && best >= minSuggestScore {
			out[m.Field] = headers[bestIdx]
		}
	}
	return out
}
