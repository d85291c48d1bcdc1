package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	rxKeepNums    = regexp.MustCompile(`[^\d\.\-]`)
	rxLeadingNums = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// ParseNumberBR парсит числа в формате pt-BR: "1.234,56", "1.500", "12,5%",
// "R$ 2.345,60", "1 234,5" (NBSP/NNBSP). The dot is always a thousands
// separator here, so "0.95" reads as 95: plain decimals only arrive as typed
// numeric cells and never reach this function.
func ParseNumberBR(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	repl := strings.NewReplacer("\u00A0", "", "\u202F", "", " ", "", "\t", "", ".", "", ",", ".")
	s = repl.Replace(s)
	// оставить только цифры, точку и минус
	s = rxKeepNums.ReplaceAllString(s, "")
	// longest numeric prefix wins, the tail is noise ("12-3" → 12)
	s = rxLeadingNums.FindString(s)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, "-.") {
		s = "-0" + s[1:]
	} else if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
