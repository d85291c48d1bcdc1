package service

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"portal-import/internal/fileio"
	"portal-import/internal/utils"
)

// Coercions never fail: an unusable cell becomes nil (numbers), false (flags)
// or "" (text).

// ToInt rounds half up, toward +Inf: 2.5 → 3, -2.5 → -2. Text goes through
// the pt-BR number parser.
func ToInt(c fileio.Cell) *int64 {
	switch c.Kind {
	case fileio.CellNumber:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return nil
		}
		v := int64(math.Floor(c.Num + 0.5))
		return &v
	case fileio.CellText:
		d, ok := utils.ParseNumberBR(c.Text)
		if !ok {
			return nil
		}
		v := d.Add(half).Floor().IntPart()
		return &v
	default:
		return nil
	}
}

// ToFloat is ToInt without rounding.
func ToFloat(c fileio.Cell) *float64 {
	switch c.Kind {
	case fileio.CellNumber:
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return nil
		}
		v := c.Num
		return &v
	case fileio.CellText:
		d, ok := utils.ParseNumberBR(c.Text)
		if !ok {
			return nil
		}
		v, _ := d.Float64()
		if math.IsInf(v, 0) {
			return nil
		}
		return &v
	default:
		return nil
	}
}

var half = decimal.New(5, -1)

var truthy = map[string]bool{"true": true, "sim": true, "yes": true, "1": true, "y": true}

func ToBool(c fileio.Cell) bool {
	return truthy[strings.ToLower(strings.TrimSpace(c.String()))]
}

func ToText(c fileio.Cell) string {
	return strings.TrimSpace(c.String())
}
