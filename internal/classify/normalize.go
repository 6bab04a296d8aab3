package classify

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"equitylens/internal/table"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Numeric is a coerced cell value. Valid is false when the cell could not be
// read as a number.
type Numeric struct {
	Value float64
	Valid bool
}

// NormalizeText trims, lower-cases and collapses whitespace runs in a text
// cell. Non-text cells normalize to "".
func NormalizeText(c table.Cell) string {
	if c.Kind != table.CellText {
		return ""
	}
	return NormalizeString(c.Text)
}

// NormalizeString applies the NormalizeText rules to a raw string.
func NormalizeString(s string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// CoerceNumeric parses every cell as a number. When no cell parses directly,
// the whole column is retried with locale cleanup (see cleanLocale). Cells
// that still fail are returned as invalid.
func CoerceNumeric(cells []table.Cell) []Numeric {
	out := make([]Numeric, len(cells))
	anyParsed := false
	for i, c := range cells {
		if v, ok := parseDirect(c); ok {
			out[i] = Numeric{Value: v, Valid: true}
			anyParsed = true
		}
	}
	if anyParsed {
		return out
	}

	for i, c := range cells {
		if c.Kind != table.CellText {
			continue
		}
		if v, ok := ParseLocale(c.Text); ok {
			out[i] = Numeric{Value: v, Valid: true}
		}
	}
	return out
}

// SumNumeric coerces cells and sums them, counting invalid cells as zero.
func SumNumeric(cells []table.Cell) float64 {
	var total decimal.Decimal
	for _, n := range CoerceNumeric(cells) {
		if n.Valid {
			total = total.Add(decimal.NewFromFloat(n.Value))
		}
	}
	return total.InexactFloat64()
}

func parseDirect(c table.Cell) (float64, bool) {
	switch c.Kind {
	case table.CellNumber:
		return c.Number, true
	case table.CellText:
		return table.ParseNumber(c.Text)
	default:
		return 0, false
	}
}

// ParseLocale parses a single formatted amount the way column coercion's
// fallback does, so "R$ 1.234,56" yields 1234.56.
func ParseLocale(s string) (float64, bool) {
	return table.ParseNumber(cleanLocale(s))
}

// cleanLocale keeps digits, comma, period and minus, turns commas into
// periods, then drops every period but the last so thousands separators
// disappear: "1.234,56" becomes "1234.56".
func cleanLocale(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == ',':
			b.WriteRune('.')
		}
	}
	cleaned := b.String()
	if last := strings.LastIndex(cleaned, "."); last >= 0 && strings.Count(cleaned, ".") > 1 {
		cleaned = strings.ReplaceAll(cleaned[:last], ".", "") + cleaned[last:]
	}
	return cleaned
}
