package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"GeoPrice/pkg/config"
)

// usdUnits scales raw model output, which is denominated in $100,000 units.
const usdUnits = 100000

// Amount is a converted price in a display currency.
type Amount struct {
	Currency string
	Symbol   string
	Value    decimal.Decimal
}

// Display renders the amount with its symbol and thousands separators,
// rounded to whole units.
func (a Amount) Display() string {
	return a.Symbol + groupThousands(a.Value.Round(0).String())
}

// Converter scales a raw USD estimate into a target currency using the
// static rate table. Rates change only with a config redeploy, never at
// runtime.
type Converter struct {
	table map[string]config.Currency
}

func NewConverter(cfg *config.Config) *Converter {
	return &Converter{table: cfg.Currencies}
}

// Convert turns a raw model output into a currency amount. Decimal
// arithmetic keeps the conversion exact aside from display rounding.
func (c *Converter) Convert(raw float64, code string) (Amount, error) {
	cur, ok := c.table[code]
	if !ok {
		return Amount{}, fmt.Errorf("unknown currency %q", code)
	}

	value := decimal.NewFromFloat(raw).
		Mul(decimal.NewFromInt(usdUnits)).
		Mul(decimal.NewFromFloat(cur.Rate))

	return Amount{
		Currency: code,
		Symbol:   cur.Symbol,
		Value:    value,
	}, nil
}

// Codes lists the configured currency codes.
func (c *Converter) Codes() []string {
	out := make([]string, 0, len(c.table))
	for code := range c.table {
		out = append(out, code)
	}
	return out
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteString(frac)
	return b.String()
}
