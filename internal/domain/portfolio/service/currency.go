package service

import (
	"math"
	"strconv"
	"strings"
)

// Display symbols for the currencies the tool knows about. Unknown
// codes render without a symbol.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"AED": "د.إ",
	"SGD": "S$",
	"CNY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"BRL": "R$",
}

// FormatAmount renders a monetary amount with the currency's display
// symbol and en-US thousands grouping. Display only; no conversion.
func FormatAmount(amount float64, code string) string {
	return currencySymbols[code] + groupThousands(amount)
}

func groupThousands(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	// Up to three fraction digits, trailing zeros dropped.
	s := strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)

	intPart := s
	frac := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	return sign + b.String() + frac
}
