package currency

import (
	"fmt"
	"math"
	"strings"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

var zeroDecimal = map[string]bool{
	"JPY": true,
	"IDR": true,
}

// Format renders an amount with a thousands separator, e.g. "$1,234.50" or
// "IDR 1,500,000" for currencies without a known symbol.
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)

	negative := amount < 0
	if negative {
		amount = -amount
	}

	var intStr, fracStr string
	if zeroDecimal[code] {
		intStr = fmt.Sprintf("%.0f", math.Round(amount))
	} else {
		cents := math.Round(amount * 100)
		intStr = fmt.Sprintf("%.0f", math.Floor(cents/100))
		fracStr = fmt.Sprintf(".%02d", int64(math.Mod(cents, 100)))
	}

	number := addThousandsSeparator(intStr, ",") + fracStr

	var result string
	if sym, ok := symbols[code]; ok {
		result = sym + number
	} else {
		result = code + " " + number
	}

	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
