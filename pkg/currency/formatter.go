package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Round2 rounds half away from zero to two decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatUSD renders amount as dollars with a thousands separator, e.g.
// "$1,234.50".
func FormatUSD(amount float64) string {
	rounded := Round2(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intPart, fracPart, _ := strings.Cut(fmt.Sprintf("%.2f", rounded), ".")
	formatted := addThousandsSeparator(intPart, ",")

	result := "$" + formatted + "." + fracPart
	if negative {
		result = "-" + result
	}

	return result
}

// FormatInt renders n with a thousands separator, e.g. "12,345".
func FormatInt(n int64) string {
	if n < 0 {
		return "-" + addThousandsSeparator(strconv.FormatInt(-n, 10), ",")
	}
	return addThousandsSeparator(strconv.FormatInt(n, 10), ",")
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
