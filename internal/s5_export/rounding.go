package s5_export

import (
	"math"
	"strconv"
	"strings"
)

// Round rounds half away from zero to the given number of decimals.
// Ties are decided on the shortest decimal form of v, so 1.005 rounds to 1.01
// even though its binary value sits just below the tie.
// Negative zero is normalized to zero.
func Round(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	r, err := strconv.ParseFloat(roundDecimal(strconv.FormatFloat(v, 'f', -1, 64), precision), 64)
	if err != nil {
		// 십진 문자열 파싱 실패는 없어야 함; 이진 반올림으로 대체
		scale := math.Pow10(precision)
		r = math.Round(v*scale) / scale
	}
	if r == 0 {
		return 0
	}
	return r
}

// roundDecimal rounds a plain decimal string ("-12.345") half away from zero
func roundDecimal(s string, precision int) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	if len(frac) <= precision {
		return signed(neg, s)
	}

	digits := []byte(intPart + frac[:precision])
	if frac[precision] >= '5' {
		i := len(digits) - 1
		for ; i >= 0; i-- {
			if digits[i] < '9' {
				digits[i]++
				break
			}
			digits[i] = '0'
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits...)
		}
	}

	cut := len(digits) - precision
	out := string(digits[:cut])
	if precision > 0 {
		out += "." + string(digits[cut:])
	}
	return signed(neg, out)
}

func signed(neg bool, s string) string {
	if neg {
		return "-" + s
	}
	return s
}

// FormatNumber renders a rounded value with exactly precision decimals
func FormatNumber(v float64, precision int) string {
	return strconv.FormatFloat(Round(v, precision), 'f', precision, 64)
}
