package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var nonNumericRegex = regexp.MustCompile(`[^0-9.]`)

func NormalizeSpace(s string) string {
	s = strings.Trim(s, " \n\t")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

// StripNonNumeric removes everything except digits and dots, so
// "$1,000.50 (Taxes Paid)" keeps only its numeric characters. Callers
// that expect a single number should go through ParseMoney, which only
// reads the leading numeric prefix.
func StripNonNumeric(s string) string {
	return nonNumericRegex.ReplaceAllString(s, "")
}

// ParseMoney strips formatting from a dollar string and parses the
// leading numeric prefix. Returns 0 for strings with no leading number.
func ParseMoney(s string) float64 {
	return leadingFloat(StripNonNumeric(s))
}

// leadingFloat parses the longest valid float prefix of s, stopping at
// a second dot. Stray characters after the number are ignored.
func leadingFloat(s string) float64 {
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseCount reads a prize count like "1,250" or "712 of 850",
// dropping thousands separators and stopping at the first non-digit.
func ParseCount(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

var oddsRatioRegex = regexp.MustCompile(`([0-9.]+)\s*(?:in|:)\s*([0-9,.]+)`)

// ParseOddsPercent turns an overall odds string ("1 in 4.5", "1:4.5",
// "1 : 4.50") into a win probability percentage. Returns nil when the
// string does not carry a usable ratio.
func ParseOddsPercent(s string) *float64 {
	groups := oddsRatioRegex.FindStringSubmatch(s)
	if len(groups) < 3 {
		return nil
	}
	left, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return nil
	}
	right, err := strconv.ParseFloat(strings.ReplaceAll(groups[2], ",", ""), 64)
	if err != nil {
		return nil
	}
	if left <= 0 || right <= 0 {
		return nil
	}
	pct := (left / right) * 100
	return &pct
}

// FormatMoney renders a dollar amount with thousands separators and no
// decimals, e.g. 50000 -> "50,000".
func FormatMoney(amount float64) string {
	n := int64(amount + 0.5)
	negative := n < 0
	if negative {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	out := strings.Builder{}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	if negative {
		return "-" + out.String()
	}
	return out.String()
}
