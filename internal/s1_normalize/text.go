package s1_normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	gameIDSeparator = regexp.MustCompile(`[\s_\x{2013}\x{2014}/]+`)
	gameIDStrip     = regexp.MustCompile(`[^a-z0-9-]+`)
	slugStrip       = regexp.MustCompile(`[^a-z0-9]+`)
)

// CleanText replaces non-breaking spaces, collapses whitespace and trims
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// foldASCII strips diacritics (NFKD, drop combining marks)
func foldASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slug lowercases, folds accents and joins alphanumeric runs with hyphens
func Slug(s string) string {
	s = strings.ToLower(foldASCII(CleanText(s)))
	return strings.Trim(slugStrip.ReplaceAllString(s, "-"), "-")
}

// CanonicalGameID makes game ids from independently authored files comparable.
// Separators (v, vs, _, en dash, em dash, whitespace) become a single hyphen and
// everything outside [a-z0-9-] is dropped.
func CanonicalGameID(s string) string {
	s = strings.ToLower(foldASCII(CleanText(s)))
	s = gameIDSeparator.ReplaceAllString(s, "-")
	s = gameIDStrip.ReplaceAllString(s, "")

	parts := strings.Split(s, "-")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" || p == "v" || p == "vs" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "-")
}

// ParseNumber parses a numeric cell; anything unparseable, non-finite or
// negative becomes 0. Thousands separators are tolerated.
func ParseNumber(s string) float64 {
	s = strings.ReplaceAll(CleanText(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseMinutes accepts decimal minutes or a "mm:ss" clock
func ParseMinutes(s string) float64 {
	s = CleanText(s)
	if mm, ss, ok := strings.Cut(s, ":"); ok {
		m := ParseNumber(mm)
		sec := ParseNumber(ss)
		if sec >= 60 {
			return 0
		}
		return m + sec/60
	}
	return ParseNumber(s)
}

// ParseMadeAttempted splits a combined "made-attempted" cell such as "5-11"
func ParseMadeAttempted(s string) (made, attempted float64) {
	s = CleanText(s)
	m, a, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0
	}
	return ParseNumber(m), ParseNumber(a)
}
