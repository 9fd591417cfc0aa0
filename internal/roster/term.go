// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"regexp"
	"strings"
)

var (
	// termTextRE matches an explicit season-plus-year phrase like "Fall 2025".
	termTextRE = regexp.MustCompile(`(?i)\b(Spring|Summer|Fall|Winter)\s+(20\d{2})\b`)

	// termCodeRE matches a Banner term code like "202503": year then a
	// season digit 1-4.
	termCodeRE = regexp.MustCompile(`\b(20\d{2}0[1-4])\b`)
)

// seasonNames maps the last digit of a Banner term code to a season.
var seasonNames = map[byte]string{
	'1': "Winter",
	'2': "Spring",
	'3': "Summer",
	'4': "Fall",
}

// DetectTerm infers a human-readable academic term label from the first
// page's text. It prefers an explicit phrase like "Fall 2025"; failing
// that, it decodes the first Banner term code found in scan order.
// Returns "" when neither form is present; callers omit an empty term
// from output naming rather than treating it as an error.
func DetectTerm(firstPageText string) string {
	if m := termTextRE.FindStringSubmatch(firstPageText); m != nil {
		return titleSeason(m[1]) + " " + m[2]
	}

	for _, code := range termCodeRE.FindAllString(firstPageText, -1) {
		if label := termFromCode(code); label != "" {
			return label
		}
	}

	return ""
}

// termFromCode converts a 6-digit Banner term code into a label like
// "Summer 2025". An unrecognized season digit yields the bare year
// trimmed of the missing season, per the source behavior.
func termFromCode(code string) string {
	if len(code) != 6 {
		return ""
	}
	season := seasonNames[code[len(code)-1]]
	return strings.TrimSpace(season + " " + code[:4])
}

// titleSeason normalizes a case-insensitive season match to title case.
func titleSeason(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
