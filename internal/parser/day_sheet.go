package parser

import (
	"regexp"
	"strings"
)

var (
	daySheetRe = regexp.MustCompile(`^\d{8}$`)
	sepDateRe  = regexp.MustCompile(`^(\d{2})[\-.](\d{2})[\-.](\d{4})$`)
)

// IsDaySheet reports whether a sheet name is a selectable day: after
// trimming, exactly 8 decimal digits read as ddmmyyyy. Every other sheet is
// invisible to the engine.
func IsDaySheet(name string) bool {
	return daySheetRe.MatchString(strings.TrimSpace(name))
}

// FormatDayLabel renders a day value for display: "29042025" becomes
// "29/04/2025", "29-04-2025" and "29.04.2025" get their separators
// normalized, anything else passes through unchanged.
func FormatDayLabel(v string) string {
	s := strings.TrimSpace(v)
	if daySheetRe.MatchString(s) {
		return s[0:2] + "/" + s[2:4] + "/" + s[4:8]
	}
	if m := sepDateRe.FindStringSubmatch(s); m != nil {
		return m[1] + "/" + m[2] + "/" + m[3]
	}
	return s
}
