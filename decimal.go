package baysearch

import (
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern matches the first run of digits optionally followed by a
// single decimal separator and more digits. The marketplace mixes locales,
// so both "." and "," are accepted as the separator.
var decimalPattern = regexp.MustCompile(`\d+([.,]\d+)?`)

// groupingReplacer strips grouping punctuation from count strings such as
// "1.234" or "(12)".
var groupingReplacer = strings.NewReplacer(".", "", ",", "", "(", "", ")", "")

// ExtractDecimal scans text for the first decimal number and returns it.
// The second return value reports whether a number was found; callers
// choose their own sentinel for the not-found case.
func ExtractDecimal(text string) (float64, bool) {
	match := decimalPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// StripGrouping removes grouping punctuation and parses the remainder as an
// integer. Counts on the page use "." as a thousands separator and wrap
// facet counts in parentheses.
func StripGrouping(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(groupingReplacer.Replace(text)))
	if err != nil {
		return 0, Errorf(EINVALID, "not an integer: %q", text)
	}
	return n, nil
}
