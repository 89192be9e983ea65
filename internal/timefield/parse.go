package timefield

import (
	"regexp"
	"strconv"
	"strings"
)

// In-progress input is matched against three anchored shapes, tried in order;
// the first whole-string match wins:
//  1. bare digits with no separator ("9", "63")
//  2. one hour digit, optional colon, partial minutes ("9:", "9:3", "630")
//  3. two hour digits, optional colon, partial minutes ("16:3", "16:30", "1630")
//
// Shape 1 yields a lone hour field; shapes 2 and 3 yield the full
// (hour, separator, minute) triple with possibly-empty fields.
var tripleShapes = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{0,2})$`),
	regexp.MustCompile(`^(\d?)(:?)(\d{0,2})$`),
	regexp.MustCompile(`^(\d{0,2})(:?)(\d{0,2})$`),
}

// parseTriple returns the captured fields of the first shape matching text.
// A nil result means no shape matched; a 1-element result is a lone hour
// field; a 3-element result is (hour, separator, minute).
func parseTriple(text string) []string {
	for _, re := range tripleShapes {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1:]
		}
	}
	return nil
}

// IsValidText reports whether text is still a plausible prefix of a clock
// time. This is deliberately weaker than numeric validity so typing can pass
// through states like "63" on the way to "6:30" without losing keystrokes,
// while malformed shapes ("6::30", "ab:cd", "123:45") are rejected outright.
func IsValidText(text string) bool {
	return parseTriple(text) != nil
}

// ValueFromText converts in-progress text to a clock value. Fields convert
// with a zero default, so "9:" reads as 09:00 and "" as 00:00. A bare-digits
// match is read as an hour with no minutes ("63" -> 6300, left for clamping).
// ok is false when no shape matches; any other field count is unreachable by
// construction and is rejected rather than mapped positionally.
func ValueFromText(text string) (v int, ok bool) {
	fields := parseTriple(text)
	switch len(fields) {
	case 1:
		return Compose(intOrZero(fields[0]), 0), true
	case 3:
		return Compose(intOrZero(fields[0]), intOrZero(fields[2])), true
	default:
		return 0, false
	}
}

func intOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
