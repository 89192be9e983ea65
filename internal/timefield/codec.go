package timefield

import "strconv"

// Clock values pack hour and minute into a single int as hour*100 + minute
// (930 = 09:30, 1400 = 14:00). The codec is pure arithmetic: range and shape
// checks live with the callers that clamp against bounds.

func Decompose(v int) (hours, minutes int) {
	return v / 100, v % 100
}

func Compose(hours, minutes int) int {
	return hours*100 + minutes
}

// Format renders a clock value as zero-padded "HH:MM" (always 5 characters).
func Format(v int) string {
	h, m := Decompose(v)
	return fmt2(h) + ":" + fmt2(m)
}

// IsValidValue reports whether v is a well-formed clock value: non-negative
// with a minute component under 60. The hour component is unbounded here;
// hours are constrained by min/max clamping, not by validity.
func IsValidValue(v int) bool {
	return v >= 0 && v%100 < 60
}

// ForceValid clamps v into [min, max], falling back to prev when v is not a
// well-formed clock value. The result is always in [min, max] for valid v.
func ForceValid(v, min, max, prev int) int {
	if !IsValidValue(v) {
		return prev
	}
	return clamp(v, min, max)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func fmt2(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 99 {
		n = 99
	}
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
