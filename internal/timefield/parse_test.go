package timefield

import (
	"reflect"
	"testing"
)

func TestIsValidTextTolerance(t *testing.T) {
	valid := []string{
		"", "6", "63", "6:", "6:3", "630", "06:00", "16:30", "1630", "23:59",
	}
	for _, s := range valid {
		if !IsValidText(s) {
			t.Fatalf("expected %q to be valid in-progress text", s)
		}
	}
	invalid := []string{
		"6::30", "ab:cd", "123:45", "6a", " 6", "6 ", ":6:30", "16:300", "1:2:3",
	}
	for _, s := range invalid {
		if IsValidText(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestParseTripleFields(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"9:5", []string{"9", ":", "5"}},
		{"16:30", []string{"16", ":", "30"}},
		{"630", []string{"6", "", "30"}},
		{"9:", []string{"9", ":", ""}},
		{"63", []string{"63"}},
		{"6", []string{"6"}},
		{"", []string{""}},
		{"ab", nil},
		{"6::30", nil},
	}
	for _, c := range cases {
		if got := parseTriple(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("parseTriple(%q) = %#v, want %#v", c.in, got, c.want)
		}
	}
}

func TestValueFromText(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"9:5", 905, true},
		{"16:30", 1630, true},
		{"630", 630, true},
		{"1630", 1630, true},
		{"9:", 900, true},
		{"", 0, true},
		// Bare digits read as a lone hour; clamping deals with the rest.
		{"63", 6300, true},
		{"6", 600, true},
		{"ab:cd", 0, false},
		{"123:45", 0, false},
		{"6::30", 0, false},
	}
	for _, c := range cases {
		got, ok := ValueFromText(c.in)
		if ok != c.ok {
			t.Fatalf("ValueFromText(%q) ok = %v, want %v", c.in, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("ValueFromText(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
