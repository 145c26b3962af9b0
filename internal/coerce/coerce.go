// Package coerce converts raw spreadsheet cell values into typed values.
// Every function accepts an arbitrary scalar and returns nil on anything it
// cannot convert; none of them ever panic. Spreadsheet exports are full of
// empty strings, stray whitespace, and numbers stored as text, so all paths
// go through the string form when the native type doesn't match.
package coerce

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Int converts a cell value to an int. Numeric strings with a decimal part
// ("3.0") are accepted by parsing through float first.
func Int(v any) *int {
	f := Float(v)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// Float converts a cell value to a float64
func Float(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return &x
	case float32:
		f := float64(x)
		return &f
	case int:
		f := float64(x)
		return &f
	case int64:
		f := float64(x)
		return &f
	case bool:
		return nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return Float(fmt.Sprint(v))
	}
}

// String converts a cell value to a trimmed string; empty becomes nil
func String(v any) *string {
	if v == nil {
		return nil
	}
	var s string
	switch x := v.(type) {
	case string:
		s = strings.TrimSpace(x)
	case float64:
		// Whole floats come back from cells as "10" not "10.000000"
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = strings.TrimSpace(fmt.Sprint(v))
	}
	if s == "" {
		return nil
	}
	return &s
}

// Bool converts a cell value to a tri-state boolean: nil for null/empty,
// true for the truthy vocabulary, false for everything else
func Bool(v any) *bool {
	switch x := v.(type) {
	case nil:
		return nil
	case bool:
		return &x
	default:
		s := strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
		if s == "" {
			return nil
		}
		b := s == "true" || s == "1" || s == "yes" || s == "y"
		return &b
	}
}

// dateLayouts are tried in order for string cells
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// Date converts a cell value to a date. Beyond parseable ISO and US formats
// it accepts the compact dotted form used on plan version stamps ("4.7.25"
// meaning April 7 2025); a 2-digit year is taken as 20YY.
func Date(v any) *time.Time {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return &x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		if t := parseDotted(s); t != nil {
			return t
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
		return nil
	default:
		return nil
	}
}

// parseDotted handles the M.D.YY / M.D.YYYY version-date format
func parseDotted(s string) *time.Time {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return nil
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return nil
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil
	}
	if len(parts[2]) == 2 {
		year += 2000
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}
