package config

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// MapFunc converts a raw configuration string into a typed value.
// Mappers never fail; malformed input maps to a sentinel instead.
type MapFunc[T any] func(value string) T

// String returns the identity mapper.
func String() MapFunc[string] {
	return func(value string) string { return value }
}

// Number returns a mapper that reads the leading base-10 integer of the input.
// Leading whitespace (including U+FEFF, excluding U+0085) and a single sign are
// skipped and parsing stops at the first non-digit, so "  7x" maps to 7.
// Input without leading digits maps to NaN.
func Number() MapFunc[float64] {
	return parseLeadingInt
}

// IsNaN reports whether v is the sentinel produced by Number for non-numeric input.
func IsNaN(v float64) bool {
	return math.IsNaN(v)
}

// Boolean returns a mapper that is false only for "0", "false" and "f".
// Every other input, including the empty string, maps to true.
func Boolean() MapFunc[bool] {
	return func(value string) bool {
		switch value {
		case "0", "false", "f":
			return false
		default:
			return true
		}
	}
}

// Separated returns a mapper that splits the input on the literal sep and maps every
// piece with item. Splitting the empty string yields a single empty piece.
// A nil item keeps the pieces as they are when T is string and yields zero values otherwise.
func Separated[T any](sep string, item MapFunc[T]) MapFunc[[]T] {
	if item == nil {
		item = func(value string) T {
			v, _ := any(value).(T)
			return v
		}
	}
	return func(value string) []T {
		parts := strings.Split(value, sep)
		out := make([]T, len(parts))
		for i, part := range parts {
			out[i] = item(part)
		}
		return out
	}
}

// Erase adapts a typed mapper to the untyped form used by Spec.
func Erase[T any](fn MapFunc[T]) func(string) any {
	if fn == nil {
		return nil
	}
	return func(value string) any { return fn(value) }
}

// isLeadingSpace matches the whitespace skipped before a number: the Unicode
// White_Space set plus the byte order mark, minus NEL (U+0085).
func isLeadingSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return r == '\uFEFF' || unicode.IsSpace(r)
}

func parseLeadingInt(value string) float64 {
	s := strings.TrimLeftFunc(value, isLeadingSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return math.NaN()
	}

	// Out of range runs come back as ±Inf with ErrRange; keep the value.
	n, _ := strconv.ParseFloat(sign+s[:end], 64)
	return n
}
