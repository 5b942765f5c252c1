package dialect

import (
	"regexp"
	"strconv"
	"strings"
)

// GeneratePlaceholders is a helper function to create a slice of placeholder strings.
// It takes the number of placeholders needed and a function that returns the placeholder for a given index.
// It returns a comma-separated string of the generated placeholders.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

var precisionRe = regexp.MustCompile(`\(\s*(\d+)\s*(?:,\s*(\d+)\s*)?\)`)

// TypePrecision extracts the precision and scale from a type such as
// "Number(19,4)". ok is false when the type carries no precision.
func TypePrecision(sqlType string) (precision, scale int, ok bool) {
	m := precisionRe.FindStringSubmatch(sqlType)
	if m == nil {
		return 0, 0, false
	}
	precision, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		scale, _ = strconv.Atoi(m[2])
	}
	return precision, scale, true
}

// BaseType strips any parenthesized precision and lowercases the result.
func BaseType(sqlType string) string {
	if i := strings.IndexByte(sqlType, '('); i >= 0 {
		sqlType = sqlType[:i]
	}
	return strings.ToLower(strings.TrimSpace(sqlType))
}
