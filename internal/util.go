/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeName collapses interior whitespace and converts SHOUTING names as
// published on club pages (e.g. "DOE, JOHN") to "John Doe".
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, ","); idx != -1 {
		name = strings.TrimSpace(name[idx+1:]) + " " + strings.TrimSpace(name[:idx])
	}

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = titleCaseWord(w)
	}
	return strings.Join(words, " ")
}

func titleCaseWord(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}
