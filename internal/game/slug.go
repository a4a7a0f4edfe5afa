// SPDX-License-Identifier: MIT

package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug converts a team abbreviation or name into a lowercase ASCII key used
// for logo lookups. Example: "Montréal" -> "montreal", "SF 49ers" -> "sf-49ers".
func Slug(name string) string {
	if name == "" {
		return "team"
	}

	s := strings.ToLower(name)
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}

	var b strings.Builder
	lastWasDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastWasDash = false
		} else if !lastWasDash {
			b.WriteRune('-')
			lastWasDash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "team"
	}
	return slug
}
