package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// searchFolder strips combining marks so "Crème" and "creme" normalize
// to the same bytes.
var searchFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldSearchText lowercases the text and removes diacritics. Both the
// stored search column and incoming queries go through it, so matching
// is accent-insensitive regardless of how the user typed the accents.
func FoldSearchText(text string) string {
	folded, _, err := transform.String(searchFolder, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}
