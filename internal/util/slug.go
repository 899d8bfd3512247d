package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks folds accented letters to their base letter: "é" becomes "e".
// Chains carry state, so each call gets its own.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Slugify turns a palette name into a lowercase ASCII identifier usable as a
// CSS custom property prefix or a file name. Runs of anything other than
// a-z and 0-9 collapse to one hyphen, with none at either end.
func Slugify(name string) string {
	folded, _, err := transform.String(stripMarks(), strings.ToLower(name))
	if err != nil {
		folded = strings.ToLower(name)
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
