// Package ident converts free-text titles into PascalCase Solidity
// identifier fragments, normalizing Unicode composition first so
// visually identical titles always sanitize to the same identifier.
package ident

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Pascalize derives a PascalCase identifier fragment from title: runs of
// Unicode letters and digits become words, every other rune is a word
// boundary, and each word's first rune is upper-cased. It reports
// ok=false if title contains no identifier characters at all.
func Pascalize(title string) (ident string, ok bool) {
	normalized := norm.NFC.String(title)

	var b strings.Builder
	atWordStart := true
	for _, r := range normalized {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			atWordStart = true
			continue
		}
		if atWordStart {
			b.WriteRune(unicode.ToUpper(r))
			atWordStart = false
		} else {
			b.WriteRune(r)
		}
	}

	out := b.String()
	if out == "" {
		return "", false
	}
	if unicode.IsDigit(firstRune(out)) {
		out = "_" + out
	}
	return out, true
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
