// Package textnorm normalizes club names for matching. Resolution quality
// lives or dies on this: "Grêmio FBPA", "gremio" and "GREMIO FBPA " must
// all map to the same key.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Club suffix tokens dropped from keys. "FC" and friends carry no
// identity; "sao paulo fc" and "sao paulo" are the same club.
var suffixTokens = map[string]struct{}{
	"fc":   {},
	"sc":   {},
	"ac":   {},
	"ec":   {},
	"cf":   {},
	"cr":   {},
	"se":   {},
	"club": {},
}

var suffixPhrases = []string{
	"esporte clube",
	"futebol clube",
	"clube de regatas",
}

// TeamKey produces the canonical lookup key for a club name: lowercased,
// accents stripped, punctuation folded to spaces, club suffix tokens
// removed, whitespace collapsed.
func TeamKey(raw string) string {
	folded := FoldASCII(raw)
	if folded == "" {
		return ""
	}

	for _, phrase := range suffixPhrases {
		folded = strings.ReplaceAll(folded, phrase, " ")
	}

	fields := strings.Fields(folded)
	kept := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, drop := suffixTokens[field]; drop {
			continue
		}
		kept = append(kept, field)
	}

	// A name made entirely of suffix tokens keeps them; an empty key
	// matches nothing.
	if len(kept) == 0 {
		kept = fields
	}

	return strings.Join(kept, " ")
}

// FoldASCII lowercases, strips accents and folds punctuation to spaces
// without any token surgery. Context strings go through this, club names
// go through TeamKey.
func FoldASCII(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return ""
	}

	stripped, _, err := transform.String(accentStripper, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(' ')
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
