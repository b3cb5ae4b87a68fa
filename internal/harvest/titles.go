// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Title derives a display title from an example filename: the extension is
// dropped, underscores become spaces, and each word is capitalized with the
// rest lowercased. overrides maps a stem to a fixed title.
func Title(filename string, overrides map[string]string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if t, ok := overrides[stem]; ok {
		return t
	}
	words := strings.Fields(strings.ReplaceAll(stem, "_", " "))
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) > 0 {
		runes[0] = unicode.ToTitle(runes[0])
	}
	return string(runes)
}

// SubdirTitle title-cases a real-world subdirectory name: underscores become
// spaces and every letter that follows a non-letter is uppercased, all
// others lowercased ("llm_kv2cache" -> "Llm Kv2Cache").
func SubdirTitle(subdir string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.ReplaceAll(subdir, "_", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
