package game

import (
	"strings"
	"unicode"
	"unicode/utf8"

	petname "github.com/dustinkirkland/golang-petname"
)

// suggestName proposes a habitat name such as "Quiet Lobster".
func suggestName() string {
	words := strings.Fields(petname.Generate(2, " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
