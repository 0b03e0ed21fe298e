package seed

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"
)

var loremWords = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod
tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam quis nostrud exercitation
ullamco laboris nisi aliquip ex ea commodo consequat duis aute irure in reprehenderit voluptate velit
esse cillum fugiat nulla pariatur excepteur sint occaecat cupidatat non proident sunt culpa qui officia
deserunt mollit anim id est laborum`) //nolint: gochecknoglobals

// lorem produces placeholder text from a deterministic source.
type lorem struct {
	rnd *rand.Rand
}

func (l lorem) between(lo, hi int) int {
	return lo + l.rnd.IntN(hi-lo+1)
}

func (l lorem) sentence() string {
	n := l.between(5, 10)
	words := make([]string, n)
	for i := range words {
		words[i] = loremWords[l.rnd.IntN(len(loremWords))]
	}

	first, size := utf8.DecodeRuneInString(words[0])
	words[0] = string(unicode.ToUpper(first)) + words[0][size:]

	return strings.Join(words, " ") + "."
}

func (l lorem) paragraph() string {
	n := l.between(3, 6)
	sentences := make([]string, n)
	for i := range sentences {
		sentences[i] = l.sentence()
	}

	return strings.Join(sentences, " ")
}

func (l lorem) paragraphs(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = l.paragraph()
	}

	return strings.Join(out, "\n\n")
}
