package document

import (
	"strings"
	"unicode/utf8"
)

// wordsPerMinute is the reading speed used for ReadMinutes.
const wordsPerMinute = 200

// Stats summarizes a document for the status bar.
type Stats struct {
	Words       int
	Lines       int
	Chars       int
	ReadMinutes int
}

// ComputeStats counts words, lines and runes in text.
func ComputeStats(text string) Stats {
	words := len(strings.Fields(text))
	st := Stats{
		Words: words,
		Lines: strings.Count(text, "\n") + 1,
		Chars: utf8.RuneCountInString(text),
	}
	if words > 0 {
		st.ReadMinutes = (words + wordsPerMinute - 1) / wordsPerMinute
	}
	return st
}
