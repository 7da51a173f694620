package state

// TagKind enumerates the document status chips.
type TagKind int

const (
	// Stable ordering for display: Modified, Words, Lines, Chars, Read time
	MODIFIED TagKind = iota
	WORDS
	LINES
	CHARS
	READ_MIN
)

// Tag represents a single status chip. Value carries the counter; MODIFIED
// uses Value = 0.
type Tag struct {
	Kind  TagKind
	Value int
}
