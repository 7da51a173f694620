package util

import (
	"mdsplit/internal/document"
	"mdsplit/internal/tui/state"
)

// ComputeTags returns the status chips for a document in a stable order:
//
//	Modified, Words, Lines, Chars, Read time
//
// Modified appears only when the buffer differs from the last save. Read
// time is omitted for empty documents.
func ComputeTags(st document.Stats, modified bool) []state.Tag {
	tags := make([]state.Tag, 0, 5)
	if modified {
		tags = append(tags, state.Tag{Kind: state.MODIFIED})
	}
	tags = append(tags,
		state.Tag{Kind: state.WORDS, Value: st.Words},
		state.Tag{Kind: state.LINES, Value: st.Lines},
		state.Tag{Kind: state.CHARS, Value: st.Chars},
	)
	if st.ReadMinutes > 0 {
		tags = append(tags, state.Tag{Kind: state.READ_MIN, Value: st.ReadMinutes})
	}
	return tags
}
