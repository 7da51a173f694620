package document

import (
	"strings"
	"testing"

	doc "mdsplit/internal/document"
	"mdsplit/internal/tui/state"
)

func TestRenderTagsIntegration(t *testing.T) {
	st := doc.ComputeStats("# Hello\n\nsome words here")
	out := RenderTags(st, true, state.ThemeDark, true)

	wants := []string{"[Modified]", "[5 words]", "[3 lines]", "[1 min read]"}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("expected %q in output: %s", w, out)
		}
	}
}
