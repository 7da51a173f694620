package state

// splitGutter is the separator column plus one cell of slack on each side.
const splitGutter = 3

// FitsSplit reports whether both panes get at least MinCol columns.
func FitsSplit(s UIState) bool {
	return s.Width >= 2*s.MinCol+splitGutter
}

// ToggleWrap flips the Wrap flag and returns a new state copy.
func ToggleWrap(s UIState) UIState {
	s.Wrap = !s.Wrap
	s.EditorHScroll = 0
	if s.Wrap {
		s = SetNotice(s, "Wrap: On")
	} else {
		s = SetNotice(s, "Wrap: Off")
	}
	return s
}

// ToggleFocus moves focus to the other pane when both are visible.
func ToggleFocus(s UIState) UIState {
	if s.Layout != Split {
		return s
	}
	if s.Focus == EDITOR {
		s.Focus = PREVIEW
	} else {
		s.Focus = EDITOR
	}
	return s
}

// CycleLayout steps Split -> EditorOnly -> PreviewOnly. Split is skipped with
// a notice when the terminal is too narrow.
func CycleLayout(s UIState) UIState {
	next := (s.Layout + 1) % 3
	if next == Split && !FitsSplit(s) {
		next = EditorOnly
		s = SetNotice(s, "Narrow width: split view unavailable")
	} else {
		s = SetNotice(s, "View: "+next.String())
	}
	return setLayout(s, next)
}

func setLayout(s UIState, l Layout) UIState {
	s.Layout = l
	switch l {
	case EditorOnly:
		s.Focus = EDITOR
	case PreviewOnly:
		s.Focus = PREVIEW
	}
	return s
}

// Resize updates the terminal size and falls back to the editor alone if the
// split no longer fits.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	if s.Layout == Split && !FitsSplit(s) {
		s = setLayout(s, EditorOnly)
		s = SetNotice(s, "Narrow width: showing editor only")
	}
	return s
}

// ToggleTheme switches the preview between dark and light styles.
func ToggleTheme(s UIState) UIState {
	if s.Theme == ThemeLight {
		s.Theme = ThemeDark
	} else {
		s.Theme = ThemeLight
	}
	return SetNotice(s, "Theme: "+s.Theme)
}

// ToggleSyncScroll toggles synchronized pane scrolling.
func ToggleSyncScroll(s UIState) UIState {
	s.SyncScroll = !s.SyncScroll
	if s.SyncScroll {
		return SetNotice(s, "Sync scroll: On")
	}
	return SetNotice(s, "Sync scroll: Off")
}

// ToggleView switches between Unified and SideBySide diff views.
func ToggleView(s UIState) UIState {
	if s.DiffView == Unified {
		if !FitsSplit(s) {
			return SetNotice(s, "Narrow width: using unified view")
		}
		s.DiffView = SideBySide
	} else {
		s.DiffView = Unified
	}
	return s
}

// ToggleHelp shows or hides the key help. Opening it closes the diff.
func ToggleHelp(s UIState) UIState {
	s.ShowHelp = !s.ShowHelp
	if s.ShowHelp {
		s.ShowDiff = false
	}
	return s
}

// ToggleDiff shows or hides the saved-vs-current diff. Opening it closes help
// and resets its horizontal scroll.
func ToggleDiff(s UIState) UIState {
	s.ShowDiff = !s.ShowDiff
	if s.ShowDiff {
		s.ShowHelp = false
		s.ScrollHLeft, s.ScrollHRight = 0, 0
		if s.DiffView == SideBySide && !FitsSplit(s) {
			s.DiffView = Unified
		}
	}
	return s
}

// ScrollLeft adjusts horizontal scroll for the left or right diff column.
func ScrollLeft(s UIState, fast bool, leftColumn bool) UIState {
	delta := 1
	if fast {
		delta = 8
	}
	if leftColumn {
		s.ScrollHLeft = max(0, s.ScrollHLeft-delta)
	} else {
		s.ScrollHRight = max(0, s.ScrollHRight-delta)
	}
	return s
}

// ScrollRight adjusts horizontal scroll for the left or right diff column.
func ScrollRight(s UIState, fast bool, leftColumn bool) UIState {
	delta := 1
	if fast {
		delta = 8
	}
	if leftColumn {
		s.ScrollHLeft += delta
	} else {
		s.ScrollHRight += delta
	}
	return s
}

// EnsureColumnVisible scrolls the unwrapped editor horizontally so the cursor
// column lies inside a window of width runes.
func EnsureColumnVisible(s UIState, width int) UIState {
	if s.Wrap || width <= 0 {
		s.EditorHScroll = 0
		return s
	}
	if s.CursorCol < s.EditorHScroll {
		s.EditorHScroll = s.CursorCol
	}
	if s.CursorCol >= s.EditorHScroll+width {
		s.EditorHScroll = s.CursorCol - width + 1
	}
	return s
}

// SetNotice sets an informational status message.
func SetNotice(s UIState, msg string) UIState {
	s.Notice = msg
	s.NoticeErr = false
	return s
}

// SetError sets a status message styled as an error.
func SetError(s UIState, msg string) UIState {
	s.Notice = msg
	s.NoticeErr = true
	return s
}

// StartSearch opens the find prompt, keeping the previous query.
func StartSearch(s UIState) UIState {
	s.Searching = true
	return s
}

// SearchInput appends typed runes to the query.
func SearchInput(s UIState, r []rune) UIState {
	s.Query += string(r)
	return s
}

// SearchBackspace removes the last rune of the query.
func SearchBackspace(s UIState) UIState {
	if r := []rune(s.Query); len(r) > 0 {
		s.Query = string(r[:len(r)-1])
	}
	return s
}

// EndSearch closes the prompt. cancel also clears the query.
func EndSearch(s UIState, cancel bool) UIState {
	s.Searching = false
	if cancel {
		s.Query = ""
	}
	return s
}
