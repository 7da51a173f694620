package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	CycleView  key.Binding
	Focus      key.Binding
	Theme      key.Binding
	SyncScroll key.Binding
	Wrap       key.Binding
	Help       key.Binding
	Diff       key.Binding
	Save       key.Binding
	Export     key.Binding
	Copy       key.Binding
	Open       key.Binding
	Find       key.Binding
	FindNext   key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Close      key.Binding

	// diff overlay
	DiffMode       key.Binding
	DiffLeft       key.Binding
	DiffRight      key.Binding
	DiffLeftOther  key.Binding
	DiffRightOther key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
		CycleView:  key.NewBinding(key.WithKeys("alt+v"), key.WithHelp("alt+v", "split/editor/preview")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Theme:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		SyncScroll: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "sync scroll")),
		Wrap:       key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "wrap")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Diff:       key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "diff")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Export:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export html")),
		Copy:       key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "copy")),
		Open:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		Find:       key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find")),
		FindNext:   key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "next match")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),

		DiffMode:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "unified/side-by-side")),
		DiffLeft:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "scroll saved")),
		DiffRight:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "scroll saved")),
		DiffLeftOther:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "scroll current")),
		DiffRightOther: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "scroll current")),
	}
}
