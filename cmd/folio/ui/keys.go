package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Prev         key.Binding
	Next         key.Binding
	Toggle       key.Binding
	PanelUp      key.Binding
	PanelDown    key.Binding
	NextSemester key.Binding
	PrevSemester key.Binding
	Semester     key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Top          key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous card"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next card"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous image"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next image"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "show more/less"),
		),
		PanelUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "scroll text up"),
		),
		PanelDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "scroll text down"),
		),
		NextSemester: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next semester"),
		),
		PrevSemester: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous semester"),
		),
		Semester: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick semester"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Next, k.Toggle, k.NextSemester, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top},
		{k.Prev, k.Next, k.Toggle, k.PanelUp, k.PanelDown},
		{k.NextSemester, k.PrevSemester, k.Semester},
		{k.Help, k.Quit},
	}
}

// viewportKeys keeps only paging on the page viewport; arrows and letters
// belong to card navigation.
func viewportKeys(k keyMap) viewport.KeyMap {
	return viewport.KeyMap{
		PageUp:   k.PageUp,
		PageDown: k.PageDown,
	}
}
