package tui

import "github.com/charmbracelet/bubbles/key"

// formKeyMap defines key bindings for the form
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Press  key.Binding
	Create key.Binding
	List   key.Binding
	Assign key.Binding
	Delete key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Press, k.Copy, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Press},
		{k.Create, k.List, k.Assign, k.Delete},
		{k.Copy, k.Help, k.Quit},
	}
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press button"),
		),
		Create: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "create user"),
		),
		List: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "list users"),
		),
		Assign: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "assign role"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete user"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy output"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// popupKeyMap defines key bindings while the error popup is open
type popupKeyMap struct {
	Close key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k popupKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Close, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k popupKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Close, k.Quit}}
}

func newPopupKeyMap() popupKeyMap {
	return popupKeyMap{
		Close: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter/esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
