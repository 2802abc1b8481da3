package browse

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search   key.Binding
	Filter   key.Binding
	Left     key.Binding
	Right    key.Binding
	Sort     key.Binding
	NextView key.Binding
	PrevView key.Binding
	JumpView key.Binding
	Reset    key.Binding
	Quit     key.Binding
	Apply    key.Binding
	Cancel   key.Binding
}

var keys = keyMap{
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/→", "column"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	NextView: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	PrevView: key.NewBinding(
		key.WithKeys("shift+tab"),
	),
	JumpView: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("0-9", "jump"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
	),
}

// help lists the bindings shown in the footer.
func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.Left, k.Sort, k.NextView, k.JumpView, k.Reset, k.Quit}
}
