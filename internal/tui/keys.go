package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the wizard
type KeyMap struct {
	// Step indicator
	Step1    key.Binding
	Step2    key.Binding
	Step3    key.Binding
	Step4    key.Binding
	NextStep key.Binding
	PrevStep key.Binding

	// Upload
	TypePath key.Binding
	Remove   key.Binding

	// Analysis
	Skip key.Binding

	// Scenarios
	Increase key.Binding
	Decrease key.Binding
	Toggle   key.Binding
	Reset    key.Binding
	Save     key.Binding
	Generate key.Binding

	// Output
	Back   key.Binding
	Export key.Binding
	Share  key.Binding

	Select key.Binding
	Escape key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Step1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "upload")),
		Step2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "analysis")),
		Step3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "scenarios")),
		Step4:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "decision")),
		NextStep: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next step")),
		PrevStep: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev step")),

		TypePath: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "type a path")),
		Remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove file")),

		Skip: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip analysis")),

		Increase: key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→", "more spend")),
		Decrease: key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←", "less spend")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "f"), key.WithHelp("space", "toggle freeze")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Save:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save scenario")),
		Generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate memo")),

		Back:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back to scenarios")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Share:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "share")),

		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextStep, k.Select, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Step1, k.Step2, k.Step3, k.Step4, k.NextStep, k.PrevStep},
		{k.TypePath, k.Remove, k.Skip, k.Select},
		{k.Increase, k.Decrease, k.Toggle, k.Reset, k.Save, k.Generate},
		{k.Back, k.Export, k.Share, k.Help, k.Quit},
	}
}
