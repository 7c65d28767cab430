package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/decision-copilot/internal/content"
	"github.com/kingrea/decision-copilot/internal/wizard"
)

// outputView renders the decision memo through glamour into a scrollable
// viewport. Re-rendering happens only when the memo or width changes.
type outputView struct {
	keys     KeyMap
	memo     content.Memo
	viewport viewport.Model
	width    int
	rendered bool
}

func newOutputView(keys KeyMap, memo content.Memo) *outputView {
	return &outputView{
		keys:     keys,
		memo:     memo,
		viewport: viewport.New(80, 20),
		width:    80,
	}
}

func (v *outputView) SetContent(memo content.Memo) {
	v.memo = memo
	v.rendered = false
}

func (v *outputView) SetSize(width, height int) {
	width = max(20, width)
	if width != v.width {
		v.rendered = false
	}
	v.width = width
	v.viewport.Width = width
	v.viewport.Height = max(5, height-4)
}

// ensureRendered formats the memo if it is stale.
func (v *outputView) ensureRendered() {
	if v.rendered {
		return
	}
	v.viewport.SetContent(renderMarkdown(v.memo.Markdown(), v.width-2))
	v.viewport.GotoTop()
	v.rendered = true
}

func renderMarkdown(md string, wrap int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(20, wrap)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (v *outputView) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, v.keys.Back):
			return navigate(wizard.StepScenarios, "back to scenarios")
		case key.Matches(km, v.keys.Export):
			return setStatus("Export to PDF is not available in this demo")
		case key.Matches(km, v.keys.Share):
			return setStatus("Sharing is not available in this demo")
		}
	}
	v.ensureRendered()
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

func (v *outputView) View() string {
	v.ensureRendered()
	back := mutedStyle.Render("← " + v.keys.Back.Help().Key + " Back to Scenarios")
	actions := hintStyle.Render("e → Export to PDF    S → Share    ↑/↓ scroll")
	return lipgloss.JoinVertical(lipgloss.Left, back, "", v.viewport.View(), actions)
}
