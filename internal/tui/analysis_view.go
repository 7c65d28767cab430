package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/decision-copilot/internal/content"
	"github.com/kingrea/decision-copilot/internal/wizard"
)

// questionItem implements list.Item for a suggested question
type questionItem struct {
	rank int
	q    content.Question
}

func (i questionItem) Title() string {
	return fmt.Sprintf("%s %s", questionIcon(i.q.Type), i.q.Text)
}

func (i questionItem) Description() string {
	return fmt.Sprintf("%s Impact · Ranked #%d · AI Logic: %s", i.q.Impact, i.rank, i.q.Reasoning)
}

func (i questionItem) FilterValue() string { return i.q.Text }

func questionIcon(t content.QuestionType) string {
	switch t {
	case content.QuestionRisk:
		return badStyle.Render("▲")
	case content.QuestionOpportunity:
		return goodStyle.Render("↗")
	default:
		return lipgloss.NewStyle().Foreground(colorAccent).Render("✦")
	}
}

type analysisView struct {
	keys     KeyMap
	text     content.Analysis
	list     list.Model
	selected string
}

func newAnalysisView(keys KeyMap, text content.Analysis) *analysisView {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	v := &analysisView{keys: keys, list: l}
	v.SetContent(text)
	return v
}

func (v *analysisView) SetContent(text content.Analysis) {
	v.text = text
	items := make([]list.Item, len(text.Questions))
	for i, q := range text.Questions {
		items[i] = questionItem{rank: i + 1, q: q}
	}
	v.list.SetItems(items)
}

func (v *analysisView) SetSize(width, height int) {
	v.list.SetSize(max(20, width), max(6, height-8))
}

func (v *analysisView) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, v.keys.Select):
			item, ok := v.list.SelectedItem().(questionItem)
			if !ok {
				return nil
			}
			v.selected = item.q.ID
			return navigate(wizard.StepScenarios, "question "+item.q.ID)
		case key.Matches(msg, v.keys.Skip):
			return navigate(wizard.StepScenarios, "skip analysis")
		}
	}
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

func (v *analysisView) View() string {
	head := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(v.text.Title),
		subtitleStyle.Render(v.text.Subtitle),
	)
	hint := hintStyle.Render(fmt.Sprintf("enter → explore question    %s → skip analysis", v.keys.Skip.Help().Key))
	return lipgloss.JoinVertical(lipgloss.Left, head, "", v.list.View(), hint)
}
