package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/decision-copilot/internal/content"
	"github.com/kingrea/decision-copilot/internal/wizard"
)

const chartBarWidth = 24

// scenariosView shows the lever panel and the projected series. Lever
// positions are local UI state; they never feed the series.
type scenariosView struct {
	keys   KeyMap
	text   content.Scenarios
	spend  int
	freeze bool
	slider progress.Model
	chart  table.Model
	width  int
}

func newScenariosView(keys KeyMap, text content.Scenarios) *scenariosView {
	t := table.New(
		table.WithColumns(chartColumns(text)),
		table.WithFocused(false),
		table.WithHeight(len(text.Series)+1),
	)
	v := &scenariosView{
		keys:   keys,
		slider: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		chart:  t,
	}
	v.SetContent(text)
	return v
}

func chartColumns(text content.Scenarios) []table.Column {
	return []table.Column{
		{Title: "Month", Width: 6},
		{Title: text.BaselineLabel, Width: 10},
		{Title: text.ScenarioLabel, Width: 11},
		{Title: "", Width: chartBarWidth + 2},
	}
}

func (v *scenariosView) SetContent(text content.Scenarios) {
	v.text = text
	v.chart.SetColumns(chartColumns(text))
	v.chart.SetRows(chartRows(text))
	v.chart.SetHeight(len(text.Series) + 1)
	v.reset()
}

func chartRows(text content.Scenarios) []table.Row {
	peak := text.Threshold.Value
	for _, p := range text.Series {
		peak = max(peak, p.Baseline, p.Scenario)
	}
	rows := make([]table.Row, 0, len(text.Series))
	for _, p := range text.Series {
		rows = append(rows, table.Row{
			p.Month,
			fmt.Sprintf("$%d", p.Baseline),
			fmt.Sprintf("$%d", p.Scenario),
			bar(p.Scenario, peak, chartBarWidth),
		})
	}
	return rows
}

func bar(value, peak, width int) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	n := value * width / peak
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func (v *scenariosView) reset() {
	v.spend = v.text.Spend.Default
	v.freeze = v.text.Freeze.Default
}

func (v *scenariosView) SetSize(width, height int) {
	v.width = width
	v.slider.Width = max(10, min(30, width/3))
}

func (v *scenariosView) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	step := max(1, v.text.Spend.Step)
	switch {
	case key.Matches(km, v.keys.Increase):
		v.spend = v.text.Spend.Clamp(v.spend + step)
	case key.Matches(km, v.keys.Decrease):
		v.spend = v.text.Spend.Clamp(v.spend - step)
	case key.Matches(km, v.keys.Toggle):
		v.freeze = !v.freeze
	case key.Matches(km, v.keys.Reset):
		v.reset()
		return setStatus("Scenario levers reset")
	case key.Matches(km, v.keys.Save):
		return setStatus(fmt.Sprintf("Scenario saved: %s %s, %s %s",
			v.text.Spend.Label, spendLabel(v.spend), v.text.Freeze.Label, onOff(v.freeze)))
	case key.Matches(km, v.keys.Generate), key.Matches(km, v.keys.Select):
		return navigate(wizard.StepOutput, "generate memo")
	}
	return nil
}

func spendLabel(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d%%", v)
	}
	return fmt.Sprintf("%d%%", v)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (v *scenariosView) sliderRatio() float64 {
	span := v.text.Spend.Max - v.text.Spend.Min
	if span <= 0 {
		return 0
	}
	return float64(v.spend-v.text.Spend.Min) / float64(span)
}

func (v *scenariosView) View() string {
	spendValue := badStyle.Render(spendLabel(v.spend))
	if v.spend < 0 {
		spendValue = goodStyle.Render(spendLabel(v.spend))
	}
	toggle := mutedStyle.Render("○ off")
	if v.freeze {
		toggle = goodStyle.Render("● on")
	}
	levers := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("⚙ "+v.text.Title),
		"",
		fmt.Sprintf("%s  %s", boldStyle.Render(v.text.Spend.Label), spendValue),
		v.slider.ViewAs(v.sliderRatio()),
		mutedStyle.Render(v.text.Spend.Note),
		"",
		fmt.Sprintf("%s  %s", boldStyle.Render(v.text.Freeze.Label), toggle),
		mutedStyle.Render(v.text.Freeze.Note),
		hintStyle.Render("←/→ spend · space freeze · r reset · w save"),
	)
	leverWidth := max(30, v.width/3)
	leverBox := panelStyle.Width(leverWidth).Render(levers)

	chartHead := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(v.text.ChartTitle),
		"  ",
		badgeStyle.Render(v.text.Badge),
	)
	threshold := badStyle.Render(fmt.Sprintf("--- %s: $%d", v.text.Threshold.Label, v.text.Threshold.Value))
	chartBox := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, chartHead, v.chart.View(), threshold))

	var body string
	if v.width > 0 && v.width < 90 {
		body = lipgloss.JoinVertical(lipgloss.Left, leverBox, chartBox)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, leverBox, " ", chartBox)
	}
	cta := hintStyle.Render(fmt.Sprintf("%s → Generate Final Memo", v.keys.Generate.Help().Key))
	return lipgloss.JoinVertical(lipgloss.Left, body, cta)
}
