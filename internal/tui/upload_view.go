package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/decision-copilot/internal/content"
	"github.com/kingrea/decision-copilot/internal/intake"
	"github.com/kingrea/decision-copilot/internal/wizard"
)

type uploadMode int

const (
	uploadModePicker uploadMode = iota // browsing with the file picker
	uploadModeInput                    // typing or pasting a path
)

// uploadView is the intake screen. It keeps its own notion of the selected
// file; removing it here does not touch the controller's artifact.
type uploadView struct {
	keys   KeyMap
	filter intake.Filter
	text   content.Upload

	picker filepicker.Model
	input  textinput.Model
	health progress.Model

	mode     uploadMode
	selected *wizard.Artifact
	hint     string
	width    int
}

func newUploadView(keys KeyMap, filter intake.Filter, startDir string, text content.Upload) *uploadView {
	fp := filepicker.New()
	fp.AllowedTypes = filter.Extensions()
	fp.CurrentDirectory = startDir
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = 8

	ti := textinput.New()
	ti.Placeholder = "/path/to/data.csv"
	ti.Prompt = "Path › "
	ti.CharLimit = 1024
	ti.Width = 60

	return &uploadView{
		keys:   keys,
		filter: filter,
		text:   text,
		picker: fp,
		input:  ti,
		health: progress.New(progress.WithSolidFill(string(colorGreen)), progress.WithoutPercentage()),
		mode:   uploadModePicker,
	}
}

func (v *uploadView) Init() tea.Cmd {
	return v.picker.Init()
}

// capturing reports whether keystrokes belong to the path input.
func (v *uploadView) capturing() bool {
	return v.mode == uploadModeInput
}

func (v *uploadView) SetContent(text content.Upload) {
	v.text = text
}

func (v *uploadView) SetSize(width, height int) {
	v.width = width
	v.picker.Height = max(4, height-18)
	v.input.Width = max(20, width-12)
	v.health.Width = max(10, min(40, width-30))
}

func (v *uploadView) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.Paste {
			return v.accept(string(msg.Runes), "drop")
		}
		if v.mode == uploadModeInput {
			switch {
			case key.Matches(msg, v.keys.Select):
				return v.accept(v.input.Value(), "path")
			case key.Matches(msg, v.keys.Escape):
				v.closeInput()
				return nil
			}
			var cmd tea.Cmd
			v.input, cmd = v.input.Update(msg)
			return cmd
		}
		// With a file selected the input and picker are hidden, so only
		// Remove applies.
		if v.selected != nil {
			if key.Matches(msg, v.keys.Remove) {
				v.hint = fmt.Sprintf("Removed %s", v.selected.Name)
				v.selected = nil
			}
			return nil
		}
		if key.Matches(msg, v.keys.TypePath) {
			v.mode = uploadModeInput
			v.hint = ""
			return v.input.Focus()
		}
	}

	var cmd tea.Cmd
	v.picker, cmd = v.picker.Update(msg)
	if ok, path := v.picker.DidSelectFile(msg); ok {
		return tea.Batch(cmd, v.accept(path, "picker"))
	}
	if ok, path := v.picker.DidSelectDisabledFile(msg); ok {
		v.hint = fmt.Sprintf("%s is not supported (%s)", filepath.Base(path), v.filter.Describe())
	}
	return cmd
}

func (v *uploadView) accept(raw, via string) tea.Cmd {
	a, err := v.filter.Resolve(raw)
	if err != nil {
		v.hint = intakeHint(err)
		return nil
	}
	v.selected = a
	v.hint = ""
	v.closeInput()
	return pickArtifact(*a, via)
}

func (v *uploadView) closeInput() {
	v.mode = uploadModePicker
	v.input.Blur()
	v.input.Reset()
}

func intakeHint(err error) string {
	switch {
	case errors.Is(err, intake.ErrEmptyPath):
		return "Drop a file or type a path first"
	case errors.Is(err, intake.ErrUnsupportedType), errors.Is(err, intake.ErrNotAFile):
		return strings.TrimPrefix(err.Error(), "intake: ")
	default:
		return fmt.Sprintf("Could not open file: %v", errors.Unwrap(err))
	}
}

func (v *uploadView) View(pending bool, spin string) string {
	width := max(40, v.width)
	head := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(v.text.Headline),
		subtitleStyle.Width(min(width, 72)).Align(lipgloss.Center).Render(v.text.Tagline),
	)

	var zone string
	if v.selected != nil {
		lines := []string{
			goodStyle.Render("✔ ") + boldStyle.Render(v.selected.Name),
			mutedStyle.Render(v.selected.SizeLabel()),
			hintStyle.Render(fmt.Sprintf("%s remove file", v.keys.Remove.Help().Key)),
		}
		zone = strings.Join(lines, "\n")
	} else {
		lines := []string{
			boldStyle.Render(v.text.Prompt),
			mutedStyle.Render(v.text.Supports),
			"",
		}
		if v.mode == uploadModeInput {
			lines = append(lines, v.input.View(), mutedStyle.Render("enter → use path    esc → back to browser"))
		} else {
			lines = append(lines,
				mutedStyle.Render("Browse: "+v.picker.CurrentDirectory),
				v.picker.View(),
				mutedStyle.Render("Drop a file onto the terminal or press p to type a path"),
			)
		}
		zone = strings.Join(lines, "\n")
	}
	sections := []string{head, "", dropZoneStyle.Width(min(width, 80)).Render(zone)}

	if v.selected != nil {
		sections = append(sections, v.renderHealth())
		if pending {
			sections = append(sections, hintStyle.Render(spin+" Processing upload…"))
		}
	}
	if v.hint != "" {
		sections = append(sections, warnStyle.Render(v.hint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *uploadView) renderHealth() string {
	hc := v.text.HealthCheck
	title := warnStyle.Render("⚠ ") + boldStyle.Render(hc.Title)
	score := goodStyle.Render(fmt.Sprintf("Score: %d/%d", hc.Score, hc.MaxScore))
	lines := []string{
		title + "  " + score,
		v.health.ViewAs(hc.Ratio()),
	}
	for _, row := range hc.Rows {
		value := boldStyle.Render(row.Value)
		if row.Tone == "warn" {
			value = warnStyle.Render(row.Value)
		}
		lines = append(lines, fmt.Sprintf("%-22s %s", row.Label, value))
	}
	return panelStyle.MarginTop(1).Render(strings.Join(lines, "\n"))
}
