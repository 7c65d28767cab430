package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/decision-copilot/internal/content"
	"github.com/kingrea/decision-copilot/internal/wizard"
)

// navigateMsg is the "go to step" intent views emit.
type navigateMsg struct {
	step   wizard.Step
	reason string
}

// artifactPickedMsg is the intake intent: a file was dropped or selected.
type artifactPickedMsg struct {
	artifact wizard.Artifact
	via      string
}

// autoAdvanceMsg reports that the controller's deferred transition fired.
type autoAdvanceMsg struct{}

// contentReloadedMsg carries a reload from the content watcher.
type contentReloadedMsg struct {
	update content.Update
}

// statusMsg sets the footer line.
type statusMsg string

func navigate(step wizard.Step, reason string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{step: step, reason: reason}
	}
}

func pickArtifact(a wizard.Artifact, via string) tea.Cmd {
	return func() tea.Msg {
		return artifactPickedMsg{artifact: a, via: via}
	}
}

func setStatus(text string) tea.Cmd {
	return func() tea.Msg {
		return statusMsg(text)
	}
}

// waitForAdvance blocks on the controller's change channel. A closed
// channel yields no message.
func waitForAdvance(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return autoAdvanceMsg{}
	}
}

func waitForContent(updates <-chan content.Update) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return contentReloadedMsg{update: u}
	}
}
