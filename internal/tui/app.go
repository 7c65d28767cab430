// internal/tui/app.go
//
// This is the main TUI for the decision copilot wizard.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: the App, which holds the wizard controller and the step views
// 2. Update: turns key presses and view intents into controller calls
// 3. View: renders the step indicator, the active step and a log panel
//
// Views never change the wizard themselves. They emit navigateMsg or
// artifactPickedMsg and the App forwards those to the controller, which
// decides whether the move is allowed.

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/kingrea/decision-copilot/internal/config"
	"github.com/kingrea/decision-copilot/internal/content"
	"github.com/kingrea/decision-copilot/internal/intake"
	"github.com/kingrea/decision-copilot/internal/logbook"
	"github.com/kingrea/decision-copilot/internal/wizard"
)

const logPanelLines = 4

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithController injects a preconfigured wizard controller.
func WithController(c *wizard.Controller) AppOption {
	return func(a *App) {
		if c != nil {
			a.controller = c
		}
	}
}

// WithLogbook injects the journal instead of opening the configured file.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		if lb != nil {
			a.logbook = lb
		}
	}
}

// WithContent overrides the display content.
func WithContent(c content.Content) AppOption {
	return func(a *App) {
		a.content = c
		a.contentSet = true
	}
}

// WithContentUpdates feeds reloads from an external watcher.
func WithContentUpdates(updates <-chan content.Update) AppOption {
	return func(a *App) {
		a.contentUpdates = updates
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config     *config.Config
	controller *wizard.Controller
	logbook    *logbook.Logbook
	sessionID  string

	content        content.Content
	contentSet     bool
	contentUpdates <-chan content.Update
	stopWatch      context.CancelFunc

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	upload    *uploadView
	analysis  *analysisView
	scenarios *scenariosView
	output    *outputView

	statusMsg     string
	lastLogStatus string
	ownsLogbook   bool

	width  int
	height int
}

// NewApp creates a new App instance from cfg.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("tui: config is required")
	}
	app := &App{
		config:    cfg,
		sessionID: uuid.NewString(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(colorAccent))),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	if app.logbook == nil {
		level, err := logbook.ParseLevel(cfg.Project.Logging.Level)
		if err != nil {
			return nil, err
		}
		lb, err := logbook.New(cfg.LogPath(), logbook.WithLevel(level), logbook.WithSession(app.sessionID))
		if err != nil {
			return nil, err
		}
		app.logbook = lb
		app.ownsLogbook = true
	}

	if !app.contentSet {
		c, err := content.Load(cfg.ContentPath())
		if err != nil {
			app.Close()
			return nil, err
		}
		app.content = c
	}

	if app.contentUpdates == nil && cfg.WatchContent() {
		ctx, cancel := context.WithCancel(context.Background())
		updates, err := content.Watch(ctx, cfg.ContentPath())
		if err != nil {
			cancel()
			app.logWarn("Content watch disabled: %v", err)
		} else {
			app.contentUpdates = updates
			app.stopWatch = cancel
		}
	}

	if app.controller == nil {
		app.controller = wizard.New(
			wizard.WithDelay(cfg.AutoAdvanceDelay()),
			wizard.WithLogger(app.logbook),
		)
	}

	filter := intake.NewFilter(cfg.AcceptedExtensions()...)
	app.upload = newUploadView(app.keys, filter, cfg.StartDir(), app.content.Upload)
	app.analysis = newAnalysisView(app.keys, app.content.Analysis)
	app.scenarios = newScenariosView(app.keys, app.content.Scenarios)
	app.output = newOutputView(app.keys, app.content.Memo)

	app.logInfo("Session opened · step: %s", app.controller.Current().Label())
	return app, nil
}

// Controller exposes the wizard state for callers embedding the App.
func (a *App) Controller() *wizard.Controller {
	return a.controller
}

// Close cancels pending work and releases the journal.
func (a *App) Close() {
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
	}
	if a.controller != nil {
		a.controller.Close()
	}
	if a.logbook != nil {
		a.logInfo("Session closed")
		if a.ownsLogbook {
			_ = a.logbook.Close()
		}
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logDebug(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Debug(format, args...)
}

func (a *App) logProgress(status string) {
	status = strings.TrimSpace(status)
	if status == "" || status == a.lastLogStatus {
		return
	}
	a.lastLogStatus = status
	a.logInfo("%s", status)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.upload.Init(),
		waitForAdvance(a.controller.Changes()),
		waitForContent(a.contentUpdates),
	)
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		inner := max(20, msg.Width-6)
		body := max(10, msg.Height-logPanelLines-12)
		a.upload.SetSize(inner, body)
		a.analysis.SetSize(inner, body)
		a.scenarios.SetSize(inner, body)
		a.output.SetSize(inner, body)
		return a, nil

	case navigateMsg:
		a.goTo(msg.step, msg.reason)
		return a, nil

	case artifactPickedMsg:
		artifact := msg.artifact
		a.controller.RecordArtifact(&artifact)
		a.statusMsg = fmt.Sprintf("Processing %s (%s)…", artifact.Name, artifact.SizeLabel())
		a.logDebug("Intake · via %s", msg.via)
		return a, a.spinner.Tick

	case autoAdvanceMsg:
		if s := a.controller.Session(); s.Artifact != nil {
			a.statusMsg = fmt.Sprintf("Analysis ready for %s", s.Artifact.Name)
			a.logProgress(a.statusMsg)
		}
		return a, waitForAdvance(a.controller.Changes())

	case contentReloadedMsg:
		if msg.update.Err != nil {
			a.statusMsg = fmt.Sprintf("Content reload failed: %v", msg.update.Err)
			a.logWarn("%s", a.statusMsg)
		} else {
			a.applyContent(msg.update.Content)
			a.statusMsg = "Content reloaded"
			a.logInfo("Content reloaded from %s", a.config.ContentPath())
		}
		return a, waitForContent(a.contentUpdates)

	case statusMsg:
		a.statusMsg = string(msg)
		a.logProgress(a.statusMsg)
		return a, nil

	case spinner.TickMsg:
		if !a.controller.Pending() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		current := a.controller.Current()
		if current == wizard.StepUpload && (msg.Paste || a.upload.capturing()) {
			return a, a.upload.Update(msg)
		}
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		case key.Matches(msg, a.keys.Step1):
			a.goTo(wizard.StepUpload, "step indicator")
			return a, nil
		case key.Matches(msg, a.keys.Step2):
			a.goTo(wizard.StepAnalysis, "step indicator")
			return a, nil
		case key.Matches(msg, a.keys.Step3):
			a.goTo(wizard.StepScenarios, "step indicator")
			return a, nil
		case key.Matches(msg, a.keys.Step4):
			a.goTo(wizard.StepOutput, "step indicator")
			return a, nil
		case key.Matches(msg, a.keys.NextStep):
			a.goTo(current.Next(), "step indicator")
			return a, nil
		case key.Matches(msg, a.keys.PrevStep):
			a.goTo(current.Prev(), "step indicator")
			return a, nil
		}
		return a, a.activeUpdate(current, msg)
	}

	// Non-key messages: the file picker needs its directory reads even
	// when another step is showing.
	cmds := []tea.Cmd{a.upload.Update(msg)}
	if current := a.controller.Current(); current != wizard.StepUpload {
		cmds = append(cmds, a.activeUpdate(current, msg))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) activeUpdate(step wizard.Step, msg tea.Msg) tea.Cmd {
	switch step {
	case wizard.StepUpload:
		return a.upload.Update(msg)
	case wizard.StepAnalysis:
		return a.analysis.Update(msg)
	case wizard.StepScenarios:
		return a.scenarios.Update(msg)
	case wizard.StepOutput:
		return a.output.Update(msg)
	}
	return nil
}

// goTo forwards a navigation intent. Refusals are silent: only the journal
// records them.
func (a *App) goTo(step wizard.Step, reason string) {
	from := a.controller.Current()
	if !a.controller.GoToStep(step) {
		a.logDebug("Navigation · %s ignored (%s)", step.Label(), reason)
		return
	}
	if from != step {
		a.statusMsg = ""
		a.logDebug("Navigation · %s via %s", step.Label(), reason)
	}
}

func (a *App) applyContent(c content.Content) {
	a.content = c
	a.upload.SetContent(c.Upload)
	a.analysis.SetContent(c.Analysis)
	a.scenarios.SetContent(c.Scenarios)
	a.output.SetContent(c.Memo)
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	session := a.controller.Session()

	var body string
	switch session.Step {
	case wizard.StepUpload:
		body = a.upload.View(a.controller.Pending(), a.spinner.View())
	case wizard.StepAnalysis:
		body = a.analysis.View()
	case wizard.StepScenarios:
		body = a.scenarios.View()
	case wizard.StepOutput:
		body = a.output.View()
	}

	sections := []string{
		a.renderHeader(width),
		panelStyle.Width(max(20, width-2)).Render(body),
	}
	if logPanel := a.renderLogPanel(width); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := footerStyle.Render(a.statusMsg)
	sections = append(sections, footer, a.help.View(a.keys))
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader(width int) string {
	brand := brandStyle.Render("⬡ " + a.content.Header.Product)
	user := userStyle.Render("● " + a.content.Header.User)
	nav := navStyle.Render(a.renderStepIndicator())
	gap := max(1, width-lipgloss.Width(brand)-lipgloss.Width(nav)-lipgloss.Width(user)-2)
	left := max(1, gap/2)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		brand,
		strings.Repeat(" ", left),
		nav,
		strings.Repeat(" ", max(1, gap-left)),
		user,
	)
}

func (a *App) renderStepIndicator() string {
	current := a.controller.Current()
	parts := make([]string, 0, len(wizard.Steps))
	for i, step := range wizard.Steps {
		label := fmt.Sprintf("%d %s", i+1, step.Label())
		switch {
		case step == current:
			parts = append(parts, stepActiveStyle.Render(label))
		case a.controller.IsStepReachable(step):
			parts = append(parts, stepReachableStyle.Render(label))
		default:
			parts = append(parts, stepUnreachableStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (a *App) renderLogPanel(width int) string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent).
		Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(colorSubtle).
		MaxWidth(max(20, width-6)).
		Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}
