// cmd/copilot/main.go
//
// This is the entry point for the decision copilot.
// Running `copilot` from a project directory opens the four-step wizard
// (Upload → Analysis → Scenarios → Decision) in the terminal.
//
// Flow:
// 1. Load .copilot/config.yaml (optional) and apply flag overrides
// 2. Build the TUI around a fresh wizard session
// 3. Run it until the user quits

package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/decision-copilot/internal/config"
	"github.com/kingrea/decision-copilot/internal/tui"
)

type rootOptions struct {
	configPath  string
	delay       time.Duration
	contentPath string
	watch       bool
	noAltScreen bool
	logPath     string
	logLevel    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "copilot",
		Short:         "Guided decision wizard: upload data, explore questions, model scenarios, read the memo",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return runWizard(cfg, opts.noAltScreen)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: .copilot/config.yaml)")
	flags.DurationVar(&opts.delay, "delay", 0, "Delay before intake opens Analysis (default 1.5s)")
	flags.StringVar(&opts.contentPath, "content", "", "YAML file overriding the on-screen copy")
	flags.BoolVar(&opts.watch, "watch", false, "Reload the content file when it changes")
	cmd.Flags().BoolVar(&opts.noAltScreen, "no-alt-screen", false, "Render inline instead of the alternate screen")
	flags.StringVar(&opts.logPath, "log", "", "Journal file (default: .copilot/logs/journey.log)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Journal level: debug, info, warn or error")

	cmd.AddCommand(newStepsCmd(opts))
	return cmd
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := config.NewConfig(cwd, opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(config.Overrides{
		AutoAdvanceDelay: opts.delay,
		ContentPath:      opts.contentPath,
		WatchContent:     opts.watch,
		LogPath:          opts.logPath,
		LogLevel:         opts.logLevel,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runWizard(cfg *config.Config, noAltScreen bool) error {
	app, err := tui.NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	programOpts := []tea.ProgramOption{}
	if !noAltScreen {
		// Use alternate screen buffer (like vim does)
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(app, programOpts...)

	// Run blocks until the user quits
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
