// internal/config/config.go
//
// This package handles configuration for the copilot wizard.
// Settings live in an optional .copilot/config.yaml inside the directory the
// user launched from. The file is only ever read; a missing file means
// defaults.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/decision-copilot/internal/intake"
)

const (
	// CopilotDir is the per-project directory holding config and logs
	CopilotDir = ".copilot"

	defaultAutoAdvanceDelay = 1500 * time.Millisecond
	defaultLogLevel         = "info"
)

// WizardConfig tunes the step controller.
type WizardConfig struct {
	AutoAdvanceDelay time.Duration `yaml:"auto_advance_delay"`
}

// IntakeConfig controls which files the upload step offers.
type IntakeConfig struct {
	AcceptedExtensions []string `yaml:"accepted_extensions,omitempty"`
	StartDir           string   `yaml:"start_dir,omitempty"`
}

// ContentConfig points at an alternate display content file.
type ContentConfig struct {
	Path  string `yaml:"path,omitempty"`
	Watch bool   `yaml:"watch,omitempty"`
}

// LoggingConfig controls the session journal.
type LoggingConfig struct {
	Path  string `yaml:"path,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// ProjectConfig models .copilot/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Wizard  WizardConfig  `yaml:"wizard"`
	Intake  IntakeConfig  `yaml:"intake"`
	Content ContentConfig `yaml:"content"`
	Logging LoggingConfig `yaml:"logging"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory where the user ran `copilot` from
	ProjectDir string

	// CopilotProjectDir is ProjectDir/.copilot
	CopilotProjectDir string

	// ConfigPath is the file the project settings were read from
	ConfigPath string

	Project ProjectConfig
}

// NewConfig loads settings for projectDir. configPath may be empty, in which
// case .copilot/config.yaml is used if it exists.
func NewConfig(projectDir, configPath string) (*Config, error) {
	if strings.TrimSpace(projectDir) == "" {
		return nil, fmt.Errorf("config: project directory is required")
	}
	copilotDir := filepath.Join(projectDir, CopilotDir)
	explicit := strings.TrimSpace(configPath) != ""
	if !explicit {
		configPath = filepath.Join(copilotDir, "config.yaml")
	}
	cfg := &Config{
		ProjectDir:        projectDir,
		CopilotProjectDir: copilotDir,
		ConfigPath:        configPath,
		Project:           defaultProjectConfig(projectDir),
	}
	if err := cfg.loadProjectConfig(explicit); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogPath returns the journal file location
func (c *Config) LogPath() string {
	return c.Project.Logging.Path
}

// AutoAdvanceDelay returns how long intake waits before opening Analysis.
func (c *Config) AutoAdvanceDelay() time.Duration {
	return c.Project.Wizard.AutoAdvanceDelay
}

// AcceptedExtensions returns the upload filter.
func (c *Config) AcceptedExtensions() []string {
	return append([]string(nil), c.Project.Intake.AcceptedExtensions...)
}

// StartDir returns where the file picker opens.
func (c *Config) StartDir() string {
	return c.Project.Intake.StartDir
}

// ContentPath returns the display content override, if any.
func (c *Config) ContentPath() string {
	return c.Project.Content.Path
}

// WatchContent reports whether the content file should be reloaded on change.
func (c *Config) WatchContent() bool {
	return c.Project.Content.Watch && c.Project.Content.Path != ""
}

// Overrides carries command-line values that win over the file.
type Overrides struct {
	AutoAdvanceDelay time.Duration
	ContentPath      string
	WatchContent     bool
	LogPath          string
	LogLevel         string
}

// Apply merges non-zero overrides and revalidates.
func (c *Config) Apply(o Overrides) error {
	if o.AutoAdvanceDelay != 0 {
		c.Project.Wizard.AutoAdvanceDelay = o.AutoAdvanceDelay
	}
	if p := strings.TrimSpace(o.ContentPath); p != "" {
		c.Project.Content.Path = p
	}
	if o.WatchContent {
		c.Project.Content.Watch = true
	}
	if p := strings.TrimSpace(o.LogPath); p != "" {
		c.Project.Logging.Path = p
	}
	if l := strings.TrimSpace(o.LogLevel); l != "" {
		c.Project.Logging.Level = l
	}
	c.Project.normalize(c.ProjectDir)
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) loadProjectConfig(required bool) error {
	path := c.ConfigPath
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultProjectConfig(c.ProjectDir)
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults(c.ProjectDir)
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig(projectDir string) ProjectConfig {
	pc := ProjectConfig{Version: 1}
	pc.applyDefaults(projectDir)
	return pc
}

func (pc *ProjectConfig) applyDefaults(projectDir string) {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Wizard.AutoAdvanceDelay == 0 {
		pc.Wizard.AutoAdvanceDelay = defaultAutoAdvanceDelay
	}
	if len(pc.Intake.AcceptedExtensions) == 0 {
		pc.Intake.AcceptedExtensions = append([]string(nil), intake.DefaultExtensions...)
	}
	if strings.TrimSpace(pc.Intake.StartDir) == "" {
		pc.Intake.StartDir = projectDir
	}
	if strings.TrimSpace(pc.Logging.Path) == "" {
		pc.Logging.Path = filepath.Join(projectDir, CopilotDir, "logs", "journey.log")
	}
	if strings.TrimSpace(pc.Logging.Level) == "" {
		pc.Logging.Level = defaultLogLevel
	}
}

func (pc *ProjectConfig) normalize(base string) {
	var exts []string
	for _, ext := range pc.Intake.AcceptedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !contains(exts, ext) {
			exts = append(exts, ext)
		}
	}
	pc.Intake.AcceptedExtensions = exts
	pc.Intake.StartDir = resolvePath(base, pc.Intake.StartDir)
	pc.Content.Path = resolvePath(base, pc.Content.Path)
	pc.Logging.Path = resolvePath(base, pc.Logging.Path)
	pc.Logging.Level = strings.ToLower(strings.TrimSpace(pc.Logging.Level))
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Wizard.AutoAdvanceDelay < 0 {
		return fmt.Errorf("wizard.auto_advance_delay must not be negative")
	}
	if len(pc.Intake.AcceptedExtensions) == 0 {
		return fmt.Errorf("intake.accepted_extensions must list at least one extension")
	}
	switch pc.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error")
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
