package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kingrea/decision-copilot/internal/intake"
)

func writeProjectConfig(t *testing.T, projectDir, body string) string {
	t.Helper()
	dir := filepath.Join(projectDir, CopilotDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(body)), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir, "")
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if c.AutoAdvanceDelay() != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s delay, got %s", c.AutoAdvanceDelay())
	}
	if got := strings.Join(c.AcceptedExtensions(), ","); got != ".csv,.xlsx,.json,.pdf" {
		t.Fatalf("unexpected extensions %s", got)
	}
	if got, want := strings.Join(c.AcceptedExtensions(), ","), strings.Join(intake.DefaultExtensions, ","); got != want {
		t.Fatalf("defaults should follow the intake filter: %s != %s", got, want)
	}
	if c.StartDir() != projectDir {
		t.Fatalf("expected start dir %s, got %s", projectDir, c.StartDir())
	}
	wantLog := filepath.Join(projectDir, CopilotDir, "logs", "journey.log")
	if c.LogPath() != wantLog {
		t.Fatalf("expected log path %s, got %s", wantLog, c.LogPath())
	}
	if c.WatchContent() {
		t.Fatalf("watch must be off without a content path")
	}
	if _, err := os.Stat(filepath.Join(projectDir, CopilotDir)); !os.IsNotExist(err) {
		t.Fatalf("loading config must not create %s", CopilotDir)
	}
}

func TestNewConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	writeProjectConfig(t, projectDir, `
version: 1
wizard:
  auto_advance_delay: 250ms
intake:
  accepted_extensions: [CSV, json, ".csv"]
  start_dir: data
content:
  path: copy/content.yaml
  watch: true
logging:
  level: DEBUG
`)
	c, err := NewConfig(projectDir, "")
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.AutoAdvanceDelay() != 250*time.Millisecond {
		t.Fatalf("wrong delay: %s", c.AutoAdvanceDelay())
	}
	if got := strings.Join(c.AcceptedExtensions(), ","); got != ".csv,.json" {
		t.Fatalf("extensions not normalised: %s", got)
	}
	if c.StartDir() != filepath.Join(projectDir, "data") {
		t.Fatalf("start dir not resolved: %s", c.StartDir())
	}
	if !strings.HasPrefix(c.ContentPath(), projectDir) || !c.WatchContent() {
		t.Fatalf("content settings not applied: %s watch=%v", c.ContentPath(), c.WatchContent())
	}
	if c.Project.Logging.Level != "debug" {
		t.Fatalf("level not normalised: %s", c.Project.Logging.Level)
	}
}

func TestNewConfigValidation(t *testing.T) {
	cases := map[string]string{
		"negative delay": "wizard:\n  auto_advance_delay: -1s\n",
		"bad level":      "logging:\n  level: loud\n",
		"bad version":    "version: -2\n",
		"bad yaml":       "wizard: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			projectDir := t.TempDir()
			writeProjectConfig(t, projectDir, body)
			if _, err := NewConfig(projectDir, ""); err == nil {
				t.Fatalf("expected validation error but got none")
			}
		})
	}
}

func TestExplicitConfigPathMustExist(t *testing.T) {
	projectDir := t.TempDir()
	if _, err := NewConfig(projectDir, filepath.Join(projectDir, "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
	if _, err := NewConfig("", ""); err == nil {
		t.Fatalf("expected error for empty project dir")
	}
}

func TestApplyOverrides(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir, "")
	if err != nil {
		t.Fatal(err)
	}
	err = c.Apply(Overrides{
		AutoAdvanceDelay: 3 * time.Second,
		ContentPath:      "alt.yaml",
		WatchContent:     true,
		LogPath:          "/tmp/copilot.log",
		LogLevel:         "warn",
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if c.AutoAdvanceDelay() != 3*time.Second {
		t.Fatalf("delay override ignored")
	}
	if c.ContentPath() != filepath.Join(projectDir, "alt.yaml") || !c.WatchContent() {
		t.Fatalf("content override ignored: %s", c.ContentPath())
	}
	if c.LogPath() != "/tmp/copilot.log" || c.Project.Logging.Level != "warn" {
		t.Fatalf("logging override ignored")
	}
	if err := c.Apply(Overrides{LogLevel: "chatty"}); err == nil {
		t.Fatalf("expected invalid level to be rejected")
	}
}
