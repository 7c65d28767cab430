package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/decision-copilot/internal/config"
)

func TestPrintStepsMarksUploadAlwaysReachable(t *testing.T) {
	cfg, err := config.NewConfig(t.TempDir(), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printSteps(&buf, cfg))
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[1], "upload")
	assert.Contains(t, lines[1], "always")
	for _, line := range lines[2:5] {
		assert.Contains(t, line, "after intake")
	}
	assert.Contains(t, lines[4], "Decision")
	assert.Contains(t, out, "Intake opens Analysis after 1.5s.")
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := loadConfig(&rootOptions{delay: 250 * time.Millisecond, logLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.AutoAdvanceDelay())
	assert.Equal(t, "debug", cfg.Project.Logging.Level)
	_, statErr := os.Stat(filepath.Join(dir, config.CopilotDir))
	assert.True(t, os.IsNotExist(statErr), "loading config must not create .copilot")
}

func TestLoadConfigRejectsBadLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := loadConfig(&rootOptions{logLevel: "loud"})
	require.Error(t, err)
}

func TestStepsCommandRuns(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"steps", "--delay", "2s"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Intake opens Analysis after 2s.")
}

func TestStepsCommandLooksUpOneStep(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"steps", "Decision"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[1], "4")
	assert.Contains(t, lines[1], "output")
	assert.Contains(t, lines[1], "after intake")
	assert.NotContains(t, buf.String(), "upload")
}

func TestStepsCommandRejectsUnknownStep(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"steps", "memo"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown step "memo"`)
}
