// Package testutil runs the forge CLI in-process against a scratch
// workspace.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ArielEspinoza07/console-forge/cmd/forge/commands"
	"github.com/ArielEspinoza07/console-forge/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// Workspace is a temporary project directory with its own config dir.
type Workspace struct {
	Path      string
	ConfigDir string
	Settings  *config.Settings
}

// Result is the outcome of one forge invocation.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// NewWorkspace creates a temp directory and settings pointing at its
// config dir. FORGE_* variables from .env files near the suite apply.
func NewWorkspace() (*Workspace, error) {
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load(".env")

	path, err := os.MkdirTemp("", "forge-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	var settings config.Settings
	if err := config.ParseEnv(&settings); err != nil {
		os.RemoveAll(path)
		return nil, err
	}
	settings.ConfigDir = filepath.Join(path, "config")
	settings.NoColor = true
	if settings.LogDir == "" {
		settings.LogDir = filepath.Join(path, "logs")
	}

	return &Workspace{Path: path, ConfigDir: settings.ConfigDir, Settings: &settings}, nil
}

// WriteConfig writes a definition file relative to the config dir.
func (w *Workspace) WriteConfig(rel, content string) error {
	path := filepath.Join(w.ConfigDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// Exists reports whether rel exists under the config dir.
func (w *Workspace) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(w.ConfigDir, rel))
	return err == nil
}

// Run executes forge with args in the workspace.
func (w *Workspace) Run(ctx context.Context, args ...string) Result {
	var stdout, stderr bytes.Buffer
	code := commands.Run(ctx, commands.Options{
		Args:     args,
		In:       strings.NewReader(""),
		Out:      &stdout,
		Err:      &stderr,
		Fs:       afero.NewOsFs(),
		Settings: w.Settings,
	})
	return Result{Code: code, Stdout: stdout.String(), Stderr: stderr.String()}
}

// Cleanup removes the workspace.
func (w *Workspace) Cleanup() {
	os.RemoveAll(w.Path)
}
