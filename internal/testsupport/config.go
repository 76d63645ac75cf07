// Package testsupport provides shared helpers for package tests:
// temp-dir configs, throwaway stores, and seeded managers.
package testsupport

import (
	"path/filepath"
	"testing"

	"orderflow/internal/config"
)

// NewConfig returns a validated config rooted in a per-test temp dir.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate test config: %v", err)
	}
	return &cfg
}
