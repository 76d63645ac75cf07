package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"orderflow/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be reported missing")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Workflow.DefaultActor != "unattributed" {
		t.Fatalf("unexpected default actor %q", cfg.Workflow.DefaultActor)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected default log format %q", cfg.Logging.Format)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
api_bind = " 127.0.0.1:9000 "

[workflow]
default_actor = "operations"
max_pre_supplied_stages = 2

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Paths.APIBind != "127.0.0.1:9000" {
		t.Fatalf("api_bind not trimmed: %q", cfg.Paths.APIBind)
	}
	if cfg.Workflow.DefaultActor != "operations" {
		t.Fatalf("unexpected actor %q", cfg.Workflow.DefaultActor)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad log format")
	}

	cfg = config.Default()
	cfg.Paths.APIBind = "not-a-bind"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad api bind")
	}

	cfg = config.Default()
	cfg.Workflow.MaxPreSuppliedStages = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative pre-supplied stage cap")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config should load: exists=%v err=%v", exists, err)
	}
}
