package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
api_bind = "127.0.0.1:0"
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestCLIAddListShowStage(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "add",
		"--customer-ref", "PO-7001",
		"--customer", "Acme Corp",
		"--product", "walnut jewelry box",
		"--quantity", "2",
		"--ribbon")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Created order ") || !strings.Contains(out, "waiting:procurement") {
		t.Fatalf("unexpected add output: %q", out)
	}
	orderID := extractOrderID(t, out)

	out, err = runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, orderID) || !strings.Contains(out, "PO-7001") {
		t.Fatalf("list missing order: %q", out)
	}

	out, err = runCLI(t, env, "show", orderID)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "walnut jewelry box") || !strings.Contains(out, "procurement") {
		t.Fatalf("unexpected show output: %q", out)
	}
	// Engraving was not requested, so labeling is skipped at creation.
	if !strings.Contains(out, "skipped") {
		t.Fatalf("expected skipped labeling stage: %q", out)
	}

	out, err = runCLI(t, env, "stage", orderID, "procurement", "in_progress", "--actor", "dana")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if !strings.Contains(out, "procurement -> in_progress") {
		t.Fatalf("unexpected stage output: %q", out)
	}

	out, err = runCLI(t, env, "stage", orderID, "procurement", "complete")
	if err != nil {
		t.Fatalf("stage complete: %v", err)
	}
	if !strings.Contains(out, "waiting:assembly") {
		t.Fatalf("expected bottleneck to advance: %q", out)
	}
}

func TestCLIStageRejectsIllegalTransition(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "add", "--customer-ref", "PO-7002", "--product", "oak frame")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	orderID := extractOrderID(t, out)

	if _, err := runCLI(t, env, "stage", orderID, "qc", "complete"); err == nil {
		t.Fatal("expected out-of-order complete to fail")
	}
	if _, err := runCLI(t, env, "stage", orderID, "qc", "skipped"); err == nil {
		t.Fatal("expected skip of non-skippable stage to fail")
	}
}

func TestCLISkipCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "add",
		"--customer-ref", "PO-7005",
		"--product", "walnut jewelry box",
		"--ribbon")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	orderID := extractOrderID(t, out)

	out, err = runCLI(t, env, "skip", orderID, "ribbon", "--actor", "lee", "--remark", "customer cancelled ribbon")
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if !strings.Contains(out, "skipped ribbon") {
		t.Fatalf("unexpected skip output: %q", out)
	}

	if _, err := runCLI(t, env, "skip", orderID, "qc"); err == nil {
		t.Fatal("expected skip of non-skippable stage to fail")
	}
}

func TestCLIDashboardAndStages(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "add", "--customer-ref", "PO-7003", "--product", "serving tray"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := runCLI(t, env, "dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !strings.Contains(out, "waiting") || !strings.Contains(out, "Total orders: 1") {
		t.Fatalf("unexpected dashboard output: %q", out)
	}

	out, err = runCLI(t, env, "stages")
	if err != nil {
		t.Fatalf("stages: %v", err)
	}
	if !strings.Contains(out, "shipping") || !strings.Contains(out, "tracking_number") {
		t.Fatalf("unexpected stages output: %q", out)
	}
}

func TestCLIDBHealth(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "add", "--customer-ref", "PO-7004", "--product", "serving tray"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := runCLI(t, env, "db-health")
	if err != nil {
		t.Fatalf("db-health: %v", err)
	}
	if !strings.Contains(out, "Integrity check: yes") || !strings.Contains(out, "Total orders:    1") {
		t.Fatalf("unexpected db-health output: %q", out)
	}
}

func TestCLIConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "generated.toml")

	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected init output: %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	if _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
}

func TestParseFieldFlags(t *testing.T) {
	fields, err := parseFieldFlags([]string{"box_count=2", "carrier_name=DHL"})
	if err != nil {
		t.Fatalf("parseFieldFlags: %v", err)
	}
	if fields["box_count"] != "2" || fields["carrier_name"] != "DHL" {
		t.Fatalf("unexpected fields: %v", fields)
	}

	if _, err := parseFieldFlags([]string{"no-equals"}); err == nil {
		t.Fatal("expected malformed field to fail")
	}
	if fields, err := parseFieldFlags(nil); err != nil || fields != nil {
		t.Fatalf("empty flags: %v %v", fields, err)
	}
}

func TestParseBoolFlag(t *testing.T) {
	if v, err := parseBoolFlag("ribbon", "true"); err != nil || v == nil || !*v {
		t.Fatalf("true parse: %v %v", v, err)
	}
	if v, err := parseBoolFlag("ribbon", "no"); err != nil || v == nil || *v {
		t.Fatalf("no parse: %v %v", v, err)
	}
	if v, err := parseBoolFlag("ribbon", ""); err != nil || v != nil {
		t.Fatalf("empty parse: %v %v", v, err)
	}
	if _, err := parseBoolFlag("ribbon", "maybe"); err == nil {
		t.Fatal("expected invalid bool to fail")
	}
}

func extractOrderID(t *testing.T, addOutput string) string {
	t.Helper()
	for _, line := range strings.Split(addOutput, "\n") {
		if rest, ok := strings.CutPrefix(line, "Created order "); ok {
			return strings.TrimSpace(rest)
		}
	}
	t.Fatalf("no order id in output: %q", addOutput)
	return ""
}
