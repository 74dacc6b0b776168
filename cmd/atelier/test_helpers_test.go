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

// setupCLITestEnv writes a config file rooted in a temp directory so every
// command runs against an isolated dataset.
func setupCLITestEnv(t *testing.T, passcode string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("ATELIER_PASSCODE", "")
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, base, passcode)

	return &cliTestEnv{
		configPath: configPath,
		baseDir:    base,
	}
}

func writeTestConfig(t *testing.T, path, base, passcode string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
export_dir = %q

[storage]
debounce_ms = 25

[auth]
passcode = %q
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "exports"),
		passcode,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
}

func runCLI(t *testing.T, env *cliTestEnv, passcode string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--config", env.configPath}
	if passcode != "" {
		flags = append(flags, "--passcode", passcode)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// extractID pulls the parenthesized id out of "Added ... (id)" output.
func extractID(t *testing.T, output string) string {
	t.Helper()
	open := strings.LastIndex(output, "(")
	end := strings.LastIndex(output, ")")
	if open < 0 || end <= open {
		t.Fatalf("no id in output %q", output)
	}
	return output[open+1 : end]
}
