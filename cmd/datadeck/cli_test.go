package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCLIConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	contents := fmt.Sprintf(`[paths]
data_dir = %q
export_dir = %q
log_dir = %q
backup_dir = %q

[imports]
backup_before_replace = true
lock_timeout_seconds = 5

[logging]
format = "console"
level = "error"
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "exports"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "backups"),
	)
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAddListShow(t *testing.T) {
	configPath := writeCLIConfig(t)

	out, err := runCLI(t, configPath, "add", "audio", `{"transcription": {"text": "hello world"}}`)
	if err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Added record 1 (Audio)") {
		t.Errorf("unexpected add output: %q", out)
	}

	out, err = runCLI(t, configPath, "list")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "hello world") || !strings.Contains(out, "Audio") {
		t.Errorf("unexpected list output: %q", out)
	}

	out, err = runCLI(t, configPath, "show")
	if err != nil {
		t.Fatalf("show failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Summary: hello world") {
		t.Errorf("unexpected show output: %q", out)
	}
}

func TestAddInfersTypeFromFile(t *testing.T) {
	configPath := writeCLIConfig(t)

	output := filepath.Join(t.TempDir(), "recording.mp3")
	if err := os.WriteFile(output, []byte(`{"transcription": {"text": "from file"}}`), 0o644); err != nil {
		t.Fatalf("write output file: %v", err)
	}

	out, err := runCLI(t, configPath, "add", "--file", output)
	if err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "(Audio)") {
		t.Errorf("expected inferred audio agent type: %q", out)
	}
}

func TestListEmptyDataset(t *testing.T) {
	configPath := writeCLIConfig(t)

	out, err := runCLI(t, configPath, "list")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No records stored") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	configPath := writeCLIConfig(t)

	if out, err := runCLI(t, configPath, "add", "vision", `{"description": "a red door"}`); err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}

	target := filepath.Join(t.TempDir(), "out.xml")
	out, err := runCLI(t, configPath, "export", "xml", "--output", target)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "<agent_type>vision</agent_type>") {
		t.Errorf("unexpected export document: %q", string(data))
	}

	out, err = runCLI(t, configPath, "import", target)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Imported 1 records") {
		t.Errorf("unexpected import output: %q", out)
	}
	if !strings.Contains(out, "backed up") {
		t.Errorf("expected backup mention: %q", out)
	}

	out, err = runCLI(t, configPath, "list", "--json")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"agentType": "vision"`) {
		t.Errorf("unexpected list json: %q", out)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	configPath := writeCLIConfig(t)

	if _, err := runCLI(t, configPath, "export", "yaml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestImportRejectsPlaintext(t *testing.T) {
	configPath := writeCLIConfig(t)

	dump := filepath.Join(t.TempDir(), "dump.txt")
	if err := os.WriteFile(dump, []byte("DATASET CONTENTS"), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	if _, err := runCLI(t, configPath, "import", dump); err == nil {
		t.Fatal("expected error importing plaintext")
	}
}

func TestFormatsCommand(t *testing.T) {
	configPath := writeCLIConfig(t)

	out, err := runCLI(t, configPath, "formats")
	if err != nil {
		t.Fatalf("formats failed: %v\n%s", err, out)
	}
	for _, want := range []string{"json", "csv", "xml", "txt", "text/csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("formats output missing %q: %s", want, out)
		}
	}
}

func TestClearRequiresForce(t *testing.T) {
	configPath := writeCLIConfig(t)

	if _, err := runCLI(t, configPath, "clear"); err == nil {
		t.Fatal("expected error without --force")
	}

	if out, err := runCLI(t, configPath, "add", "text", "hello"); err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}
	out, err := runCLI(t, configPath, "clear", "--force")
	if err != nil {
		t.Fatalf("clear failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Removed 1 records") {
		t.Errorf("unexpected clear output: %q", out)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out.String())
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Errorf("unexpected sample config: %q", string(data))
	}

	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestDisplayLabel(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"audio", "Audio"},
		{"audio_transcriber", "Audio Transcriber"},
		{"", "Unknown"},
	}
	for _, tc := range cases {
		if got := displayLabel(tc.input); got != tc.want {
			t.Errorf("displayLabel(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
