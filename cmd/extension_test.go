package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// pcv-hello prints the environment it received.
	script := "#!/bin/sh\n"
	for _, name := range []string{EnvServer, EnvSessionFile, EnvConfig, EnvVerbose} {
		script += fmt.Sprintf("echo \"%s=$%s\"\n", name, name)
	}
	script += "echo \"args=$*\"\n"
	if err := os.WriteFile(filepath.Join(tempDir, "pcv-hello"), []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write pcv-hello: %v", err)
	}

	pcvBinaryPath := filepath.Join(tempDir, "pcv")
	build := exec.Command("go", "build", "-o", pcvBinaryPath, "../pcv")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile pcv binary: %v", err)
	}

	expectedServer := "http://pcs.example.com:8080"
	expectedSessionFile := filepath.Join(tempDir, "session.json")
	expectedConfig := filepath.Join(tempDir, "pcv.yaml")
	if err := os.WriteFile(expectedConfig, []byte("width: 800\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	args := []string{
		"-server", expectedServer,
		"-session-file", expectedSessionFile,
		"-config", expectedConfig,
		"-v",
		"hello", "world",
	}
	pcvCmd := exec.Command(pcvBinaryPath, args...)
	pcvCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	pcvCmd.Stdout = &stdout
	pcvCmd.Stderr = &stderr
	if err := pcvCmd.Run(); err != nil {
		t.Fatalf("pcv command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	expected := []struct {
		Name  string
		Value string
	}{
		{EnvServer, expectedServer},
		{EnvSessionFile, expectedSessionFile},
		{EnvConfig, expectedConfig},
		{EnvVerbose, strconv.FormatBool(true)},
		{"args", "world"},
	}
	for _, ev := range expected {
		line := fmt.Sprintf("%s=%s\n", ev.Name, ev.Value)
		if !strings.Contains(output, line) {
			t.Errorf("Expected output to contain %q, but got:\n%s", line, output)
		}
	}
}

func TestExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("does-not-exist", nil); found || code != 0 {
		t.Errorf("RunExtension() = %v, %d, want false, 0", found, code)
	}
}
