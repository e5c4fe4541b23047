package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeConfig(home))

	_, stderr, err := runLVJ(t, binaryPath, home, "",
		"auth", "set",
		"--secret-value", "sk-test-123",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	for i := 0; i < 2; i++ {
		_, stderr, err = runLVJ(t, binaryPath, home, "", "checkin")
		require.NoError(t, err, "stderr: %s", stderr)
	}

	stdout, stderr, err := runLVJ(t, binaryPath, home, "three\nfour\nfive\n", "chat")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Daily check-in complete!")
	assert.Contains(t, stdout, "LeVent suggests:")

	stdout, stderr, err = runLVJ(t, binaryPath, home, "", "status", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "\"current_streak\": 1")
	assert.Contains(t, stdout, "\"total_interactions\": 5")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "lvj-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/lvj")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build lvj binary: %s", string(output))
	return binaryPath
}

func runLVJ(t *testing.T, binaryPath, home, input string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)
	cmd.Stdin = strings.NewReader(input)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfig(home string) error {
	configDir := filepath.Join(home, ".levent")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	config := `[progress]
backend = "toml"

[chat]
mode = "offline"
offline_delay = "0s"

[secrets]
backend = "file"
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}
