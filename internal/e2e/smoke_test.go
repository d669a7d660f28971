package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const treasury = `#[ink(storage)]
pub struct Treasury {
    admin: AccountId,
    balances: Mapping<AccountId, Balance>,
}
`

const treasuryRetyped = `#[ink(storage)]
pub struct Treasury {
    admin: AccountId,
    balances: Mapping<AccountId, u128>,
}
`

func TestSmokeFlow(t *testing.T) {
	root := t.TempDir()
	binaryPath := buildBinary(t)
	writeContract(t, root, "treasury", treasury)

	stdout, stderr, code := runLayoutguard(t, binaryPath, root, "check", "treasury")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "treasury [SAFE]")

	writeContract(t, root, "treasury", treasuryRetyped)
	stdout, stderr, code = runLayoutguard(t, binaryPath, root, "check", "treasury")
	require.Equal(t, 1, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "changed type from Mapping<AccountId, Balance> to Mapping<AccountId, u128>")

	_, stderr, code = runLayoutguard(t, binaryPath, root, "check", "missing")
	assert.Equal(t, 2, code, "stderr: %s", stderr)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "layoutguard-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/layoutguard")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build layoutguard binary: %s", string(output))
	return binaryPath
}

func runLayoutguard(t *testing.T, binaryPath, root string, args ...string) (string, string, int) {
	t.Helper()

	full := append([]string{"--root", root, "--baselines", filepath.Join(root, "storage-layouts.toml")}, args...)
	cmd := exec.Command(binaryPath, full...)
	cmd.Dir = root

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), stderr.String(), exitErr.ExitCode()
	}
	require.NoError(t, err)
	return stdout.String(), stderr.String(), 0
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeContract(t *testing.T, root, name, source string) {
	t.Helper()

	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.rs"), []byte(source), 0o644))
}
