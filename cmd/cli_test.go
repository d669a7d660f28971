package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const treasuryV1 = `#![cfg_attr(not(feature = "std"), no_std, no_main)]

#[ink::contract]
mod treasury {
    #[ink(storage)]
    pub struct Treasury {
        admin: AccountId,
        balances: Mapping<AccountId, Balance>,
    }
}
`

const treasuryAppended = `#[ink(storage)]
pub struct Treasury {
    admin: AccountId,
    balances: Mapping<AccountId, Balance>,
    paused: bool,
}
`

const treasurySwapped = `#[ink(storage)]
pub struct Treasury {
    balances: Mapping<AccountId, Balance>,
    admin: AccountId,
}
`

func TestCheckFirstObservationRecordsBaseline(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)

	stdout, _, err := executeCLI(t, root, "check", "treasury")
	require.NoError(t, err)
	assert.Contains(t, stdout, "checked: 1 safe: 1 violations: 0 unchecked: 0")
	assert.Contains(t, stdout, "treasury [SAFE]")
	assert.Contains(t, stdout, "first observation, baseline recorded")

	data, err := os.ReadFile(filepath.Join(root, "storage-layouts.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "treasury")

	stdout, _, err = executeCLI(t, root, "check", "treasury")
	require.NoError(t, err)
	assert.Contains(t, stdout, "layout unchanged (2 fields)")
}

func TestCheckViolationsExitWithOne(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)

	_, _, err := executeCLI(t, root, "check", "treasury")
	require.NoError(t, err)

	writeContract(t, root, "treasury", treasurySwapped)
	stdout, _, err := executeCLI(t, root, "check", "treasury")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, stdout, "treasury [UNSAFE]")
	assert.Contains(t, stdout, "field balances moved from position 1 to 0")
	assert.Contains(t, stdout, "field admin moved from position 0 to 1")
}

func TestCheckUncheckedEntityExitsWithTwo(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)
	writeContract(t, root, "broken", "pub struct Broken { a: u8 }")

	stdout, _, err := executeCLI(t, root, "check", "treasury", "broken", "missing")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
	assert.Contains(t, stdout, "checked: 3 safe: 1 violations: 0 unchecked: 2")
	assert.Contains(t, stdout, "broken [UNCHECKED]")
	assert.Contains(t, stdout, "missing [UNCHECKED]")
}

func TestCheckDryRunDoesNotRecordBaseline(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)

	stdout, _, err := executeCLI(t, root, "check", "--dry-run", "treasury")
	require.NoError(t, err)
	assert.Contains(t, stdout, "baseline not recorded")

	_, statErr := os.Stat(filepath.Join(root, "storage-layouts.toml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCheckAllDiscoversContracts(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)
	writeContract(t, root, "vault", "#[ink(storage)]\npub struct Vault { locked: bool }\n")

	stdout, _, err := executeCLI(t, root, "check", "--all", "--output", "json")
	require.NoError(t, err)

	var doc struct {
		Summary map[string]int
		Reports []struct {
			Entity  string
			Outcome string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, 2, doc.Summary["safe"])
	require.Len(t, doc.Reports, 2)
	assert.Equal(t, "treasury", doc.Reports[0].Entity)
	assert.Equal(t, "vault", doc.Reports[1].Entity)
}

func TestCheckRequiresEntities(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "check")
	require.ErrorIs(t, err, errNoEntities)
	assert.Equal(t, 2, ExitCode(err))
}

func TestCheckRejectsUnknownOutputFormat(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)

	_, _, err := executeCLI(t, root, "check", "treasury", "--output", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestCheckWatchCannotReadRevisions(t *testing.T) {
	root := t.TempDir()

	stdout, _, err := executeCLI(t, root, "check", "treasury", "--watch", "--rev", "main", "--dry-run")
	require.ErrorIs(t, err, errWatchRevision)
	assert.Empty(t, stdout)
}

func TestShowPrintsFields(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)

	stdout, _, err := executeCLI(t, root, "show", "treasury")
	require.NoError(t, err)
	assert.Contains(t, stdout, "treasury (Treasury)")
	assert.Contains(t, stdout, "[0] admin: AccountId")
	assert.Contains(t, stdout, "[1] balances: Mapping<AccountId, Balance>")

	_, statErr := os.Stat(filepath.Join(root, "storage-layouts.toml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestShowYAMLOutput(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)

	stdout, _, err := executeCLI(t, root, "show", "treasury", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "kind: snapshot")
	assert.Contains(t, stdout, "name: balances")
}

func TestAcceptThenCheckIsSafe(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)

	_, _, err := executeCLI(t, root, "check", "treasury")
	require.NoError(t, err)

	writeContract(t, root, "treasury", treasuryAppended)
	_, _, err = executeCLI(t, root, "check", "treasury")
	require.Equal(t, 1, ExitCode(err))

	stdout, _, err := executeCLI(t, root, "accept", "treasury")
	require.NoError(t, err)
	assert.Contains(t, stdout, "accepted baseline for treasury (3 fields)")

	_, _, err = executeCLI(t, root, "check", "treasury")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, root, "baseline", "show", "treasury")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[2] paused: bool")
	assert.Contains(t, stdout, "origin: accepted")
}

func TestBaselineList(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)
	writeContract(t, root, "vault", "#[ink(storage)]\npub struct Vault { locked: bool }\n")

	stdout, _, err := executeCLI(t, root, "baseline", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No baselines recorded.")

	_, _, err = executeCLI(t, root, "check", "--all")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, root, "baseline", "list", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"baselines","entities":["treasury","vault"]}`, stdout)
}

func TestBaselineShowMissing(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "baseline", "show", "treasury")
	require.Error(t, err)
	assert.ErrorContains(t, err, "baseline not found")
}

func TestLegacyJSONBaselines(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryAppended)
	legacy := filepath.Join(root, "storage-layouts.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{
  "treasury": [
    {"name": "admin", "field_type": "AccountId", "position": 0},
    {"name": "balances", "field_type": "Mapping<AccountId, Balance>", "position": 1}
  ]
}
`), 0o600))

	stdout, _, err := executeCLI(t, root, "--baselines", legacy, "check", "treasury")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, stdout, "field paused was added")
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vault"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vault", "storage.rs"), []byte("#[layout]\nstruct Vault { locked: bool }\n"), 0o644))

	configPath := filepath.Join(t.TempDir(), "layoutguard.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[source]\nfile = \"storage.rs\"\nmarker = \"#[layout]\"\n"), 0o644))

	stdout, _, err := executeCLI(t, root, "--config", configPath, "show", "vault")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[0] locked: bool")
}

func TestEnvironmentOverridesConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vault"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vault", "storage.rs"), []byte("#[ink(storage)]\nstruct Vault { locked: bool }\n"), 0o644))
	t.Setenv("LAYOUTGUARD_SOURCE_FILE", "storage.rs")

	stdout, _, err := executeCLI(t, root, "show", "vault")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[0] locked: bool")
}

func TestVerboseLogsToStderr(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, "treasury", treasuryV1)

	_, stderr, err := executeCLI(t, root, "--verbose", "check", "treasury")
	require.NoError(t, err)
	assert.Contains(t, stderr, "layout checked")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(&exitError{code: exitViolations}))
	assert.Equal(t, 2, ExitCode(errors.New("boom")))
}

// executeCLI runs the root command against a contracts root with its own
// baseline file.
func executeCLI(t *testing.T, root string, args ...string) (string, string, error) {
	t.Helper()

	full := append([]string{"--root", root, "--baselines", filepath.Join(root, "storage-layouts.toml")}, args...)

	rootCmd := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(full)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeContract(t *testing.T, root, name, source string) {
	t.Helper()

	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.rs"), []byte(source), 0o644))
}
