package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/layoutguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceReadsEntityLibFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "treasury"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "treasury", "lib.rs"), []byte("#[ink(storage)]\npub struct Treasury {}\n"), 0o644))

	text, err := NewSource(root, "").Declaration(context.Background(), "treasury")
	require.NoError(t, err)
	assert.Contains(t, text, "pub struct Treasury")
}

func TestSourceCustomFileName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vault"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vault", "storage.rs"), []byte("struct Vault {}"), 0o644))

	text, err := NewSource(root, "storage.rs").Declaration(context.Background(), "vault")
	require.NoError(t, err)
	assert.Equal(t, "struct Vault {}", text)
}

func TestSourceMissingDeclaration(t *testing.T) {
	t.Parallel()

	_, err := NewSource(t.TempDir(), "").Declaration(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrDeclarationNotFound)
}

func TestSourceRejectsEscapingEntityIDs(t *testing.T) {
	t.Parallel()

	tests := []domain.EntityID{"", "  ", ".", "..", "../outside", "/etc"}
	for _, id := range tests {
		id := id
		t.Run(string(id), func(t *testing.T) {
			t.Parallel()

			_, err := NewSource(t.TempDir(), "").Declaration(context.Background(), id)
			require.Error(t, err)
			assert.False(t, errors.Is(err, domain.ErrDeclarationNotFound))
		})
	}
}

func TestEntityPath(t *testing.T) {
	t.Parallel()

	path, err := EntityPath("contracts/treasury", "")
	require.NoError(t, err)
	assert.Equal(t, "contracts/treasury/lib.rs", path)
}

func TestSourceCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource(t.TempDir(), "").Declaration(ctx, "treasury")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSourceEntitiesListsDirectoriesWithDeclarations(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, dir := range []string{"vault", "treasury", ".git", "docs"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	for _, dir := range []string{"vault", "treasury", ".git"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, dir, "lib.rs"), []byte("//"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib.rs"), []byte("//"), 0o644))

	ids, err := NewSource(root, "").Entities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.EntityID{"treasury", "vault"}, ids)
}
