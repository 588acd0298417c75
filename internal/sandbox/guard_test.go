package sandbox

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_Allows(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "inside.txt"), []byte("ok"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(other, "secret.txt"), []byte("no"), 0o644))

	g, err := NewGuard([]string{root})
	require.NoError(t, err)

	t.Run("file inside root", func(t *testing.T) {
		assert.True(t, g.Allows(filepath.Join(root, "inside.txt")))
	})

	t.Run("root itself", func(t *testing.T) {
		assert.True(t, g.Allows(root))
	})

	t.Run("nonexistent leaf under root", func(t *testing.T) {
		// Leaf may not exist yet; the parent resolves inside the root.
		assert.True(t, g.Allows(filepath.Join(root, "new.txt")))
	})

	t.Run("file outside all roots", func(t *testing.T) {
		assert.False(t, g.Allows(filepath.Join(other, "secret.txt")))
	})

	t.Run("parent traversal escape", func(t *testing.T) {
		assert.False(t, g.Allows(filepath.Join(root, "..", "..", "etc", "passwd")))
	})

	t.Run("nonexistent parent fails closed", func(t *testing.T) {
		assert.False(t, g.Allows(filepath.Join(root, "missing", "deep", "file.txt")))
	})

	t.Run("partial prefix does not match", func(t *testing.T) {
		sibling := root + "2"
		require.NoError(t, os.MkdirAll(sibling, 0o755))
		defer os.RemoveAll(sibling)
		assert.False(t, g.Allows(filepath.Join(sibling, "x.txt")))
	})
}

func TestGuard_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on Windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "target.txt"), []byte("x"), 0o644))

	link := filepath.Join(root, "link.txt")
	require.NoError(t, os.Symlink(filepath.Join(outside, "target.txt"), link))

	g, err := NewGuard([]string{root})
	require.NoError(t, err)

	// The link lives under the root but resolves outside it.
	assert.False(t, g.Allows(link))
}

func TestGuard_MultipleRoots(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()

	g, err := NewGuard([]string{a, b})
	require.NoError(t, err)

	assert.True(t, g.Allows(a))
	assert.True(t, g.Allows(b))
	assert.Len(t, g.Roots(), 2)
}

func TestGuard_DefaultsToCwd(t *testing.T) {
	g, err := NewGuard(nil)
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.True(t, g.Allows(cwd))
}
