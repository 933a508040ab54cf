package fstree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFixture builds:
//
//	root/
//	  alpha/
//	    inner.txt
//	  beta/
//	  zed.txt
func makeFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "alpha"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "beta"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha", "inner.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "zed.txt"), nil, 0o644))
	return root
}

func TestNewRejectsFileRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := New(file)
	assert.Error(t, err)
}

func TestActivateLoadsLazily(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)

	root := tree.Root()
	assert.False(t, root.Loaded)
	assert.Len(t, tree.Visible(), 1)

	require.NoError(t, tree.Activate())
	assert.True(t, root.Loaded)
	assert.True(t, root.Expanded)

	// Directories first, then files, each sorted by name.
	labels := make([]string, 0, len(root.Children))
	for _, c := range root.Children {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"alpha", "beta", "zed.txt"}, labels)
	assert.Len(t, tree.Visible(), 4)
}

func TestActivateTogglesWithoutReload(t *testing.T) {
	root := makeFixture(t)
	tree, err := New(root)
	require.NoError(t, err)
	require.NoError(t, tree.Activate())

	// A file created after loading is invisible until a reload.
	require.NoError(t, os.WriteFile(filepath.Join(root, "late.txt"), nil, 0o644))

	require.NoError(t, tree.Activate()) // collapse
	assert.False(t, tree.Root().Expanded)
	assert.Len(t, tree.Visible(), 1)

	require.NoError(t, tree.Activate()) // expand again
	assert.Len(t, tree.Root().Children, 3)
}

func TestActivateFileIsNoop(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)
	require.NoError(t, tree.Activate())

	// Move to zed.txt (root, alpha, beta, zed.txt).
	tree.MoveDown()
	tree.MoveDown()
	tree.MoveDown()
	require.Equal(t, "zed.txt", tree.CursorNode().Label)

	require.NoError(t, tree.Activate())
	assert.Len(t, tree.Visible(), 4)
}

func TestCursorBounds(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)

	tree.MoveUp()
	assert.Equal(t, 0, tree.Cursor())

	tree.MoveDown() // only one visible node, stays put
	assert.Equal(t, 0, tree.Cursor())

	require.NoError(t, tree.Activate())
	for i := 0; i < 10; i++ {
		tree.MoveDown()
	}
	assert.Equal(t, 3, tree.Cursor())
}

func TestCollapseClampsCursor(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)
	require.NoError(t, tree.Activate())

	tree.MoveDown()
	tree.MoveDown()
	tree.MoveDown()
	require.Equal(t, 3, tree.Cursor())

	// Collapse from the root node.
	for tree.Cursor() > 0 {
		tree.MoveUp()
	}
	require.NoError(t, tree.Activate())
	assert.Equal(t, 0, tree.Cursor())
	assert.Equal(t, tree.Root(), tree.CursorNode())
}

func TestRemove(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)
	require.NoError(t, tree.Activate())

	alpha := tree.Root().Children[0]
	require.Equal(t, "alpha", alpha.Label)

	require.NoError(t, tree.Remove(alpha.ID))
	assert.Len(t, tree.Root().Children, 2)
	_, ok := tree.Node(alpha.ID)
	assert.False(t, ok)
}

func TestRemoveRootRejected(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)
	assert.Error(t, tree.Remove(tree.Root().ID))
}

func TestRemoveUnknownID(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)
	assert.Error(t, tree.Remove(NodeID(9999)))
}

func TestReloadPicksUpNewEntries(t *testing.T) {
	root := makeFixture(t)
	tree, err := New(root)
	require.NoError(t, err)
	require.NoError(t, tree.Activate())
	require.Len(t, tree.Root().Children, 3)

	require.NoError(t, os.WriteFile(filepath.Join(root, "late.txt"), nil, 0o644))
	require.NoError(t, tree.Reload(tree.Root().Path))
	assert.Len(t, tree.Root().Children, 4)
}

func TestReloadUnloadedDirIsNoop(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)

	require.NoError(t, tree.Reload(tree.Root().Path))
	assert.False(t, tree.Root().Loaded)
}

func TestReroot(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)
	require.NoError(t, tree.Activate())

	other := t.TempDir()
	require.NoError(t, tree.Reroot(other))

	resolved, err := filepath.Abs(other)
	require.NoError(t, err)
	assert.Equal(t, resolved, tree.Root().Path)
	assert.False(t, tree.Root().Loaded)
	assert.Equal(t, 0, tree.Cursor())
}

func TestRerootBadPathKeepsTree(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)
	require.NoError(t, tree.Activate())
	before := tree.Root().Path

	assert.Error(t, tree.Reroot(filepath.Join(t.TempDir(), "missing")))
	assert.Equal(t, before, tree.Root().Path)
}

func TestExpandedDirs(t *testing.T) {
	tree, err := New(makeFixture(t))
	require.NoError(t, err)
	assert.Empty(t, tree.ExpandedDirs())

	require.NoError(t, tree.Activate())
	tree.MoveDown()
	require.NoError(t, tree.Activate()) // expand alpha

	dirs := tree.ExpandedDirs()
	require.Len(t, dirs, 2)
	assert.Equal(t, tree.Root().Path, dirs[0])
	assert.Equal(t, filepath.Join(tree.Root().Path, "alpha"), dirs[1])
}
