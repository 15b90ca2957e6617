package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/fserr"
)

func tempRoot(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestNewGuard(t *testing.T) {
	root := tempRoot(t)

	t.Run("existing directory", func(t *testing.T) {
		g, err := NewGuard(root)
		require.NoError(t, err)
		assert.Equal(t, root, g.Root())
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewGuard(filepath.Join(root, "missing"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("file instead of directory", func(t *testing.T) {
		file := filepath.Join(root, "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		_, err := NewGuard(file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("empty root", func(t *testing.T) {
		_, err := NewGuard("")
		require.Error(t, err)
	})

	t.Run("symlinked root is canonicalized", func(t *testing.T) {
		link := filepath.Join(tempRoot(t), "link")
		require.NoError(t, os.Symlink(root, link))

		g, err := NewGuard(link)
		require.NoError(t, err)
		assert.Equal(t, root, g.Root())
	})
}

func TestResolveUninitialized(t *testing.T) {
	var nilGuard *Guard
	_, err := nilGuard.Resolve("a.txt")
	assert.ErrorIs(t, err, fserr.KindUninitialized)

	_, err = (&Guard{}).Resolve("a.txt")
	assert.ErrorIs(t, err, fserr.KindUninitialized)
}

func TestResolveContainment(t *testing.T) {
	root := tempRoot(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deep"), 0o755))

	g, err := NewGuard(root)
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		want    string
		outside bool
	}{
		{name: "root dot", input: ".", want: root},
		{name: "empty is root", input: "", want: root},
		{name: "plain file", input: "a.txt", want: filepath.Join(root, "a.txt")},
		{name: "nested missing", input: "sub/new/file.txt", want: filepath.Join(root, "sub", "new", "file.txt")},
		{name: "dot dot inside", input: "sub/deep/../x", want: filepath.Join(root, "sub", "x")},
		{name: "absolute treated as relative", input: "/etc/passwd", want: filepath.Join(root, "etc", "passwd")},
		{name: "dotdot prefix name", input: "..hidden", want: filepath.Join(root, "..hidden")},
		{name: "parent escape", input: "..", outside: true},
		{name: "deep escape", input: "../../../etc/passwd", outside: true},
		{name: "escape after descent", input: "sub/../../outside", outside: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Resolve(tt.input)
			if tt.outside {
				require.Error(t, err)
				assert.ErrorIs(t, err, fserr.KindOutsideRoot)
				assert.Contains(t, err.Error(), "outside allowed root")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, Within(root, got))
		})
	}
}

func TestResolveSiblingPrefix(t *testing.T) {
	parent := tempRoot(t)
	root := filepath.Join(parent, "b")
	sibling := filepath.Join(parent, "bc")
	require.NoError(t, os.Mkdir(root, 0o755))
	require.NoError(t, os.Mkdir(sibling, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sibling, "secret.txt"), []byte("s"), 0o644))

	g, err := NewGuard(root)
	require.NoError(t, err)

	_, err = g.Resolve("../bc/secret.txt")
	assert.ErrorIs(t, err, fserr.KindOutsideRoot)

	// A symlink into the sibling must be rejected as well.
	require.NoError(t, os.Symlink(sibling, filepath.Join(root, "link")))
	_, err = g.Resolve("link/secret.txt")
	assert.ErrorIs(t, err, fserr.KindOutsideRoot)
}

func TestResolveSymlinks(t *testing.T) {
	root := tempRoot(t)
	outside := tempRoot(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "real"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("s"), 0o644))

	g, err := NewGuard(root)
	require.NoError(t, err)

	t.Run("link inside root", func(t *testing.T) {
		require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "inner")))
		got, err := g.Resolve("inner/file.txt")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "real", "file.txt"), got)
	})

	t.Run("link escaping root", func(t *testing.T) {
		require.NoError(t, os.Symlink(outside, filepath.Join(root, "escape")))
		_, err := g.Resolve("escape/secret.txt")
		assert.ErrorIs(t, err, fserr.KindOutsideRoot)
	})

	t.Run("dangling link", func(t *testing.T) {
		require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")))
		_, err := g.Resolve("dangling")
		assert.ErrorIs(t, err, fserr.KindOutsideRoot)

		_, err = g.Resolve("dangling/child.txt")
		assert.ErrorIs(t, err, fserr.KindOutsideRoot)
	})

	t.Run("cyclic link", func(t *testing.T) {
		require.NoError(t, os.Symlink(filepath.Join(root, "loop-b"), filepath.Join(root, "loop-a")))
		require.NoError(t, os.Symlink(filepath.Join(root, "loop-a"), filepath.Join(root, "loop-b")))
		_, err := g.Resolve("loop-a")
		assert.ErrorIs(t, err, fserr.KindOutsideRoot)
	})
}

func TestResolveThroughFile(t *testing.T) {
	root := tempRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0o644))

	g, err := NewGuard(root)
	require.NoError(t, err)

	got, err := g.Resolve("file.txt/child")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "file.txt", "child"), got)
}

func TestWithin(t *testing.T) {
	sep := string(filepath.Separator)
	root := sep + filepath.Join("a", "b")

	assert.True(t, Within(root, root))
	assert.True(t, Within(root, filepath.Join(root, "c")))
	assert.True(t, Within(root, filepath.Join(root, "..c")))
	assert.False(t, Within(root, sep+filepath.Join("a", "bc")))
	assert.False(t, Within(root, sep+filepath.Join("a", "bc", "d")))
	assert.False(t, Within(root, sep+"a"))
}

func TestIsRoot(t *testing.T) {
	root := tempRoot(t)
	g, err := NewGuard(root)
	require.NoError(t, err)

	assert.True(t, g.IsRoot(root))
	assert.False(t, g.IsRoot(filepath.Join(root, "x")))

	var nilGuard *Guard
	assert.False(t, nilGuard.IsRoot(root))
}
