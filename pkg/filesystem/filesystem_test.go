package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	keeper := filepath.Join(tmpDir, "keeper.txt")
	dup := filepath.Join(tmpDir, "dup.txt")
	content := []byte("hello world")

	require.NoError(t, os.WriteFile(keeper, content, 0644))
	require.NoError(t, os.WriteFile(dup, content, 0644))

	info, err := fs.Lstat(keeper)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), info.Size())

	// hardlink into a fresh name, then rename it over the duplicate
	tmp := dup + ".tmp"
	require.NoError(t, fs.Link(keeper, tmp))
	require.NoError(t, fs.Rename(tmp, dup))

	keeperInfo, err := os.Stat(keeper)
	require.NoError(t, err)
	dupInfo, err := os.Stat(dup)
	require.NoError(t, err)
	assert.True(t, os.SameFile(keeperInfo, dupInfo))

	// symlink
	link := filepath.Join(tmpDir, "link.txt")
	require.NoError(t, fs.Symlink(keeper, link))
	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, keeper, target)
	linfo, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, linfo.Mode()&os.ModeSymlink)

	require.NoError(t, fs.Remove(dup))
	_, err = os.Lstat(dup)
	assert.True(t, os.IsNotExist(err))
}

func TestAferoFS(t *testing.T) {
	mem := afero.NewMemMapFs()
	fs := NewAferoFS(mem)

	require.NoError(t, afero.WriteFile(mem, "/d/a.txt", []byte("x"), 0644))

	info, err := fs.Lstat("/d/a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Size())

	require.NoError(t, fs.Rename("/d/a.txt", "/d/b.txt"))
	_, err = fs.Lstat("/d/a.txt")
	assert.True(t, os.IsNotExist(err))

	err = fs.Link("/d/b.txt", "/d/c.txt")
	assert.True(t, errors.Is(err, errors.ErrUnsupported))

	require.NoError(t, fs.Remove("/d/b.txt"))
	exists, err := afero.Exists(mem, "/d/b.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAferoFS_SymlinkOnMemoryTree(t *testing.T) {
	mem := afero.NewMemMapFs()
	fs := NewAferoFS(mem)
	require.NoError(t, afero.WriteFile(mem, "/k/f", []byte("x"), 0644))

	err := fs.Symlink("/k/f", "/d/f")
	assert.True(t, errors.Is(err, errors.ErrUnsupported))

	exists, err := afero.Exists(mem, "/d/f")
	require.NoError(t, err)
	assert.False(t, exists, "no placeholder file is left behind")
}

func TestAferoFS_SymlinkOnOsBackedTree(t *testing.T) {
	dir := t.TempDir()
	keeper := filepath.Join(dir, "keeper")
	require.NoError(t, os.WriteFile(keeper, []byte("x"), 0644))

	fs := NewAferoFS(afero.NewOsFs())
	link := filepath.Join(dir, "link")
	require.NoError(t, fs.Symlink(keeper, link))

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}
