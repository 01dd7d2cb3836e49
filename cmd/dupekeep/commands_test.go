package dupekeep

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	dir    string
	kept   string
	copy   string
	output string
}

// setupWorkspace creates one duplicate pair, a fake detector listing and a
// project config pointing the detector at it, then changes into the
// directory.
func setupWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg-config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "xdg-state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	paths := testutil.CreateDuplicates(t, dir, "music", "data/A/song.mp3", "data/B/song.mp3")
	w := &workspace{dir: dir, kept: paths[0], copy: paths[1]}
	w.output = testutil.CreateFile(t, dir, "listing.txt", testutil.Listing(5, paths))

	project := fmt.Sprintf(`
[scan]
detector = ["sh", "-c", "cat \"$0\"", %q]

[audit]
dir = %q
`, w.output, filepath.Join(dir, "journal"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dupekeep.toml"), []byte(project), 0644))

	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })
	return w
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_DeleteConfirmed(t *testing.T) {
	w := setupWorkspace(t)

	out, err := execute(t, "1\nDelete\nyes, I am sure\n", "data")
	require.NoError(t, err)

	assert.FileExists(t, w.kept)
	assert.NoFileExists(t, w.copy)
	assert.Contains(t, out, "rm  "+w.copy)
	assert.Contains(t, out, "1 duplicate set(s): 1 answered, 0 inferred")
	assert.Contains(t, out, "Journal written to")

	entries, err := os.ReadDir(filepath.Join(w.dir, "journal"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.NoFileExists(t, filepath.Join(w.dir, ".dupekeep.cache"))
}

func TestRoot_AbortedExitsCleanly(t *testing.T) {
	w := setupWorkspace(t)

	out, err := execute(t, "2\nSymlink\nsure\n", "data")
	require.NoError(t, err)
	assert.Equal(t, 0, ExitCode(err))

	testutil.AssertUnchanged(t, "music", w.kept, w.copy)
	assert.Contains(t, out, "Aborted, no files were changed.")
	assert.FileExists(t, filepath.Join(w.dir, ".dupekeep.cache"))
}

func TestRoot_DryRun(t *testing.T) {
	w := setupWorkspace(t)

	out, err := execute(t, "1\nHardlink\n", "data", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run, no files were changed.")
	assert.FileExists(t, w.copy)
}

func TestRoot_NoPromptAndMinSize(t *testing.T) {
	w := setupWorkspace(t)

	out, err := execute(t, "", "data", "--min-size", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "No duplicates found.")
	assert.FileExists(t, w.copy)

	_, err = execute(t, "Delete\nyes, I am sure\n", "data", "--no-prompt", "--rescan")
	require.NoError(t, err)
	assert.FileExists(t, w.kept)
	assert.NoFileExists(t, w.copy)
}

func TestRoot_EndOfInputIsAnError(t *testing.T) {
	w := setupWorkspace(t)

	_, err := execute(t, "", "data")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAborted))
	assert.NotEqual(t, 0, ExitCode(err))
	assert.FileExists(t, w.copy)
}

func TestRoot_DetectorFailure(t *testing.T) {
	setupWorkspace(t)
	t.Setenv("DUPEKEEP_SCAN_DETECTOR", "dupekeep-missing-detector")

	_, err := execute(t, "", "data", "--rescan")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDetector))
	assert.Equal(t, 1, ExitCode(err))
}

func TestConfigCmd(t *testing.T) {
	setupWorkspace(t)
	t.Setenv("DUPEKEEP_SCAN_MIN_SIZE", "4096")

	out, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[scan]")
	assert.Contains(t, out, "min_size = 4096")
	assert.Contains(t, out, "cat")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dupekeep version dev")
}

func TestCompletionCmd(t *testing.T) {
	out, err := execute(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "dupekeep")

	_, err = execute(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	out, err := execute(t, "", "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "inference")
	assert.Contains(t, out, "--dry-run")

	out, err = execute(t, "", "help", "inference")
	require.NoError(t, err)
	assert.Contains(t, out, "Keeper inference")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 130, ExitCode(errors.New(errors.ErrAborted, "eof")))
	assert.Equal(t, 1, ExitCode(errors.New(errors.ErrExecution, "failed")))
}
