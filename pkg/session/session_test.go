package session

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dupekeep/pkg/audit"
	"github.com/arthur-debert/dupekeep/pkg/cache"
	"github.com/arthur-debert/dupekeep/pkg/detector"
	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/prompt"
	"github.com/arthur-debert/dupekeep/pkg/style"
	"github.com/arthur-debert/dupekeep/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rawSource string

func (r rawSource) Output(context.Context, string) (string, error) {
	return string(r), nil
}

type fixture struct {
	root    string
	a1, b1  string
	a2, b2  string
	raw     string
	store   *cache.Store
	journal string
}

// newFixture lays out two mirrored directories holding two duplicate pairs.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	paths := testutil.CreateDuplicates(t, root, "hello", "A/1.txt", "B/1.txt", "A/2.txt", "B/2.txt")
	f := &fixture{root: root, a1: paths[0], b1: paths[1], a2: paths[2], b2: paths[3]}
	f.raw = testutil.Listing(5, []string{f.a1, f.b1}, []string{f.a2, f.b2})
	f.store = cache.New(afero.NewMemMapFs(), ".dupekeep.cache")
	f.store.Store(f.raw)
	f.journal = filepath.Join(t.TempDir(), "journal")
	return f
}

func (f *fixture) options(input string, out *bytes.Buffer) Options {
	return Options{
		Root:    f.root,
		Reader:  prompt.NewScanner(strings.NewReader(input), out),
		Out:     out,
		Format:  style.FormatText,
		Source:  &detector.Cached{Source: rawSource(""), Cache: f.store},
		Cache:   f.store,
		Journal: audit.NewJournal(f.journal),
	}
}

func TestRun_HardlinkApplied(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer

	outcome, err := Run(context.Background(), f.options("1\nHardlink\nyes, I am sure\n", &out))
	require.NoError(t, err)

	assert.Equal(t, StatusApplied, outcome.Status)
	assert.Equal(t, 2, outcome.Clusters)
	assert.Equal(t, 1, outcome.Prompted)
	assert.Equal(t, 1, outcome.Inferred)

	testutil.AssertSameFile(t, f.a1, f.b1)
	testutil.AssertSameFile(t, f.a2, f.b2)

	_, cached, err := f.store.Load()
	require.NoError(t, err)
	assert.False(t, cached, "cache should be invalidated after apply")

	require.NotEmpty(t, outcome.JournalPath)
	rec, err := audit.Read(outcome.JournalPath)
	require.NoError(t, err)
	assert.Equal(t, "Hardlink", rec.Mode)
	assert.Equal(t, 2, rec.Applied)

	assert.Contains(t, out.String(), MsgPreviewHeading)
	assert.Contains(t, out.String(), "ln  "+f.a1)
	assert.Contains(t, out.String(), fmt.Sprintf(MsgApplied, 2, 2))
}

func TestRun_AbortedLeavesEverything(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer

	outcome, err := Run(context.Background(), f.options("1\nDelete\nyes\n", &out))
	require.NoError(t, err)
	assert.Equal(t, StatusAborted, outcome.Status)
	assert.Nil(t, outcome.Result)

	testutil.AssertUnchanged(t, "hello", f.a1, f.b1, f.a2, f.b2)
	_, cached, err := f.store.Load()
	require.NoError(t, err)
	assert.True(t, cached, "cache should survive an abort")

	entries, _ := os.ReadDir(f.journal)
	assert.Empty(t, entries)
}

func TestRun_DryRun(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer
	opts := f.options("2\nDelete\n", &out)
	opts.DryRun = true

	outcome, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, StatusDryRun, outcome.Status)
	require.NotNil(t, outcome.Plan)
	assert.Equal(t, 2, outcome.Plan.Len())
	assert.Contains(t, out.String(), "rm  "+f.a1)
	assert.Contains(t, out.String(), MsgDryRun)

	testutil.AssertUnchanged(t, "hello", f.a1, f.b1, f.a2, f.b2)
}

func TestRun_NoPromptKeepsFirstMember(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer
	opts := f.options("Delete\nyes, I am sure\n", &out)
	opts.NoPrompt = true

	outcome, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, outcome.Status)
	assert.FileExists(t, f.a1)
	assert.FileExists(t, f.a2)
	assert.NoFileExists(t, f.b1)
	assert.NoFileExists(t, f.b2)
}

func TestRun_NoDuplicates(t *testing.T) {
	var out bytes.Buffer
	outcome, err := Run(context.Background(), Options{
		Reader: prompt.NewScanner(strings.NewReader(""), &out),
		Out:    &out,
		Source: rawSource(""),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusNoDuplicates, outcome.Status)
	assert.Contains(t, out.String(), MsgNoDuplicates)
}

func TestRun_MalformedInputBeforePrompting(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(context.Background(), Options{
		Reader: prompt.NewScanner(strings.NewReader("1\n"), &out),
		Out:    &out,
		Source: rawSource("not a header\n/a\n/b\n"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedInput))
	assert.NotContains(t, out.String(), "Keep which file")
}

func TestRun_MalformedCacheIsDropped(t *testing.T) {
	store := cache.New(afero.NewMemMapFs(), ".dupekeep.cache")
	store.Store("not a header\n/a\n/b\n")
	var out bytes.Buffer

	_, err := Run(context.Background(), Options{
		Reader: prompt.NewScanner(strings.NewReader("1\n"), &out),
		Out:    &out,
		Source: &detector.Cached{Source: rawSource(""), Cache: store},
		Cache:  store,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedInput))

	_, cached, err := store.Load()
	require.NoError(t, err)
	assert.False(t, cached, "a cache that fails to parse is not reused")
}

func TestRun_EndOfInputWhilePrompting(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer

	_, err := Run(context.Background(), f.options("", &out))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAborted))
	testutil.AssertUnchanged(t, "hello", f.a1, f.b1, f.a2, f.b2)
}

func TestRun_RequiresIO(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}
