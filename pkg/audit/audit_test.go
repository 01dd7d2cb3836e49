package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/executor"
	"github.com/arthur-debert/dupekeep/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *executor.Result {
	return &executor.Result{
		Mode: plan.ModeHardlink,
		Entries: []executor.EntryResult{
			{Entry: plan.Entry{Discarded: "B/1.txt", Keeper: "A/1.txt", Size: 1000}},
			{
				Entry: plan.Entry{Discarded: "B/2.txt", Keeper: "A/2.txt", Size: 1000},
				Error: errors.New(errors.ErrExecution, "cross-device link"),
			},
		},
	}
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("/data", sampleResult())

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "/data", rec.Root)
	assert.Equal(t, "Hardlink", rec.Mode)
	assert.Equal(t, 1, rec.Applied)
	assert.Equal(t, 1, rec.Failed)
	require.Len(t, rec.Entries, 2)
	assert.Empty(t, rec.Entries[0].Error)
	assert.Contains(t, rec.Entries[1].Error, "cross-device link")
}

func TestJournal_WriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "journal")
	rec := NewRecord("/data", sampleResult())

	path, err := NewJournal(dir).Write(rec)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Contains(t, filepath.Base(path), rec.ID)

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.True(t, rec.Time.Equal(got.Time))
	assert.Equal(t, rec.Entries, got.Entries)
	assert.Equal(t, rec.Applied, got.Applied)
}

func TestRead_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: [unterminated"), 0644))

	_, err := Read(path)
	assert.Error(t, err)

	_, err = Read(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewJournal_DefaultDir(t *testing.T) {
	j := NewJournal("")
	assert.Equal(t, DefaultDir(), j.dir)
}
