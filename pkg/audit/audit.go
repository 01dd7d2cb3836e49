// Package audit keeps a YAML journal of every applied action plan, so that
// the replaced files of a past run can be looked up after the fact.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/executor"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Entry is one applied plan entry
type Entry struct {
	Discarded string `yaml:"discarded"`
	Keeper    string `yaml:"keeper"`
	Size      int64  `yaml:"size"`
	Error     string `yaml:"error,omitempty"`
}

// Record describes one apply pass
type Record struct {
	ID      string    `yaml:"id"`
	Time    time.Time `yaml:"time"`
	Root    string    `yaml:"root"`
	Mode    string    `yaml:"mode"`
	Applied int       `yaml:"applied"`
	Failed  int       `yaml:"failed"`
	Entries []Entry   `yaml:"entries"`
}

// NewRecord builds a journal record from an executor result.
func NewRecord(root string, res *executor.Result) Record {
	rec := Record{
		ID:      uuid.NewString(),
		Time:    time.Now().UTC().Truncate(time.Second),
		Root:    root,
		Mode:    string(res.Mode),
		Entries: make([]Entry, 0, len(res.Entries)),
	}
	for _, r := range res.Entries {
		e := Entry{Discarded: r.Entry.Discarded, Keeper: r.Entry.Keeper, Size: r.Entry.Size}
		if r.Error != nil {
			e.Error = r.Error.Error()
			rec.Failed++
		} else {
			rec.Applied++
		}
		rec.Entries = append(rec.Entries, e)
	}
	return rec
}

// DefaultDir is where journal files go unless configured otherwise.
func DefaultDir() string {
	return filepath.Join(xdg.StateHome, "dupekeep", "journal")
}

// Journal writes records into a directory, one file per record.
type Journal struct {
	dir string
}

// NewJournal creates a journal in dir, or DefaultDir when dir is empty.
func NewJournal(dir string) *Journal {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Journal{dir: dir}
}

// Write stores rec and returns the file path.
func (j *Journal) Write(rec Record) (string, error) {
	if err := os.MkdirAll(j.dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "cannot create journal directory %s", j.dir)
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot encode journal record")
	}
	name := fmt.Sprintf("%s-%s.yaml", rec.Time.Format("20060102T150405Z"), rec.ID)
	path := filepath.Join(j.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "cannot write journal %s", path)
	}
	return path, nil
}

// Read loads a record written by Write.
func Read(path string) (Record, error) {
	var rec Record
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, errors.Wrapf(err, errors.ErrInternal, "cannot read journal %s", path)
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return rec, errors.Wrapf(err, errors.ErrInternal, "cannot decode journal %s", path)
	}
	return rec, nil
}
