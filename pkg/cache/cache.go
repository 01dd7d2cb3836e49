// Package cache stores raw duplicate-detector output in a scratch file so
// that an interrupted session can restart without rescanning.
package cache

import (
	"os"

	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultPath is the scratch file, relative to the working directory.
const DefaultPath = ".dupekeep.cache"

// Store reads and writes the scratch file on an afero filesystem.
type Store struct {
	fs     afero.Fs
	path   string
	logger zerolog.Logger
}

// New creates a store for path on fs. An empty path uses DefaultPath.
func New(fs afero.Fs, path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{fs: fs, path: path, logger: logging.GetLogger("cache")}
}

// NewOS creates a store on the real filesystem.
func NewOS(path string) *Store {
	return New(afero.NewOsFs(), path)
}

// Path returns the scratch file location
func (s *Store) Path() string {
	return s.path
}

// Load returns the cached output and true when the scratch file exists.
func (s *Store) Load() (string, bool, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrCache, "cannot read cache %s", s.path)
	}
	s.logger.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("Using cached duplicate list")
	return string(data), true, nil
}

// Store writes raw to the scratch file. It is best effort: failures are
// logged and swallowed.
func (s *Store) Store(raw string) {
	if err := afero.WriteFile(s.fs, s.path, []byte(raw), 0644); err != nil {
		s.logger.Debug().Err(err).Str("path", s.path).Msg("Could not write duplicate cache")
		return
	}
	s.logger.Debug().Str("path", s.path).Msg("Cached duplicate list")
}

// Invalidate removes the scratch file. A missing file is not an error.
func (s *Store) Invalidate() error {
	err := s.fs.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrCache, "cannot remove cache %s", s.path)
	}
	s.logger.Debug().Str("path", s.path).Msg("Duplicate cache invalidated")
	return nil
}
