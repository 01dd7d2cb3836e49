// Package executor applies a confirmed action plan to the filesystem.
//
// Nothing is touched unless Confirm has read the exact confirmation phrase.
// Each plan entry is applied on its own: a failing entry is recorded as an
// ErrExecution failure and the remaining entries are still attempted. Link
// modes build the link under a temporary sibling name and rename it over the
// discarded file, so a path is never left missing when linking fails.
package executor
