// Package plan turns resolved keeper choices into an auditable action plan.
//
// A Plan lists every discarded file together with the keeper that replaces
// it. Together with a Mode (Delete, Hardlink or Symlink) it renders a sorted,
// column-aligned preview that shows exactly what the executor will do. Nothing
// in this package touches the filesystem.
package plan
