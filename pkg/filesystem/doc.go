// Package filesystem provides the filesystem implementations used by the
// executor.
//
// FS is the small set of primitives needed to replace a duplicate: remove,
// hardlink, symlink and rename. NewOS talks to the real filesystem; NewAferoFS
// wraps an afero.Fs so tests can run against an in-memory tree.
package filesystem
