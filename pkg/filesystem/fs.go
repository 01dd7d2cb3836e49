package filesystem

import "io/fs"

// FS is the filesystem surface needed to apply an action plan.
type FS interface {
	Lstat(name string) (fs.FileInfo, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Link(oldname, newname string) error
	Symlink(oldname, newname string) error
}
