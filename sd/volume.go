package sd

import (
	"github.com/rstms/sdfs"
)

// Volume owns the mount lifecycle of one FAT filesystem on one card
// and resolves slash-delimited paths to open handles. Construct one
// with New, bracket use with Begin and End. A Volume serializes
// nothing; callers on concurrent contexts must coordinate access
// themselves.
type Volume struct {
	card sdfs.Card
	drv  sdfs.Driver
}

func New(card sdfs.Card, drv sdfs.Driver) *Volume {
	return &Volume{card: card, drv: drv}
}

// Begin initializes the card using the supplied detect wiring, then
// mounts the filesystem. It returns true only if both steps succeed.
func (v *Volume) Begin(detect sdfs.DetectConfig) bool {
	if v.card.Init(detect) != sdfs.OK {
		return false
	}
	return v.drv.Mount() == sdfs.OK
}

// End unmounts the filesystem, then deinitializes the card. Calling
// End on a volume that is not mounted returns false.
func (v *Volume) End() bool {
	if v.drv.Unmount() != sdfs.OK {
		return false
	}
	return v.card.Deinit() == sdfs.OK
}

// Exists reports whether an entry, file or directory, is present at
// path.
func (v *Volume) Exists(path string) bool {
	_, res := v.drv.Stat(path)
	return res == sdfs.OK
}

// Mkdir creates a single directory level. It succeeds when the
// directory was created or already exists as a directory. Parents are
// not created: Mkdir("a/b/c") fails unless "a/b" exists.
func (v *Volume) Mkdir(path string) bool {
	res := v.drv.Mkdir(path)
	return res == sdfs.OK || res == sdfs.Exists
}

// Rmdir removes an empty directory.
func (v *Volume) Rmdir(path string) bool {
	return v.drv.Unlink(path) == sdfs.OK
}

// Remove unlinks a file.
func (v *Volume) Remove(path string) bool {
	return v.drv.Unlink(path) == sdfs.OK
}

// Open resolves path to a handle. The path is first tried as a file
// with the given mode; if that fails it is retried as a directory,
// ignoring mode. A write mode on a path with no entry behind it
// creates the file. The returned handle is never partially bound: on
// total failure it is unbound and carries the last driver result.
func (v *Volume) Open(path string, mode sdfs.OpenMode) *File {
	f := &File{vol: v, path: path}

	if mode&sdfs.ModeWrite != 0 && !v.Exists(path) {
		mode |= sdfs.ModeOpenAlways
	}

	fh, res := v.drv.OpenFile(path, mode)
	f.res = res
	if res == sdfs.OK {
		f.kind = boundFile
		f.file = fh
		return f
	}

	dh, res := v.drv.OpenDir(path)
	f.res = res
	if res == sdfs.OK {
		f.kind = boundDir
		f.dir = dh
		return f
	}

	f.path = ""
	return f
}

// OpenRoot opens the volume root directory.
func (v *Volume) OpenRoot() *File {
	return v.Open(v.drv.RootPath(), sdfs.FileRead)
}
