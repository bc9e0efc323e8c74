package sd

import (
	"strings"

	"github.com/rstms/sdfs"
)

type resourceKind uint8

const (
	unbound resourceKind = iota
	boundFile
	boundDir
)

// File is a handle to one filesystem object, file or directory. At
// most one underlying resource is bound at a time; an empty path marks
// the handle unbound. File I/O methods called on a handle that is not
// bound to a file return their failure sentinel and store Invalid.
type File struct {
	vol  *Volume
	path string
	kind resourceKind
	file sdfs.FileHandle
	dir  sdfs.DirHandle
	res  sdfs.Result
}

// IsOpen reports whether the handle is bound to an open file or
// directory.
func (f *File) IsOpen() bool {
	return f.path != "" && f.kind != unbound
}

// LastResult returns the most recent driver result stored on the
// handle. After a failed Open or an exhausted OpenNextFile it is the
// only way to tell why the handle is unbound.
func (f *File) LastResult() sdfs.Result {
	return f.res
}

// Path returns the full path the handle was opened with, empty once
// closed.
func (f *File) Path() string {
	return f.path
}

// Name returns the final path segment.
func (f *File) Name() string {
	if i := strings.LastIndexByte(f.path, '/'); i >= 0 {
		return f.path[i+1:]
	}
	return f.path
}

func (f *File) fileBound() bool {
	if f.kind != boundFile {
		f.res = sdfs.Invalid
		return false
	}
	return true
}

// Read1 reads one byte at the current position, or -1 at end of file
// or on any driver error.
func (f *File) Read1() int {
	if !f.fileBound() {
		return -1
	}
	var b [1]byte
	n, res := f.file.Read(b[:])
	f.res = res
	if res != sdfs.OK || n != 1 {
		return -1
	}
	return int(b[0])
}

// Read fills buf from the current position and returns the number of
// bytes transferred, short at end of file, or -1 on a driver error.
func (f *File) Read(buf []byte) int {
	if !f.fileBound() {
		return -1
	}
	n, res := f.file.Read(buf)
	f.res = res
	if res != sdfs.OK {
		return -1
	}
	return n
}

// Peek reads one byte without consuming it. The position is recorded
// before the read and restored afterwards, so Peek at position 0 never
// attempts a negative seek.
func (f *File) Peek() int {
	if !f.fileBound() {
		return -1
	}
	pos := f.file.Tell()
	b := f.Read1()
	if res := f.file.Seek(pos); res != sdfs.OK {
		f.res = res
		return -1
	}
	return b
}

// Write copies buf to the file at the current position and returns the
// count reported by the driver, 0 on total failure. Nothing is flushed
// here; call Flush or Close to commit.
func (f *File) Write(buf []byte) int {
	if !f.fileBound() {
		return 0
	}
	n, res := f.file.Write(buf)
	f.res = res
	return n
}

// Write1 writes one byte at the current position and returns the
// count, 0 on failure.
func (f *File) Write1(b byte) int {
	return f.Write([]byte{b})
}

// Flush commits buffered writes to the card.
func (f *File) Flush() {
	if !f.fileBound() {
		return
	}
	f.res = f.file.Sync()
}

// Position returns the current offset within the file.
func (f *File) Position() uint32 {
	if !f.fileBound() {
		return 0
	}
	return f.file.Tell()
}

// Size returns the total length of the file.
func (f *File) Size() uint32 {
	if !f.fileBound() {
		return 0
	}
	return f.file.Size()
}

// Seek moves the read/write position. pos may be anywhere up to and
// including end of file; anything past that fails and leaves the
// position unchanged.
func (f *File) Seek(pos uint32) bool {
	if !f.fileBound() {
		return false
	}
	if pos > f.file.Size() {
		return false
	}
	f.res = f.file.Seek(pos)
	return f.res == sdfs.OK
}

// Available reports the bytes left before end of file, capped at
// 0x7FFF to fit the 16-bit convention of streaming callers.
func (f *File) Available() int {
	n := f.Size() - f.Position()
	if n > 0x7FFF {
		return 0x7FFF
	}
	return int(n)
}

// IsDir reports whether the handle names a directory. A handle that
// carries a path but no bound resource falls back to a driver stat on
// its path. Calling IsDir on a closed or never-bound handle with no
// path is a programming error.
func (f *File) IsDir() bool {
	if f.path == "" {
		panic("sd: IsDir on an unbound handle")
	}
	switch f.kind {
	case boundDir:
		return true
	case boundFile:
		return false
	}
	info, res := f.vol.drv.Stat(f.path)
	f.res = res
	return res == sdfs.OK && info.IsDir()
}

// OpenNextFile advances the directory iterator past hidden entries
// (names starting with '.') and opens the next real entry with the
// given mode, composing its full path from the directory's own path.
// Once the directory is exhausted the returned handle is unbound and
// LastResult carries the driver's final word.
func (f *File) OpenNextFile(mode sdfs.OpenMode) *File {
	next := &File{vol: f.vol}
	if f.kind != boundDir {
		next.res = sdfs.Invalid
		return next
	}
	for {
		info, res := f.dir.ReadNext()
		f.res = res
		if res != sdfs.OK || info.Name == "" {
			next.res = res
			return next
		}
		if strings.HasPrefix(info.Name, ".") {
			continue
		}
		return f.vol.Open(joinPath(f.path, info.Name), mode)
	}
}

// RewindDirectory restarts directory enumeration at the first entry by
// closing and reopening the iterator at the handle's own path. No-op
// on a non-directory handle.
func (f *File) RewindDirectory() {
	if f.kind != boundDir {
		return
	}
	f.dir.Close()
	dh, res := f.vol.drv.OpenDir(f.path)
	f.res = res
	if res != sdfs.OK {
		f.dir = nil
		f.kind = unbound
		return
	}
	f.dir = dh
}

// Close releases the underlying resource and unbinds the handle. A
// bound file is flushed first. Closing an already-closed handle is a
// no-op.
func (f *File) Close() {
	if f.path == "" {
		return
	}
	switch f.kind {
	case boundFile:
		f.file.Sync()
		f.res = f.file.Close()
		f.file = nil
	case boundDir:
		f.res = f.dir.Close()
		f.dir = nil
	}
	f.kind = unbound
	f.path = ""
}

// joinPath concatenates a parent path and an entry name with exactly
// one separator between them.
func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
