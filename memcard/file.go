package memcard

import (
	"github.com/rstms/sdfs"
)

// fileHandle is one open file slot on a Device.
type fileHandle struct {
	dev    *Device
	node   *node
	mode   sdfs.OpenMode
	pos    uint32
	closed bool
}

var _ sdfs.FileHandle = (*fileHandle)(nil)

func (h *fileHandle) Read(p []byte) (int, sdfs.Result) {
	if h.closed || !h.dev.mounted {
		return 0, sdfs.Invalid
	}
	if h.mode&sdfs.ModeRead == 0 {
		return 0, sdfs.Denied
	}
	if int(h.pos) >= len(h.node.data) {
		// at end of file: a successful zero-byte transfer
		return 0, sdfs.OK
	}
	n := copy(p, h.node.data[h.pos:])
	h.pos += uint32(n)
	return n, sdfs.OK
}

func (h *fileHandle) Write(p []byte) (int, sdfs.Result) {
	if h.closed || !h.dev.mounted {
		return 0, sdfs.Invalid
	}
	if h.mode&sdfs.ModeWrite == 0 {
		return 0, sdfs.Denied
	}
	end := int(h.pos) + len(p)
	if end > len(h.node.data) {
		grown := make([]byte, end)
		copy(grown, h.node.data)
		h.node.data = grown
	}
	copy(h.node.data[h.pos:], p)
	h.pos = uint32(end)
	h.node.modTime = h.dev.clock()
	return len(p), sdfs.OK
}

func (h *fileHandle) Seek(pos uint32) sdfs.Result {
	if h.closed {
		return sdfs.Invalid
	}
	if int(pos) > len(h.node.data) {
		return sdfs.Invalid
	}
	h.pos = pos
	return sdfs.OK
}

func (h *fileHandle) Tell() uint32 {
	return h.pos
}

func (h *fileHandle) Size() uint32 {
	return uint32(len(h.node.data))
}

func (h *fileHandle) Sync() sdfs.Result {
	if h.closed {
		return sdfs.Invalid
	}
	return sdfs.OK
}

func (h *fileHandle) Close() sdfs.Result {
	if h.closed {
		return sdfs.Invalid
	}
	h.closed = true
	h.dev.inUse--
	return sdfs.OK
}
