package memcard

import (
	"github.com/rstms/sdfs"
)

// dirHandle iterates a snapshot of one directory's children, taken at
// open time in name order.
type dirHandle struct {
	dev     *Device
	entries []sdfs.EntryInfo
	next    int
	closed  bool
}

var _ sdfs.DirHandle = (*dirHandle)(nil)

func (h *dirHandle) ReadNext() (sdfs.EntryInfo, sdfs.Result) {
	if h.closed || !h.dev.mounted {
		return sdfs.EntryInfo{}, sdfs.Invalid
	}
	if h.next >= len(h.entries) {
		// exhausted: OK with an empty name
		return sdfs.EntryInfo{}, sdfs.OK
	}
	e := h.entries[h.next]
	h.next++
	return e, sdfs.OK
}

func (h *dirHandle) Close() sdfs.Result {
	if h.closed {
		return sdfs.Invalid
	}
	h.closed = true
	h.dev.inUse--
	return sdfs.OK
}
