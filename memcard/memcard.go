// Package memcard implements the sdfs card and driver contracts over
// an in-memory file tree. It stands in for a physical card in tests
// and host-side tooling, reproducing the behaviors a FAT driver
// exhibits on a small target: mount gating, a fixed pool of open
// handles, and single-level directory creation. Like the real thing it
// is not safe for concurrent use.
package memcard

import (
	"path"
	"sort"
	"strings"
	"time"

	"github.com/rstms/sdfs"
)

// DefaultSlots is the size of the open-handle pool unless overridden
// with WithSlots. FAT drivers on embedded targets typically allow a
// handful of simultaneously open objects.
const DefaultSlots = 8

// Device is an in-memory card with a FAT-look-alike volume on it.
type Device struct {
	root     *node
	inserted bool
	ready    bool
	mounted  bool
	detect   sdfs.DetectConfig
	slots    int
	inUse    int
	clock    func() time.Time
}

// ensure Device implements the driver contracts
var _ sdfs.Card = (*Device)(nil)
var _ sdfs.Driver = (*Device)(nil)

type node struct {
	name    string
	attr    sdfs.EntryAttr
	data    []byte
	modTime time.Time
	nodes   map[string]*node
}

func (n *node) isDir() bool {
	return n.attr&sdfs.AttrDirectory == sdfs.AttrDirectory
}

func (n *node) info() sdfs.EntryInfo {
	return sdfs.EntryInfo{
		Name:    n.name,
		Attr:    n.attr,
		Size:    uint32(len(n.data)),
		ModTime: n.modTime,
	}
}

// New returns an inserted, unmounted device with an empty volume.
func New() *Device {
	return &Device{
		root: &node{
			attr:    sdfs.AttrDirectory,
			modTime: time.Now(),
			nodes:   map[string]*node{},
		},
		inserted: true,
		slots:    DefaultSlots,
		clock:    time.Now,
	}
}

// WithSlots sets the size of the open-handle pool.
func (d *Device) WithSlots(n int) *Device {
	d.slots = n
	return d
}

// WithClock sets the timestamp source used for created and modified
// entries.
func (d *Device) WithClock(clock func() time.Time) *Device {
	d.clock = clock
	return d
}

// Eject simulates removing the card: initialization fails until
// Insert.
func (d *Device) Eject() {
	d.inserted = false
	d.ready = false
	d.mounted = false
}

// Insert makes the card present again after an Eject.
func (d *Device) Insert() {
	d.inserted = true
}

func (d *Device) Init(detect sdfs.DetectConfig) sdfs.Result {
	if !d.inserted {
		return sdfs.NotReady
	}
	d.detect = detect
	d.ready = true
	return sdfs.OK
}

func (d *Device) Deinit() sdfs.Result {
	if !d.ready {
		return sdfs.NotReady
	}
	d.ready = false
	return sdfs.OK
}

func (d *Device) Mount() sdfs.Result {
	if !d.ready {
		return sdfs.NotReady
	}
	d.mounted = true
	return sdfs.OK
}

func (d *Device) Unmount() sdfs.Result {
	if !d.mounted {
		return sdfs.NotReady
	}
	d.mounted = false
	return sdfs.OK
}

func (d *Device) RootPath() string {
	return "/"
}

// walk traverses the tree to the node at name, nil if absent.
func (d *Device) walk(name string) (*node, bool) {
	cur := d.root
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." {
			continue
		}
		if !cur.isDir() {
			return nil, false
		}
		next, ok := cur.nodes[part]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// walkDir resolves the parent directory of name and the final
// segment.
func (d *Device) walkDir(name string) (*node, string, bool) {
	dir, base := path.Split(strings.TrimSuffix(name, "/"))
	parent, ok := d.walk(dir)
	if !ok || !parent.isDir() {
		return nil, "", false
	}
	return parent, base, true
}

func (d *Device) Stat(name string) (sdfs.EntryInfo, sdfs.Result) {
	if !d.mounted {
		return sdfs.EntryInfo{}, sdfs.NotReady
	}
	n, ok := d.walk(name)
	if !ok {
		return sdfs.EntryInfo{}, sdfs.NotFound
	}
	return n.info(), sdfs.OK
}

func (d *Device) OpenFile(name string, mode sdfs.OpenMode) (sdfs.FileHandle, sdfs.Result) {
	if !d.mounted {
		return nil, sdfs.NotReady
	}
	if d.inUse >= d.slots {
		return nil, sdfs.NoSlots
	}
	n, ok := d.walk(name)
	switch {
	case ok && n.isDir():
		return nil, sdfs.Denied
	case ok && mode&sdfs.ModeCreateNew != 0:
		return nil, sdfs.Exists
	case ok && mode&sdfs.ModeCreateAlways != 0:
		n.data = nil
		n.modTime = d.clock()
	case !ok:
		if mode&(sdfs.ModeCreateNew|sdfs.ModeCreateAlways|sdfs.ModeOpenAlways) == 0 {
			return nil, sdfs.NotFound
		}
		parent, base, pok := d.walkDir(name)
		if !pok || base == "" {
			return nil, sdfs.NotFound
		}
		n = &node{name: base, attr: sdfs.AttrArchive, modTime: d.clock()}
		parent.nodes[base] = n
	}
	d.inUse++
	h := &fileHandle{dev: d, node: n, mode: mode}
	if mode&sdfs.ModeAppend != 0 {
		h.pos = uint32(len(n.data))
	}
	return h, sdfs.OK
}

func (d *Device) OpenDir(name string) (sdfs.DirHandle, sdfs.Result) {
	if !d.mounted {
		return nil, sdfs.NotReady
	}
	if d.inUse >= d.slots {
		return nil, sdfs.NoSlots
	}
	n, ok := d.walk(name)
	if !ok {
		return nil, sdfs.NotFound
	}
	if !n.isDir() {
		return nil, sdfs.Denied
	}

	// snapshot the children in name order so enumeration is stable
	names := make([]string, 0, len(n.nodes))
	for name := range n.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]sdfs.EntryInfo, 0, len(names))
	for _, name := range names {
		entries = append(entries, n.nodes[name].info())
	}

	d.inUse++
	return &dirHandle{dev: d, entries: entries}, sdfs.OK
}

func (d *Device) Mkdir(name string) sdfs.Result {
	if !d.mounted {
		return sdfs.NotReady
	}
	if n, ok := d.walk(name); ok {
		if n.isDir() {
			return sdfs.Exists
		}
		return sdfs.Denied
	}
	parent, base, ok := d.walkDir(name)
	if !ok || base == "" {
		return sdfs.NotFound
	}
	parent.nodes[base] = &node{
		name:    base,
		attr:    sdfs.AttrDirectory,
		modTime: d.clock(),
		nodes:   map[string]*node{},
	}
	return sdfs.OK
}

func (d *Device) Unlink(name string) sdfs.Result {
	if !d.mounted {
		return sdfs.NotReady
	}
	parent, base, ok := d.walkDir(name)
	if !ok {
		return sdfs.NotFound
	}
	n, ok := parent.nodes[base]
	if !ok {
		return sdfs.NotFound
	}
	if n.isDir() && len(n.nodes) > 0 {
		return sdfs.Denied
	}
	delete(parent.nodes, base)
	return sdfs.OK
}
