package memcard

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rstms/sdfs"
)

// Import loads a host directory tree into the volume, preserving the
// host's modification times. The device must be mounted.
func (d *Device) Import(dir string) error {
	err := filepath.WalkDir(dir, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return Fatal(err)
		}
		if p == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return Fatal(err)
		}
		dst := "/" + filepath.ToSlash(rel)
		if de.IsDir() {
			if res := d.Mkdir(dst); res != sdfs.OK && res != sdfs.Exists {
				return Fatalf("mkdir %s: %s", dst, res)
			}
		} else {
			err := d.importFile(dst, p)
			if err != nil {
				return Fatal(err)
			}
		}
		info, err := de.Info()
		if err != nil {
			return Fatal(err)
		}
		if n, ok := d.walk(dst); ok {
			n.modTime = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return Fatal(err)
	}
	return nil
}

func (d *Device) importFile(dst, src string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return Fatal(err)
	}
	h, res := d.OpenFile(dst, sdfs.ModeWrite|sdfs.ModeCreateAlways)
	if res != sdfs.OK {
		return Fatalf("open %s: %s", dst, res)
	}
	if _, res := h.Write(data); res != sdfs.OK {
		h.Close()
		return Fatalf("write %s: %s", dst, res)
	}
	if res := h.Close(); res != sdfs.OK {
		return Fatalf("close %s: %s", dst, res)
	}
	return nil
}
