package sd

import (
	"fmt"
	"io"
	"strings"

	"github.com/rstms/sdfs"
)

// LsFlags selects the columns and behavior of File.Ls.
type LsFlags uint8

const (
	LsDate    LsFlags = 1 << iota // modification date, YYYY-MM-DD
	LsTime                        // modification time, HH:MM:SS
	LsSize                        // file size in bytes
	LsRecurse                     // descend into subdirectories
)

// Ls writes one line per non-hidden child of a directory handle to w,
// starting at the iterator's current position. Each metadata column is
// switched by its own flag. With LsRecurse a child directory is opened
// by its full path, listed two spaces deeper, and closed again; a
// child that fails to open gets an error line instead of a listing.
func (f *File) Ls(w io.Writer, flags LsFlags, indent int) {
	if f.kind != boundDir {
		return
	}
	pad := strings.Repeat(" ", indent)
	for {
		info, res := f.dir.ReadNext()
		f.res = res
		if res != sdfs.OK || info.Name == "" {
			return
		}
		if strings.HasPrefix(info.Name, ".") {
			continue
		}
		fmt.Fprintf(w, "%s%s", pad, info.Name)

		if !info.IsDir() {
			if flags&LsDate != 0 {
				fmt.Fprintf(w, " %s", info.ModTime.Format("2006-01-02"))
			}
			if flags&LsTime != 0 {
				fmt.Fprintf(w, " %s", info.ModTime.Format("15:04:05"))
			}
			if flags&LsSize != 0 {
				fmt.Fprintf(w, " %d", info.Size)
			}
			fmt.Fprintln(w)
			continue
		}

		fmt.Fprintln(w)
		if flags&LsRecurse == 0 {
			continue
		}
		child := f.vol.Open(joinPath(f.path, info.Name), sdfs.FileRead)
		if child.IsOpen() {
			child.Ls(w, flags, indent+2)
			child.Close()
		} else {
			fmt.Fprintf(w, "%serror opening %s\n", pad, info.Name)
		}
	}
}
