package sdfs

import "time"

type EntryAttr uint8

const (
	AttrReadOnly  EntryAttr = 0x01
	AttrHidden              = 0x02
	AttrSystem              = 0x04
	AttrVolumeId            = 0x08
	AttrDirectory           = 0x10
	AttrArchive             = 0x20
)

// EntryInfo is one directory-listing record as reported by the driver:
// name, attribute bits, size, and modification time.
type EntryInfo struct {
	Name    string
	Attr    EntryAttr
	Size    uint32
	ModTime time.Time
}

func (e *EntryInfo) IsDir() bool {
	return e.Attr&AttrDirectory == AttrDirectory
}

// DirHandle iterates the entries of one open directory. ReadNext
// reports exhaustion with OK and an empty Name. Like FileHandle,
// an open DirHandle occupies a driver slot until closed.
type DirHandle interface {
	ReadNext() (EntryInfo, Result)
	Close() Result
}
