package sdfs

// OpenMode selects access and creation behavior for OpenFile.
type OpenMode uint8

const (
	ModeRead OpenMode = 1 << iota
	ModeWrite
	ModeCreateNew    // fail if the entry exists
	ModeCreateAlways // create, truncating any existing entry
	ModeOpenAlways   // create if absent, keep existing contents
	ModeAppend       // position at end of file after open
)

// Convenience modes matching the classic wrapper surface. FileWrite
// alone is enough to create a missing file: the volume opener injects
// ModeOpenAlways when the path has no entry behind it.
const (
	FileRead  = ModeRead
	FileWrite = ModeRead | ModeWrite | ModeAppend
)
