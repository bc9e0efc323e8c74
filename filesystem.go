package sdfs

// DetectConfig describes the card-detect wiring of a socket. The core
// never interprets it; it is handed to Card.Init unchanged.
type DetectConfig struct {
	Pin         uint32
	ActiveLevel uint32
}

// Card is the physical media beneath a filesystem driver.
type Card interface {
	Init(DetectConfig) Result
	Deinit() Result
}

// Driver provides access to one FAT filesystem on a card. All paths
// are absolute from the volume root, separated by '/'.
type Driver interface {
	Mount() Result
	Unmount() Result
	// RootPath returns the path of the volume root directory.
	RootPath() string
	Stat(path string) (EntryInfo, Result)
	OpenFile(path string, mode OpenMode) (FileHandle, Result)
	OpenDir(path string) (DirHandle, Result)
	Mkdir(path string) Result
	Unlink(path string) Result
}

// FileHandle is one open file slot on the driver. Drivers keep a small
// fixed pool of these; every successful open must be paired with a
// Close.
type FileHandle interface {
	Read(p []byte) (int, Result)
	Write(p []byte) (int, Result)
	Seek(pos uint32) Result
	Tell() uint32
	Size() uint32
	Sync() Result
	Close() Result
}
