package sdfs

// Result is the outcome of a driver operation. The zero value is
// success. Results are the only error channel across the volume
// surface; handles store the most recent one.
type Result uint8

const (
	OK       Result = iota // success
	NotFound               // no entry at the path
	Exists                 // entry already present
	NotReady               // card absent or volume not mounted
	NoSlots                // open-handle pool or memory exhausted
	Denied                 // operation not permitted on this entry kind
	Invalid                // bad argument or handle state
	DiskErr                // low-level media failure
)

func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case NotFound:
		return "not found"
	case Exists:
		return "exists"
	case NotReady:
		return "not ready"
	case NoSlots:
		return "no slots"
	case Denied:
		return "denied"
	case Invalid:
		return "invalid"
	case DiskErr:
		return "disk error"
	}
	return "unknown"
}
