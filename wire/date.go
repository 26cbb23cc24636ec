package wire

import "strconv"

// Date is an opaque 64-bit tick value. Its epoch and unit are defined by the
// application; the runtime only reads and writes it as an int64.
type Date int64

// Ticks returns the raw tick value.
func (d Date) Ticks() int64 {
	return int64(d)
}

func (d Date) String() string {
	return strconv.FormatInt(int64(d), 10)
}
