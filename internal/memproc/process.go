package memproc

import (
	"encoding/binary"
	"errors"
)

// ErrUnmapped is returned when an address range is not readable or writable
// in the target process.
var ErrUnmapped = errors.New("address range is not mapped")

// Process is the live-process access capability consumed by the engine.
//
// Implementations wrap an OS-specific attachment (or a snapshot). Every call
// is synchronous; the engine treats any error as an operation-level failure
// and never retries on its own.
type Process interface {
	// ImageBase returns the load address of the main executable module.
	ImageBase() uint64

	// ReadBytes reads exactly n bytes starting at addr.
	ReadBytes(addr uint64, n int) ([]byte, error)

	// WriteBytes writes b starting at addr.
	WriteBytes(addr uint64, b []byte) error
}

// ReadUint64 reads a little-endian pointer-width value at addr.
func ReadUint64(p Process, addr uint64) (uint64, error) {
	b, err := p.ReadBytes(addr, 8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b), nil
}

// WriteUint64 writes a little-endian pointer-width value at addr.
func WriteUint64(p Process, addr uint64, v uint64) error {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)

	return p.WriteBytes(addr, b)
}
