package codec

import (
	"errors"
	"fmt"

	"rostermem/internal/memproc"
	"rostermem/internal/offsets"
)

// ErrNilStructPointer is returned when a field's indirection pointer reads
// back as zero.
var ErrNilStructPointer = errors.New("struct pointer is nil")

// FieldAddress resolves the absolute address of a field within a record,
// following its one-level indirection when declared.
func FieldAddress(p memproc.Process, recordAddr uint64, f offsets.Field) (uint64, error) {
	return FieldAddressCached(p, recordAddr, f, nil)
}

// FieldAddressCached is FieldAddress with a per-record pointer cache keyed by
// indirection offset. Batch writers pass one cache per record so a shared
// sub-structure pointer is read once.
func FieldAddressCached(p memproc.Process, recordAddr uint64, f offsets.Field, cache map[int64]uint64) (uint64, error) {
	if !f.Deref || f.DerefOffset == 0 {
		return recordAddr + uint64(f.Offset), nil
	}

	var (
		ptr uint64
		ok  bool
	)

	if cache != nil {
		ptr, ok = cache[f.DerefOffset]
	}

	if !ok {
		var err error

		ptr, err = memproc.ReadUint64(p, recordAddr+uint64(f.DerefOffset))
		if err != nil {
			return 0, fmt.Errorf("read struct pointer for %s.%s: %w", f.Category, f.Name, err)
		}

		if cache != nil {
			cache[f.DerefOffset] = ptr
		}
	}

	if ptr == 0 {
		return 0, fmt.Errorf("%s.%s: %w", f.Category, f.Name, ErrNilStructPointer)
	}

	return ptr + uint64(f.Offset), nil
}

// ReadFieldRaw reads a field's raw packed value at its resolved address.
// String and float kinds have their own typed entry points; this is the path
// every other kind takes.
func ReadFieldRaw(p memproc.Process, recordAddr uint64, f offsets.Field) (uint64, error) {
	addr, err := FieldAddress(p, recordAddr, f)
	if err != nil {
		return 0, err
	}

	return ReadBits(p, addr, f.StartBit, f.Bits)
}

// WriteFieldRaw writes a field's raw packed value at its resolved address.
func WriteFieldRaw(p memproc.Process, recordAddr uint64, f offsets.Field, value uint64) error {
	return WriteFieldRawCached(p, recordAddr, f, value, nil)
}

// WriteFieldRawCached is WriteFieldRaw with a shared indirection cache.
func WriteFieldRawCached(p memproc.Process, recordAddr uint64, f offsets.Field, value uint64, cache map[int64]uint64) error {
	addr, err := FieldAddressCached(p, recordAddr, f, cache)
	if err != nil {
		return err
	}

	return WriteBits(p, addr, f.StartBit, f.Bits, value)
}
