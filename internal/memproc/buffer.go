package memproc

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

const pageSize = 0x1000

// BufferProcess is a Process over a sparse in-memory image. Pages are
// allocated on first write; reads from unmapped pages fail the same way a
// foreign-process read of an unmapped range would.
type BufferProcess struct {
	imageBase uint64
	pages     map[uint64][]byte
}

// NewBufferProcess returns an empty image whose main module loads at imageBase.
func NewBufferProcess(imageBase uint64) *BufferProcess {
	return &BufferProcess{
		imageBase: imageBase,
		pages:     make(map[uint64][]byte),
	}
}

func (b *BufferProcess) ImageBase() uint64 { return b.imageBase }

func (b *BufferProcess) page(addr uint64, create bool) ([]byte, uint64, bool) {
	key := addr / pageSize
	pg, ok := b.pages[key]

	if !ok && create {
		pg = make([]byte, pageSize)
		b.pages[key] = pg
		ok = true
	}

	return pg, addr % pageSize, ok
}

// ReadBytes reads exactly n bytes starting at addr.
func (b *BufferProcess) ReadBytes(addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("read of %d bytes at 0x%X: %w", n, addr, ErrUnmapped)
	}

	out := make([]byte, n)
	for i := 0; i < n; {
		pg, off, ok := b.page(addr+uint64(i), false)
		if !ok {
			return nil, fmt.Errorf("read of %d bytes at 0x%X: %w", n, addr, ErrUnmapped)
		}

		i += copy(out[i:], pg[off:])
	}

	return out, nil
}

// WriteBytes writes b starting at addr, mapping pages as needed.
func (b *BufferProcess) WriteBytes(addr uint64, data []byte) error {
	for i := 0; i < len(data); {
		pg, off, _ := b.page(addr+uint64(i), true)
		i += copy(pg[off:], data[i:])
	}

	return nil
}

// PutUint64 seeds a little-endian pointer-width value, for building synthetic
// pointer chains.
func (b *BufferProcess) PutUint64(addr uint64, v uint64) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	_ = b.WriteBytes(addr, buf)
}

// PutUTF16 seeds a NUL-terminated UTF-16LE string.
func (b *BufferProcess) PutUTF16(addr uint64, s string) {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, (len(units)+1)*2)

	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}

	_ = b.WriteBytes(addr, buf)
}

// PutASCII seeds a NUL-terminated single-byte string.
func (b *BufferProcess) PutASCII(addr uint64, s string) {
	_ = b.WriteBytes(addr, append([]byte(s), 0))
}
