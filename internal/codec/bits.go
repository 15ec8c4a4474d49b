package codec

import (
	"errors"
	"fmt"

	"rostermem/internal/memproc"
)

// ErrBitRange is returned when a packed run does not fit the supported
// window: start bit 0-7, length 1-64.
var ErrBitRange = errors.New("bit run out of range")

// spanBytes returns the minimal byte count covering a bit run.
func spanBytes(startBit, bits int) int {
	return (startBit + bits + 7) / 8
}

func checkBitRun(startBit, bits int) error {
	if startBit < 0 || startBit > 7 || bits < 1 || bits > 64 {
		return fmt.Errorf("start %d length %d: %w", startBit, bits, ErrBitRange)
	}

	return nil
}

// ReadBits extracts an unsigned packed run starting at addr. Only the
// minimal covering byte span is read.
func ReadBits(p memproc.Process, addr uint64, startBit, bits int) (uint64, error) {
	if err := checkBitRun(startBit, bits); err != nil {
		return 0, err
	}

	n := spanBytes(startBit, bits)

	raw, err := p.ReadBytes(addr, n)
	if err != nil {
		return 0, err
	}

	lo, hi := leWords(raw)

	v := lo >> uint(startBit)
	if startBit > 0 {
		v |= hi << uint(64-startBit)
	}

	if bits < 64 {
		v &= (1 << uint(bits)) - 1
	}

	return v, nil
}

// WriteBits stores an unsigned packed run at addr, preserving every bit
// outside the run. Values wider than the run are truncated to it. The write
// is skipped when the stored bytes would not change.
func WriteBits(p memproc.Process, addr uint64, startBit, bits int, value uint64) error {
	if err := checkBitRun(startBit, bits); err != nil {
		return err
	}

	n := spanBytes(startBit, bits)

	raw, err := p.ReadBytes(addr, n)
	if err != nil {
		return err
	}

	lo, hi := leWords(raw)

	if bits < 64 {
		value &= (1 << uint(bits)) - 1
	}

	// The run covers at most 71 bits, so the overflow past the low word
	// always fits one byte.
	maskLo := uint64(0)
	if bits < 64 {
		maskLo = (1 << uint(bits)) - 1
	} else {
		maskLo = ^uint64(0)
	}
	maskLo <<= uint(startBit)

	newLo := (lo &^ maskLo) | ((value << uint(startBit)) & maskLo)
	newHi := hi

	if overflow := startBit + bits - 64; overflow > 0 {
		maskHi := uint64(1)<<uint(overflow) - 1
		newHi = (hi &^ maskHi) | ((value >> uint(64-startBit)) & maskHi)
	}

	if newLo == lo && newHi == hi {
		return nil
	}

	out := make([]byte, n)
	for i := 0; i < n && i < 8; i++ {
		out[i] = byte(newLo >> uint(8*i))
	}
	if n > 8 {
		out[8] = byte(newHi)
	}

	return p.WriteBytes(addr, out)
}

// leWords folds a little-endian byte span into a 64-bit word pair.
func leWords(raw []byte) (lo, hi uint64) {
	for i := 0; i < len(raw) && i < 8; i++ {
		lo |= uint64(raw[i]) << uint(8*i)
	}

	if len(raw) > 8 {
		hi = uint64(raw[8])
	}

	return lo, hi
}
