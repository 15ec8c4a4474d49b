package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"rostermem/internal/memproc"
)

// ErrFloatWidth is returned for a float width other than 4 or 8 bytes.
var ErrFloatWidth = errors.New("float width must be 4 or 8 bytes")

// ReadFloat decodes an IEEE-754 value of the given byte width.
func ReadFloat(p memproc.Process, addr uint64, width int) (float64, error) {
	switch width {
	case 4:
		raw, err := p.ReadBytes(addr, 4)
		if err != nil {
			return 0, err
		}

		return float64(math.Float32frombits(binary.LittleEndian.Uint32(raw))), nil
	case 8:
		raw, err := p.ReadBytes(addr, 8)
		if err != nil {
			return 0, err
		}

		return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
	default:
		return 0, fmt.Errorf("width %d: %w", width, ErrFloatWidth)
	}
}

// WriteFloat encodes an IEEE-754 value of the given byte width.
func WriteFloat(p memproc.Process, addr uint64, width int, value float64) error {
	switch width {
	case 4:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(value)))

		return p.WriteBytes(addr, buf)
	case 8:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, math.Float64bits(value))

		return p.WriteBytes(addr, buf)
	default:
		return fmt.Errorf("width %d: %w", width, ErrFloatWidth)
	}
}
