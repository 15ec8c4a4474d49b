package codec

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"

	"rostermem/internal/memproc"
)

// Encoding selects the on-wire text representation of a string field.
type Encoding int

const (
	// EncodingUTF16 is two bytes per character, little-endian. The default
	// for roster text.
	EncodingUTF16 Encoding = iota
	// EncodingASCII is one byte per character.
	EncodingASCII
)

// ErrBadCapacity is returned when a string field declares no positive
// character capacity.
var ErrBadCapacity = errors.New("string capacity must be positive")

// ParseEncoding maps loose schema type tags onto an Encoding. Anything not
// recognizably single-byte is UTF-16.
func ParseEncoding(tag string) Encoding {
	switch strings.ToLower(tag) {
	case "ascii", "string", "text", "char":
		return EncodingASCII
	default:
		return EncodingUTF16
	}
}

// charWidth returns the byte width of one character.
func (e Encoding) charWidth() int {
	if e == EncodingASCII {
		return 1
	}

	return 2
}

// ReadString reads a fixed-capacity string field. The result is cut at the
// first NUL character.
func ReadString(p memproc.Process, addr uint64, capacity int, enc Encoding) (string, error) {
	if capacity <= 0 {
		return "", fmt.Errorf("capacity %d: %w", capacity, ErrBadCapacity)
	}

	raw, err := p.ReadBytes(addr, capacity*enc.charWidth())
	if err != nil {
		return "", err
	}

	var s string
	if enc == EncodingASCII {
		s = string(raw)
	} else {
		units := make([]uint16, capacity)
		for i := range units {
			units[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
		}

		s = string(utf16.Decode(units))
	}

	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}

	return s, nil
}

// WriteString stores a string into a fixed-capacity field. The value is
// truncated to the capacity and the remaining slots are zeroed, so a shorter
// replacement never leaves trailing characters behind. The full capacity is
// always written.
func WriteString(p memproc.Process, addr uint64, value string, capacity int, enc Encoding) error {
	if capacity <= 0 {
		return fmt.Errorf("capacity %d: %w", capacity, ErrBadCapacity)
	}

	buf := make([]byte, capacity*enc.charWidth())

	if enc == EncodingASCII {
		for i := 0; i < len(value) && i < capacity; i++ {
			buf[i] = value[i]
		}
	} else {
		units := utf16.Encode([]rune(value))
		for i := 0; i < len(units) && i < capacity; i++ {
			buf[2*i] = byte(units[i])
			buf[2*i+1] = byte(units[i] >> 8)
		}
	}

	return p.WriteBytes(addr, buf)
}
