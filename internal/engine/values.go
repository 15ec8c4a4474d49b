package engine

import (
	"fmt"
	"strconv"
	"strings"

	"rostermem/internal/codec"
	"rostermem/internal/offsets"
	"rostermem/internal/rating"
)

// ratingScale classifies how a field's raw value maps to display units.
type ratingScale int

const (
	scaleNone ratingScale = iota
	scaleAttribute
	scaleTendency
)

// scaleFor picks the rating curve from the field's category.
func scaleFor(f offsets.Field) ratingScale {
	switch strings.ToLower(f.Category) {
	case "attributes", "durability", "potential":
		return scaleAttribute
	case "tendencies":
		return scaleTendency
	default:
		return scaleNone
	}
}

// GetDisplay reads a field and renders it in display units: ratings on their
// 25-99 or 0-100 scales, enums as their label, strings and floats as text,
// everything else as the raw decimal.
func (e *Editor) GetDisplay(h Handle, name, category string) (string, error) {
	f, ok := e.cat.Find(name, category)
	if !ok {
		return "", fmt.Errorf("%s.%s: %w", category, name, ErrUnknownField)
	}

	recordAddr, err := e.handleAddr(h)
	if err != nil {
		return "", err
	}

	switch {
	case f.Kind.IsString():
		addr, err := codec.FieldAddress(e.proc, recordAddr, f)
		if err != nil {
			return "", err
		}

		return codec.ReadString(e.proc, addr, f.Capacity, fieldEncoding(f))

	case f.Kind.IsFloat():
		addr, err := codec.FieldAddress(e.proc, recordAddr, f)
		if err != nil {
			return "", err
		}

		v, err := codec.ReadFloat(e.proc, addr, f.ByteWidth())
		if err != nil {
			return "", err
		}

		return strconv.FormatFloat(v, 'g', -1, 64), nil

	default:
		raw, err := codec.ReadFieldRaw(e.proc, recordAddr, f)
		if err != nil {
			return "", err
		}

		return e.renderRaw(f, raw), nil
	}
}

// renderRaw formats a packed value in display units.
func (e *Editor) renderRaw(f offsets.Field, raw uint64) string {
	if f.Kind == offsets.KindEnum {
		if raw < uint64(len(f.Values)) {
			return f.Values[raw]
		}

		return strconv.FormatUint(raw, 10)
	}

	switch scaleFor(f) {
	case scaleAttribute:
		return strconv.Itoa(rating.AttributeFromRaw(raw, f.Bits))
	case scaleTendency:
		return strconv.Itoa(rating.TendencyFromRaw(raw, f.Bits))
	default:
		return strconv.FormatUint(raw, 10)
	}
}

// SetDisplay parses a display-unit value and writes it into a field.
func (e *Editor) SetDisplay(h Handle, name, category, value string) error {
	f, ok := e.cat.Find(name, category)
	if !ok {
		return fmt.Errorf("%s.%s: %w", category, name, ErrUnknownField)
	}

	recordAddr, err := e.handleAddr(h)
	if err != nil {
		return err
	}

	switch {
	case f.Kind.IsString():
		addr, err := codec.FieldAddress(e.proc, recordAddr, f)
		if err != nil {
			return err
		}

		return codec.WriteString(e.proc, addr, value, f.Capacity, fieldEncoding(f))

	case f.Kind.IsFloat():
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%q is not a number: %w", value, ErrBadValue)
		}

		addr, err := codec.FieldAddress(e.proc, recordAddr, f)
		if err != nil {
			return err
		}

		return codec.WriteFloat(e.proc, addr, f.ByteWidth(), v)

	default:
		raw, err := e.parseRaw(f, value)
		if err != nil {
			return err
		}

		return codec.WriteFieldRaw(e.proc, recordAddr, f, raw)
	}
}

// parseRaw converts a display-unit string into the packed raw value.
func (e *Editor) parseRaw(f offsets.Field, value string) (uint64, error) {
	trimmed := strings.TrimSpace(value)

	if f.Kind == offsets.KindEnum {
		for i, label := range f.Values {
			if strings.EqualFold(label, trimmed) {
				return uint64(i), nil
			}
		}

		idx, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil || (len(f.Values) > 0 && idx >= uint64(len(f.Values))) {
			return 0, fmt.Errorf("%q matches no value of %s: %w", value, f.Name, ErrBadValue)
		}

		return idx, nil
	}

	switch scaleFor(f) {
	case scaleAttribute:
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a rating: %w", value, ErrBadValue)
		}

		return rating.AttributeToRaw(v, f.Bits), nil

	case scaleTendency:
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a rating: %w", value, ErrBadValue)
		}

		return rating.TendencyToRaw(v, f.Bits), nil

	default:
		raw, err := strconv.ParseUint(trimmed, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an unsigned value: %w", value, ErrBadValue)
		}

		if f.Bits < 64 && raw >= 1<<uint(f.Bits) {
			return 0, fmt.Errorf("%d exceeds %d bits: %w", raw, f.Bits, ErrBadValue)
		}

		return raw, nil
	}
}

// RawBits reads a field's packed value with no display conversion.
func (e *Editor) RawBits(h Handle, name, category string) (uint64, error) {
	f, ok := e.cat.Find(name, category)
	if !ok {
		return 0, fmt.Errorf("%s.%s: %w", category, name, ErrUnknownField)
	}

	recordAddr, err := e.handleAddr(h)
	if err != nil {
		return 0, err
	}

	return codec.ReadFieldRaw(e.proc, recordAddr, f)
}

// SetRawBits writes a field's packed value with no display conversion.
func (e *Editor) SetRawBits(h Handle, name, category string, raw uint64) error {
	f, ok := e.cat.Find(name, category)
	if !ok {
		return fmt.Errorf("%s.%s: %w", category, name, ErrUnknownField)
	}

	if f.Bits < 64 && raw >= 1<<uint(f.Bits) {
		return fmt.Errorf("%d exceeds %d bits: %w", raw, f.Bits, ErrBadValue)
	}

	recordAddr, err := e.handleAddr(h)
	if err != nil {
		return err
	}

	return codec.WriteFieldRaw(e.proc, recordAddr, f, raw)
}
