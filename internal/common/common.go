// Package common holds small helpers shared across the engine packages.
package common

// UnknownStr is the fallback label for enum values outside their defined range.
const UnknownStr = "unknown"

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Clamp limits value to the [lo, hi] range, both inclusive.
func Clamp[T number](value, lo, hi T) T {
	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// IsInRange checks if a value is within the specified range, both inclusive.
func IsInRange[T number](lo T, value T, hi T) bool {
	return lo <= value && value <= hi
}
