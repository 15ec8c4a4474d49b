// Package rating converts between raw packed field values and the display
// scales players see in game.
//
// Attribute-style ratings display on 25-99 but the underlying scale runs
// 25-110: the raw range 0..2^bits-1 maps proportionally onto the true scale
// and the display is clamped at 99. Tendencies display on 0-100 with a plain
// proportional mapping. Both directions round to nearest, so a display value
// written and read back is unchanged for any field of at least seven bits.
package rating

import (
	"math"

	"rostermem/internal/common"
)

const (
	// Min is the lowest display rating.
	Min = 25
	// MaxDisplay is the highest rating shown in game.
	MaxDisplay = 99
	// MaxTrue is the top of the underlying scale raw values map onto.
	MaxTrue = 110

	// TendencyMax is the top of the tendency display scale.
	TendencyMax = 100
)

// maxRaw returns the largest raw value a field of the given bit length can
// hold, or 0 when the length is unusable.
func maxRaw(bits int) int64 {
	if bits <= 0 || bits > 62 {
		return 0
	}

	return (1 << uint(bits)) - 1
}

// AttributeFromRaw converts a raw packed value into the 25-99 display scale.
func AttributeFromRaw(raw uint64, bits int) int {
	mr := maxRaw(bits)
	if mr <= 0 {
		return Min
	}

	trueRating := Min + float64(raw)/float64(mr)*(MaxTrue-Min)

	return int(math.Round(common.Clamp(trueRating, Min, MaxDisplay)))
}

// AttributeToRaw converts a 25-99 display rating into the raw packed value.
// Out-of-range ratings clamp to the display bounds.
func AttributeToRaw(displayRating float64, bits int) uint64 {
	mr := maxRaw(bits)
	if mr <= 0 {
		return 0
	}

	r := common.Clamp(displayRating, Min, MaxDisplay)
	fraction := common.Clamp((r-Min)/(MaxTrue-Min), 0, 1)

	return uint64(common.Clamp(math.Round(fraction*float64(mr)), 0, float64(mr)))
}

// DurabilityFromRaw converts a raw durability value; durability shares the
// attribute curve.
func DurabilityFromRaw(raw uint64, bits int) int {
	return AttributeFromRaw(raw, bits)
}

// DurabilityToRaw converts a durability display rating to raw.
func DurabilityToRaw(displayRating float64, bits int) uint64 {
	return AttributeToRaw(displayRating, bits)
}

// PotentialFromRaw converts a raw potential value; potential shares the
// attribute curve.
func PotentialFromRaw(raw uint64, bits int) int {
	return AttributeFromRaw(raw, bits)
}

// PotentialToRaw converts a potential display rating to raw.
func PotentialToRaw(displayRating float64, bits int) uint64 {
	return AttributeToRaw(displayRating, bits)
}

// TendencyFromRaw converts a raw packed value into the 0-100 tendency scale.
func TendencyFromRaw(raw uint64, bits int) int {
	mr := maxRaw(bits)
	if mr <= 0 {
		return 0
	}

	rating := float64(raw) / float64(mr) * TendencyMax

	return int(math.Round(common.Clamp(rating, 0, TendencyMax)))
}

// TendencyToRaw converts a 0-100 tendency rating into the raw packed value.
func TendencyToRaw(displayRating float64, bits int) uint64 {
	mr := maxRaw(bits)
	if mr <= 0 {
		return 0
	}

	fraction := common.Clamp(displayRating, 0, TendencyMax) / TendencyMax

	return uint64(common.Clamp(math.Round(fraction*float64(mr)), 0, float64(mr)))
}
