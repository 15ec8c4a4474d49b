package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributeEndpoints(t *testing.T) {
	assert.Equal(t, uint64(0), AttributeToRaw(25, 7))
	assert.Equal(t, 25, AttributeFromRaw(0, 7))

	// 99 on a 7-bit field lands at 111 of 127; the true scale tops out at
	// 110 so the raw maximum reads back clamped to 99.
	assert.Equal(t, uint64(111), AttributeToRaw(99, 7))
	assert.Equal(t, 99, AttributeFromRaw(127, 7))
}

func TestAttributeRoundtripAllDisplayValues(t *testing.T) {
	for _, bits := range []int{7, 8, 10, 16} {
		for r := Min; r <= MaxDisplay; r++ {
			raw := AttributeToRaw(float64(r), bits)
			assert.Equal(t, r, AttributeFromRaw(raw, bits), "rating %d bits %d", r, bits)
		}
	}
}

func TestAttributeClampsOutOfRange(t *testing.T) {
	assert.Equal(t, AttributeToRaw(25, 8), AttributeToRaw(-3, 8))
	assert.Equal(t, AttributeToRaw(99, 8), AttributeToRaw(250, 8))
}

func TestTendencyRoundtripAllDisplayValues(t *testing.T) {
	for _, bits := range []int{7, 8, 10} {
		for r := 0; r <= TendencyMax; r++ {
			raw := TendencyToRaw(float64(r), bits)
			assert.Equal(t, r, TendencyFromRaw(raw, bits), "tendency %d bits %d", r, bits)
		}
	}
}

func TestTendencyEndpoints(t *testing.T) {
	assert.Equal(t, uint64(0), TendencyToRaw(0, 8))
	assert.Equal(t, uint64(255), TendencyToRaw(100, 8))
	assert.Equal(t, 100, TendencyFromRaw(255, 8))
}

func TestUnusableBitLengths(t *testing.T) {
	assert.Equal(t, Min, AttributeFromRaw(10, 0))
	assert.Equal(t, uint64(0), AttributeToRaw(80, -1))
	assert.Equal(t, 0, TendencyFromRaw(10, 0))
	assert.Equal(t, uint64(0), TendencyToRaw(50, 0))
}

func TestPotentialAndDurabilityShareAttributeCurve(t *testing.T) {
	for r := Min; r <= MaxDisplay; r++ {
		assert.Equal(t, AttributeToRaw(float64(r), 8), PotentialToRaw(float64(r), 8))
		assert.Equal(t, AttributeToRaw(float64(r), 8), DurabilityToRaw(float64(r), 8))
	}

	assert.Equal(t, 62, PotentialFromRaw(PotentialToRaw(62, 7), 7))
	assert.Equal(t, 62, DurabilityFromRaw(DurabilityToRaw(62, 7), 7))
}
