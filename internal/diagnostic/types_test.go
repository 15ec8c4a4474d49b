package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryDeduplicatesWarnings(t *testing.T) {
	var d Diagnostics

	assert.Empty(t, d.Summary())

	d.AddWarning("field-dropped", "zero length", "Vitals", "Broken")
	d.AddWarning("field-dropped", "zero length", "Vitals", "Broken")
	d.AddWarning("stride-missing", "no record size", "", "")

	assert.Len(t, d.Warnings, 3)
	assert.Equal(t,
		"[Vitals] Broken: [field-dropped] zero length ; [stride-missing] no record size",
		d.Summary())
}
