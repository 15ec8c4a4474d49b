package offsets

import (
	"errors"
	"strings"

	"rostermem/internal/diagnostic"
)

// ErrEmptySchema is returned when, after normalization, no usable field
// remains. It is the only fatal outcome of a schema load; everything lesser
// degrades to a diagnostic plus a disabled feature.
var ErrEmptySchema = errors.New("offset schema defines no usable fields")

// Document is the normalized form of one offset schema: a flat field list,
// pointer-chain candidates and strides per table, plus category metadata.
type Document struct {
	// Path is where the document was loaded from (empty for in-memory parses).
	Path string
	// Executable is the target process image name the schema was built for.
	Executable string
	// Version is the derived version label (e.g. "2K26"), when known.
	Version string

	// Fields is the canonical flat field list. Every entry has survived
	// normalization: offset >= 0 and a positive length.
	Fields []Field

	// Chains holds pointer-chain candidates per table, in declared order.
	Chains map[Table][]ChainSpec
	// Strides holds the record byte size per table. A missing stride
	// disables index-based addressing for that table.
	Strides map[Table]int64

	// SuperTypes maps lowercase category labels to explicit super-type
	// overrides from the document.
	SuperTypes map[string]string
	// CategoryNormalization maps lowercase category labels to canonical
	// display labels.
	CategoryNormalization map[string]string

	// Diags collects everything non-fatal observed during normalization.
	Diags diagnostic.Diagnostics
}

// Stride returns the record size for a table and whether it is known.
func (d *Document) Stride(t Table) (int64, bool) {
	s, ok := d.Strides[t]
	return s, ok && s > 0
}

// TableChains returns the chain candidates for a table in declared order.
func (d *Document) TableChains(t Table) []ChainSpec {
	return d.Chains[t]
}

// versionHint extracts the two-digit generation from an executable name like
// "nba2k26.exe". Empty when the name carries no generation marker.
func versionHint(executable string) string {
	low := strings.ToLower(executable)

	i := strings.Index(low, "2k")
	for i >= 0 {
		rest := low[i+2:]
		if len(rest) >= 2 && isDigit(rest[0]) && isDigit(rest[1]) {
			return rest[:2]
		}

		next := strings.Index(low[i+2:], "2k")
		if next < 0 {
			break
		}

		i += 2 + next
	}

	return ""
}

// versionLabel returns a label like "2K26" for an executable, or "".
func versionLabel(executable string) string {
	hint := versionHint(executable)
	if hint == "" {
		return ""
	}

	return "2K" + hint
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
