package diagnostic

import (
	"fmt"
	"strings"

	"rostermem/internal/common"
)

// Diagnostics accumulates the warnings raised during schema normalization
// and pointer-chain resolution. Problems that survive normalization are
// warnings by definition; anything fatal is returned as an error instead.
type Diagnostics struct {
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Category identifies which schema category this relates to (if any).
	Category string
	// Field identifies which field this relates to (if any).
	Field string
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, category, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Code:     code,
		Message:  message,
		Category: category,
		Field:    field,
	})
}

// Summary joins all warnings into a single line, de-duplicated, so callers
// can surface one aggregated report instead of one message per problem.
func (d *Diagnostics) Summary() string {
	if common.IsEmpty(d.Warnings) {
		return ""
	}

	var parts []string
	for _, w := range d.Warnings {
		parts = append(parts, w.String())
	}

	return strings.Join(common.Dedup(parts), " ; ")
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Category != "" {
		prefix = append(prefix, "["+d.Category+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
