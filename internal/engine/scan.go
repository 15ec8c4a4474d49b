package engine

import (
	"fmt"
	"strings"

	"rostermem/internal/codec"
	"rostermem/internal/offsets"
)

// Record is one scanned table entry. Addr is the direct pointer captured at
// scan time, so a handle built from it stays valid across re-resolution.
type Record struct {
	Handle Handle
	Name   string
}

// Scan walks up to limit records of a table, reading the display name of
// each. Records whose name fields read back empty are skipped but still
// consume an index, matching how rosters interleave live and vacant slots.
func (e *Editor) Scan(t offsets.Table, limit int) ([]Record, error) {
	base, ok := e.res.Resolve(t)
	if !ok {
		return nil, fmt.Errorf("%s: %w", t, ErrTableUnavailable)
	}

	stride, ok := e.doc.Stride(t)
	if !ok {
		return nil, fmt.Errorf("%s: %w", t, ErrNoStride)
	}

	nameFields := e.nameFields(t)

	var out []Record

	for i := 0; i < limit; i++ {
		addr := base + uint64(i)*uint64(stride)

		name := e.readName(addr, nameFields)
		if name == "" {
			continue
		}

		out = append(out, Record{
			Handle: Handle{Table: t, Index: i, Addr: addr},
			Name:   name,
		})
	}

	e.log.Debug("table scan finished", "table", t.String(), "limit", limit, "records", len(out))

	return out, nil
}

// nameFields returns the string fields composing a record's display name.
func (e *Editor) nameFields(t offsets.Table) []offsets.Field {
	var specs [][2]string

	switch t {
	case offsets.TableTeam:
		specs = [][2]string{{"Team Name", "Teams"}}
	case offsets.TableStadium:
		specs = [][2]string{{"Stadium Name", "Stadiums"}, {"Name", "Stadiums"}}
	default:
		specs = [][2]string{{"First Name", "Vitals"}, {"Last Name", "Vitals"}}
	}

	var fields []offsets.Field

	for _, spec := range specs {
		if f, ok := e.cat.Find(spec[0], spec[1]); ok && f.Kind.IsString() {
			fields = append(fields, f)
		}
	}

	return fields
}

func (e *Editor) readName(recordAddr uint64, fields []offsets.Field) string {
	var parts []string

	for _, f := range fields {
		addr, err := codec.FieldAddress(e.proc, recordAddr, f)
		if err != nil {
			continue
		}

		s, err := codec.ReadString(e.proc, addr, f.Capacity, fieldEncoding(f))
		if err != nil {
			continue
		}

		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, " ")
}

// Assignment is one packed write in a batch.
type Assignment struct {
	Field offsets.Field
	Raw   uint64
}

// Apply writes a batch of assignments to one record, sharing a single
// indirection-pointer cache across them. It returns how many assignments
// landed; a failed assignment is skipped, not fatal to the rest.
func (e *Editor) Apply(h Handle, assignments []Assignment) (int, error) {
	recordAddr, err := e.handleAddr(h)
	if err != nil {
		return 0, err
	}

	derefCache := make(map[int64]uint64)
	applied := 0

	for _, a := range assignments {
		if err := codec.WriteFieldRawCached(e.proc, recordAddr, a.Field, a.Raw, derefCache); err != nil {
			e.log.Debug("assignment skipped",
				"field", a.Field.Name, "category", a.Field.Category, "err", err)
			continue
		}

		applied++
	}

	return applied, nil
}
