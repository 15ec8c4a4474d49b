package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"rostermem/internal/catalog"
	"rostermem/internal/chain"
	"rostermem/internal/codec"
	"rostermem/internal/memproc"
	"rostermem/internal/offsets"
)

var (
	// ErrUnknownField is returned when a name resolves to no cataloged field.
	ErrUnknownField = errors.New("unknown field")
	// ErrBadValue is returned when a value cannot be represented in its field.
	ErrBadValue = errors.New("value not representable in field")
	// ErrTableUnavailable is returned when no pointer-chain candidate for a
	// table survives resolution.
	ErrTableUnavailable = errors.New("table base unavailable")
	// ErrNoStride is returned when a table has no record size and therefore
	// no index-based addressing.
	ErrNoStride = errors.New("table stride unknown")
)

// Editor is the top-level access object over one attached process and one
// loaded schema.
type Editor struct {
	proc memproc.Process
	doc  *offsets.Document
	cat  *catalog.Catalog
	res  *chain.Resolver
	log  *slog.Logger
}

// Handle identifies one record. A non-zero Addr pins the record to the
// address captured when it was scanned, surviving later table re-resolution.
type Handle struct {
	Table offsets.Table
	Index int
	Addr  uint64
}

// New wires an Editor and installs the name-field probes that validate
// pointer-chain candidates. A nil logger disables logging.
func New(proc memproc.Process, doc *offsets.Document, cat *catalog.Catalog, log *slog.Logger) *Editor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Editor{
		proc: proc,
		doc:  doc,
		cat:  cat,
		res:  chain.NewResolver(proc, doc.Chains, log),
		log:  log,
	}

	e.installProbes()

	return e
}

// Catalog exposes the organized field catalog.
func (e *Editor) Catalog() *catalog.Catalog { return e.cat }

// Document exposes the loaded schema document.
func (e *Editor) Document() *offsets.Document { return e.doc }

// Invalidate drops every resolved table base, forcing re-traversal. Call
// after the target process restarts or the schema is reloaded.
func (e *Editor) Invalidate() {
	e.res.Invalidate()
}

// RecordAddress resolves the absolute address of one record.
func (e *Editor) RecordAddress(t offsets.Table, index int) (uint64, error) {
	if index < 0 {
		return 0, fmt.Errorf("record index %d: %w", index, ErrBadValue)
	}

	base, ok := e.res.Resolve(t)
	if !ok {
		return 0, fmt.Errorf("%s: %w", t, ErrTableUnavailable)
	}

	stride, ok := e.doc.Stride(t)
	if !ok {
		return 0, fmt.Errorf("%s: %w", t, ErrNoStride)
	}

	return base + uint64(index)*uint64(stride), nil
}

// handleAddr returns the record address for a handle, honoring a captured
// direct pointer.
func (e *Editor) handleAddr(h Handle) (uint64, error) {
	if h.Addr != 0 {
		return h.Addr, nil
	}

	return e.RecordAddress(h.Table, h.Index)
}

// installProbes derives chain-validation probes from the name fields the
// catalog knows for each table.
func (e *Editor) installProbes() {
	probeSpecs := map[offsets.Table][][2]string{
		offsets.TablePlayer:     {{"Last Name", "Vitals"}, {"First Name", "Vitals"}},
		offsets.TableTeam:       {{"Team Name", "Teams"}},
		offsets.TableStaff:      {{"First Name", "Staff"}, {"Last Name", "Staff"}},
		offsets.TableStadium:    {{"Stadium Name", "Stadiums"}, {"Name", "Stadiums"}},
		offsets.TableDraftClass: {{"Last Name", "Vitals"}, {"First Name", "Vitals"}},
	}

	for table, specs := range probeSpecs {
		var probes []chain.Probe

		for _, spec := range specs {
			f, ok := e.cat.Find(spec[0], spec[1])
			if !ok || !f.Kind.IsString() || f.Deref {
				continue
			}

			probes = append(probes, chain.Probe{
				Offset:   f.Offset,
				MaxChars: f.Capacity,
				Encoding: fieldEncoding(f),
			})
		}

		if len(probes) > 0 {
			e.res.SetProbes(table, probes)
		}
	}
}

func fieldEncoding(f offsets.Field) codec.Encoding {
	if f.Kind == offsets.KindASCII {
		return codec.EncodingASCII
	}

	return codec.EncodingUTF16
}
