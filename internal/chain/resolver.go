package chain

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"rostermem/internal/codec"
	"rostermem/internal/memproc"
	"rostermem/internal/offsets"
)

// Probe describes a sanity read used to validate a resolved table base: a
// string field expected to hold readable text in record zero.
type Probe struct {
	// Offset of the probed field from the table base.
	Offset int64
	// MaxChars is the field's character capacity.
	MaxChars int
	// Encoding of the probed field.
	Encoding codec.Encoding
}

// Resolver walks pointer-chain candidates and caches the surviving base
// address per table. Safe for concurrent use.
type Resolver struct {
	proc   memproc.Process
	specs  map[offsets.Table][]offsets.ChainSpec
	probes map[offsets.Table][]Probe
	log    *slog.Logger

	mu    sync.Mutex
	cache map[offsets.Table]uint64
}

// NewResolver builds a Resolver over the given process and per-table chain
// candidates. A nil logger disables logging.
func NewResolver(proc memproc.Process, specs map[offsets.Table][]offsets.ChainSpec, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Resolver{
		proc:   proc,
		specs:  specs,
		probes: make(map[offsets.Table][]Probe),
		log:    log,
		cache:  make(map[offsets.Table]uint64),
	}
}

// SetProbes installs the validation probes for a table. Without probes any
// candidate that traverses cleanly is accepted.
func (r *Resolver) SetProbes(t offsets.Table, probes []Probe) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.probes[t] = probes
}

// Resolve returns the base address of a table. The boolean is false when no
// candidate survives; that is an availability outcome, not an error.
func (r *Resolver) Resolve(t offsets.Table) (uint64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if addr, ok := r.cache[t]; ok {
		return addr, true
	}

	for i, spec := range r.specs[t] {
		addr, ok := r.walk(spec)
		if !ok {
			continue
		}

		if !r.validate(t, addr) {
			r.log.Debug("chain candidate rejected by probe",
				"table", t.String(), "candidate", i, "addr", addr)
			continue
		}

		r.log.Info("table base resolved",
			"table", t.String(), "candidate", i, "addr", addr)

		r.cache[t] = addr

		return addr, true
	}

	return 0, false
}

// Invalidate drops every cached base, forcing re-traversal on next use.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = make(map[offsets.Table]uint64)
}

// walk traverses one candidate. Any unreadable address or nil pointer along
// the way fails the candidate.
func (r *Resolver) walk(spec offsets.ChainSpec) (uint64, bool) {
	if spec.Base == 0 {
		return 0, false
	}

	base := uint64(spec.Base)
	if !spec.Absolute {
		base = r.proc.ImageBase() + uint64(spec.Base)
	}

	if spec.DirectTable {
		return base + uint64(spec.FinalOffset), true
	}

	ptr, err := memproc.ReadUint64(r.proc, base)
	if err != nil {
		return 0, false
	}

	for _, hop := range spec.Hops {
		ptr += uint64(hop.Offset)

		if hop.Deref {
			if ptr == 0 {
				return 0, false
			}

			ptr, err = memproc.ReadUint64(r.proc, ptr)
			if err != nil {
				return 0, false
			}
		}

		ptr += uint64(hop.Post)
	}

	return ptr + uint64(spec.FinalOffset), true
}

// validate accepts a candidate base when any probe reads back printable text.
func (r *Resolver) validate(t offsets.Table, base uint64) bool {
	probes := r.probes[t]
	if len(probes) == 0 {
		return true
	}

	for _, probe := range probes {
		if probe.Offset < 0 || probe.MaxChars <= 0 {
			continue
		}

		s, err := codec.ReadString(r.proc, base+uint64(probe.Offset), probe.MaxChars, probe.Encoding)
		if err != nil {
			continue
		}

		if printable(strings.TrimSpace(s)) {
			return true
		}
	}

	return false
}

// printable reports whether s is non-empty and free of control characters.
func printable(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			return false
		}
	}

	return true
}
