package offsets

// Hop is one step of a pointer chain: add Offset, optionally dereference,
// then add Post. Hops apply strictly in declared order.
type Hop struct {
	Offset int64
	Deref  bool
	Post   int64
}

// ChainSpec declares how to navigate from a fixed address to a record table
// inside the target process.
type ChainSpec struct {
	// Base is the start address: absolute, or relative to the process image
	// base when Absolute is false.
	Base int64
	// Absolute marks Base as a ready virtual address.
	Absolute bool
	// DirectTable skips the initial pointer read: the table sits at
	// Base+FinalOffset itself.
	DirectTable bool
	// Hops is the ordered dereference walk applied after the initial read.
	Hops []Hop
	// FinalOffset is added exactly once, after the last hop.
	FinalOffset int64
}

// parseChainSteps normalizes a raw hop list. A bare integer hop is shorthand
// for "add then dereference".
func parseChainSteps(raw any) []Hop {
	list, ok := asList(raw)
	if !ok {
		return nil
	}

	steps := make([]Hop, 0, len(list))

	for _, item := range list {
		if m, ok := asMap(item); ok {
			deref := keysHopDeref.Bool(m)
			if t, _ := keysType.String(m); t == "read" || t == "pointer" || t == "deref" {
				deref = true
			}

			steps = append(steps, Hop{
				Offset: keysHopOffset.IntOr(m, 0),
				Deref:  deref,
				Post:   keysHopPost.IntOr(m, 0),
			})

			continue
		}

		if n, ok := toInt(item); ok {
			steps = append(steps, Hop{Offset: n, Deref: true})
		}
	}

	return steps
}

// parseChainConfig turns one base-pointer definition into chain candidates.
// A steps list made entirely of candidate-like entries (each carrying its own
// address) expands into multiple candidates in declared order.
func parseChainConfig(cfg map[string]any) []ChainSpec {
	if cfg == nil {
		return nil
	}

	base, ok := keysChainBase.Int(cfg)
	if !ok {
		return nil
	}

	finalOffset := keysChainFinal.IntOr(cfg, 0)
	absolute := keysChainAbs.Bool(cfg)
	direct := keysChainDirect.Bool(cfg)

	if rawSteps, found := keysChainSteps.lookup(cfg); found {
		if list, ok := asList(rawSteps); ok && len(list) > 0 {
			candidates := expandCandidateList(list, base, finalOffset, absolute)
			if len(candidates) > 0 {
				return candidates
			}
		}
	}

	var steps []Hop
	if rawSteps, found := keysChainSteps.lookup(cfg); found {
		steps = parseChainSteps(rawSteps)
	}

	return []ChainSpec{{
		Base:        base,
		Absolute:    absolute,
		DirectTable: direct,
		Hops:        steps,
		FinalOffset: finalOffset,
	}}
}

func expandCandidateList(list []any, base, finalOffset int64, absolute bool) []ChainSpec {
	for _, item := range list {
		m, ok := asMap(item)
		if !ok {
			return nil
		}

		if _, hasAddr := keysChainBase.Int(m); !hasAddr {
			return nil
		}
	}

	var out []ChainSpec

	for _, item := range list {
		m, _ := asMap(item)

		candidate := map[string]any{
			"finalOffset": float64(keysChainFinal.IntOr(m, finalOffset)),
		}

		candidate["address"] = float64(keysChainBase.IntOr(m, base))

		if v, found := keysChainAbs.lookup(m); found {
			candidate["absolute"] = v
		} else {
			candidate["absolute"] = absolute
		}

		if v, found := keysChainSteps.lookup(m); found {
			candidate["chain"] = v
		}

		if keysChainDirect.Bool(m) {
			candidate["direct_table"] = true
		}

		out = append(out, parseChainConfig(candidate)...)
	}

	return out
}
