package offsets

import (
	"strconv"
	"strings"
)

// Schema documents drifted across game builds, renaming keys as they went.
// Instead of ad hoc cascades at every use site, each logical value is bound
// to an ordered keyChain: candidate keys tried first-success-wins, exact
// match before case-insensitive match.
type keyChain []string

var (
	keysAddress     = keyChain{"address", "offset", "offset_from_base", "hex"}
	keysStartBit    = keyChain{"startBit", "start_bit", "bit_start"}
	keysLength      = keyChain{"length", "bits"}
	keysSize        = keyChain{"size"}
	keysType        = keyChain{"type"}
	keysDeref       = keyChain{"requiresDereference", "requires_deref"}
	keysDerefOffset = keyChain{"dereferenceAddress", "deref_offset", "dereference_address"}
	keysValues      = keyChain{"values"}

	keysGameExe     = keyChain{"executable", "name", "process_name"}
	keysProcessExe  = keyChain{"name", "executable"}
	keysExecutable  = keyChain{"executable"}
	keysVersionTag  = keyChain{"version"}
	keysEntrySuper  = keyChain{"super_type", "superType"}
	keysInfoPointer = keyChain{"offset", "deviation"}
	keysValueLabel  = keyChain{"name", "label", "value"}

	keysChainBase   = keyChain{"address", "rva", "base"}
	keysChainFinal  = keyChain{"finalOffset", "final_offset"}
	keysChainAbs    = keyChain{"absolute", "isAbsolute"}
	keysChainDirect = keyChain{"direct_table", "direct", "directTable", "treat_as_base"}
	keysChainSteps  = keyChain{"chain", "steps"}

	keysHopOffset = keyChain{"offset", "add", "delta", "value", "rva"}
	keysHopPost   = keyChain{"post", "postAdd", "post_add", "post_offset", "postOffset", "finalOffset", "final_offset"}
	keysHopDeref  = keyChain{"dereference", "deref", "read", "pointer", "follow", "resolve", "resolvePointer", "resolve_pointer"}
)

func (k keyChain) lookup(m map[string]any) (any, bool) {
	if m == nil {
		return nil, false
	}

	for _, key := range k {
		if v, ok := m[key]; ok && v != nil {
			return v, true
		}
	}

	lowered := make(map[string]any, len(m))
	for key, v := range m {
		lowered[strings.ToLower(key)] = v
	}

	for _, key := range k {
		if v, ok := lowered[strings.ToLower(key)]; ok && v != nil {
			return v, true
		}
	}

	return nil, false
}

// Int extracts the first present key as an integer. ok is false when no key
// is present or the value does not parse.
func (k keyChain) Int(m map[string]any) (int64, bool) {
	v, ok := k.lookup(m)
	if !ok {
		return 0, false
	}

	return toInt(v)
}

// IntOr extracts an integer with a fallback default.
func (k keyChain) IntOr(m map[string]any, def int64) int64 {
	if v, ok := k.Int(m); ok {
		return v
	}

	return def
}

// String extracts the first present key as a trimmed string.
func (k keyChain) String(m map[string]any) (string, bool) {
	v, ok := k.lookup(m)
	if !ok {
		return "", false
	}

	s, ok := v.(string)
	if !ok {
		return "", false
	}

	return strings.TrimSpace(s), true
}

// Bool extracts the first present key as a truthy flag. Any of the candidate
// keys holding a true-ish value counts, matching how documents mix flag
// spellings within one hop list.
func (k keyChain) Bool(m map[string]any) bool {
	if m == nil {
		return false
	}

	for _, key := range k {
		if truthy(m[key]) {
			return true
		}
	}

	return false
}

// toInt coerces JSON scalars into an integer: numbers, decimal strings and
// 0x-prefixed hex strings.
func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case bool:
		if t {
			return 1, true
		}

		return 0, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}

		if low := strings.ToLower(s); strings.HasPrefix(low, "0x") {
			n, err := strconv.ParseInt(low[2:], 16, 64)
			return n, err == nil
		}

		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != "" && t != "0" && !strings.EqualFold(t, "false")
	default:
		return false
	}
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}
