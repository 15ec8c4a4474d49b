package offsets

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Parse decodes a schema bundle and normalizes it into a Document. The
// target executable steers version selection when the bundle embeds several
// version-keyed sub-documents.
func Parse(data []byte, targetExe string) (*Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode offset schema: %w", err)
	}

	doc := selectDocument(raw, targetExe)
	if doc == nil {
		return nil, ErrEmptySchema
	}

	return normalize(doc, targetExe)
}

// selectDocument picks the sub-document matching the target executable.
// Handled shapes, in precedence order:
//  1. merged per-field version maps, flattened to the matching version
//  2. a plain document carrying its own "offsets" list
//  3. a map of version keys to documents, scored against the target
//  4. a bare list of documents (first viable wins)
func selectDocument(raw any, targetExe string) map[string]any {
	if m, ok := asMap(raw); ok {
		if converted := flattenMergedVersions(m, targetExe); converted != nil {
			return converted
		}

		if hasOffsetsList(m) {
			return m
		}

		if picked := pickVersionKeyed(m, targetExe); picked != nil {
			if converted := flattenMergedVersions(picked, targetExe); converted != nil {
				return converted
			}

			return picked
		}

		return m
	}

	if list, ok := asList(raw); ok {
		for _, item := range list {
			if m, ok := asMap(item); ok && hasOffsetsList(m) {
				return m
			}
		}
	}

	return nil
}

func hasOffsetsList(m map[string]any) bool {
	_, ok := asList(m["offsets"])
	return ok
}

// pickVersionKeyed scores each viable sub-document by how well its key and
// game_info match the target executable. Entries that explicitly contradict
// the target are rejected outright.
func pickVersionKeyed(m map[string]any, targetExe string) map[string]any {
	hint := versionHint(targetExe)
	targetLow := strings.ToLower(targetExe)

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		best      map[string]any
		bestScore = -1
	)

	for _, key := range keys {
		value, ok := asMap(m[key])
		if !ok || !hasOffsetsList(value) {
			continue
		}

		keyLow := strings.ToLower(key)

		gameInfo, _ := asMap(value["game_info"])
		execName := ""
		if s, ok := keysExecutable.String(gameInfo); ok {
			execName = strings.ToLower(s)
		}

		// Only accept entries that match the loaded game's executable (or
		// its generation hint) when they declare one.
		if targetExe != "" && execName != "" && execName != targetLow {
			continue
		}

		if hint != "" && !strings.Contains(keyLow, hint) && !strings.Contains(execName, hint) {
			continue
		}

		score := 0

		if hint != "" && strings.Contains(keyLow, hint) {
			score += 3
		}

		switch {
		case targetExe != "" && execName == targetLow:
			score += 4
		case hint != "" && strings.Contains(execName, hint):
			score += 2
		}

		if versionField, ok := keysVersionTag.String(gameInfo); ok {
			if hint != "" && strings.Contains(strings.ToLower(versionField), hint) {
				score++
			}
		}

		if score > bestScore {
			bestScore = score
			best = value
		}
	}

	if best != nil {
		return best
	}

	for _, key := range keys {
		if value, ok := asMap(m[key]); ok && hasOffsetsList(value) {
			return value
		}
	}

	return nil
}

// flattenMergedVersions handles the merged bundle shape where a top-level
// "versions" map carries per-version metadata and every offsets entry carries
// its own per-version sub-entries. Only the version matching the target
// executable survives.
func flattenMergedVersions(m map[string]any, targetExe string) map[string]any {
	entries, ok := asList(m["offsets"])
	if !ok {
		return nil
	}

	versions, ok := asMap(m["versions"])
	if !ok {
		return nil
	}

	label := strings.ToLower(versionLabel(targetExe))
	if label == "" {
		return nil
	}

	versionKey := ""
	keys := make([]string, 0, len(versions))
	for k := range versions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.Contains(strings.ToLower(key), label) {
			versionKey = key
			break
		}
	}

	if versionKey == "" {
		return nil
	}

	versionInfo, ok := asMap(versions[versionKey])
	if !ok {
		return nil
	}

	var unified []any

	for _, item := range entries {
		entry, ok := asMap(item)
		if !ok {
			continue
		}

		perVersion, ok := asMap(entry["versions"])
		if !ok {
			continue
		}

		vEntry, ok := asMap(perVersion[versionKey])
		if !ok {
			continue
		}

		flat := flattenMergedEntry(entry, vEntry)
		if flat != nil {
			unified = append(unified, flat)
		}
	}

	if len(unified) == 0 {
		return nil
	}

	converted := map[string]any{"offsets": unified}

	if norm, ok := asMap(m["category_normalization"]); ok {
		converted["category_normalization"] = norm
	}

	if superMap, ok := asMap(m["super_type_map"]); ok {
		converted["super_type_map"] = superMap
	}

	if basePtrs, ok := asMap(versionInfo["base_pointers"]); ok {
		converted["base_pointers"] = basePtrs
	}

	if gameInfo, ok := asMap(versionInfo["game_info"]); ok {
		converted["game_info"] = gameInfo
	}

	return converted
}

func flattenMergedEntry(entry, vEntry map[string]any) map[string]any {
	address, haveAddr := keyChain{"address", "hex"}.Int(vEntry)
	if !haveAddr || address < 0 {
		return nil
	}

	typeTag, _ := keysType.String(vEntry)

	length := keysLength.IntOr(vEntry, 0)
	if length < 0 {
		length = 0
	}

	isPointer := strings.Contains(strings.ToLower(typeTag), "pointer") ||
		strings.Contains(strings.ToLower(typeTag), "ptr")
	if length == 0 && !isPointer {
		return nil
	}

	category, _ := keyChain{"category"}.String(vEntry)
	if category == "" {
		category, _ = keyChain{"canonical_category", "super_type", "superType"}.String(entry)
	}

	name, _ := keyChain{"name"}.String(vEntry)
	if name == "" {
		name, _ = keyChain{"display_name", "normalized_name", "canonical_name"}.String(entry)
	}
	if name == "" {
		name = fmt.Sprintf("Field 0x%X", address)
	}

	flat := map[string]any{
		"category": category,
		"name":     name,
		"address":  float64(address),
		"length":   float64(length),
		"startBit": float64(keysStartBit.IntOr(vEntry, 0)),
	}

	if typeTag != "" {
		flat["type"] = typeTag
	}

	if keysDeref.Bool(vEntry) {
		flat["requiresDereference"] = true
	}

	if deref, ok := keysDerefOffset.Int(vEntry); ok {
		flat["dereferenceAddress"] = float64(deref)
	}

	if values, ok := asList(vEntry["values"]); ok {
		flat["values"] = values
	}

	return flat
}
