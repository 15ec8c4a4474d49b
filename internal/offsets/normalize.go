package offsets

import (
	"fmt"
	"sort"
	"strings"
)

// Keys at the top level of a document that are structural, not category
// sections.
var reservedSectionKeys = map[string]bool{
	"offsets":                true,
	"game_info":              true,
	"process_info":           true,
	"base_pointers":          true,
	"basepointers":           true,
	"base":                   true,
	"versions":               true,
	"player_info":            true,
	"pointer_candidates":     true,
	"pointercandidates":      true,
	"category_normalization": true,
	"super_type_map":         true,
}

// legacyFieldInfo describes how a legacy flat Base key maps onto a canonical
// field entry.
type legacyFieldInfo struct {
	category string
	display  string
	typeTag  string
}

// legacyFieldSynonyms maps the many spellings legacy documents used for a
// handful of well-known fields onto one canonical name.
var legacyFieldSynonyms = map[string][]string{
	"first name":      {"player_first_name", "first_name", "firstname", "offset player first name", "offset first name"},
	"last name":       {"player_last_name", "last_name", "lastname", "surname", "offset player last name", "offset last name"},
	"face id":         {"player_faceid", "faceid", "offset player face id", "offset face id"},
	"current team":    {"player team", "team", "team_id", "current team address", "offset player team"},
	"team name":       {"offset team name", "city name"},
	"team short name": {"team_short_name", "offset team short name", "team abbrev", "team abbreviation", "city abbrev"},
	"team year":       {"team year", "historic year", "offset team year"},
	"team type":       {"team type", "offset team type"},
}

var legacyFieldTable = map[string]legacyFieldInfo{
	"first name":      {category: "Vitals", display: "First Name", typeTag: "wstring"},
	"last name":       {category: "Vitals", display: "Last Name", typeTag: "wstring"},
	"face id":         {category: "Vitals", display: "Face ID", typeTag: "number"},
	"current team":    {category: "Vitals", display: "Current Team", typeTag: "number"},
	"team name":       {category: "Teams", display: "Team Name", typeTag: "wstring"},
	"team short name": {category: "Teams", display: "Team Short Name", typeTag: "wstring"},
	"team year":       {category: "Teams", display: "Team Year", typeTag: "number"},
	"team type":       {category: "Teams", display: "Team Type", typeTag: "number"},
}

var legacyCanonicalLookup = buildLegacyLookup()

func buildLegacyLookup() map[string]string {
	lookup := make(map[string]string)
	for canon, syns := range legacyFieldSynonyms {
		lookup[canon] = canon
		for _, alias := range syns {
			lookup[strings.ToLower(alias)] = canon
		}
	}

	return lookup
}

type fieldKey struct {
	cat  string
	name string
}

type cursorKey struct {
	cat    string
	offset int64
}

// normalizer accumulates fields from the several section shapes one document
// can mix, keeping a duplicate set and a per-(category, offset) bit cursor so
// implicit packed runs stack instead of overlapping.
type normalizer struct {
	doc    *Document
	seen   map[fieldKey]bool
	cursor map[cursorKey]int64
}

// normalize converts a selected raw document into a Document.
func normalize(m map[string]any, targetExe string) (*Document, error) {
	doc := &Document{
		Chains:                make(map[Table][]ChainSpec),
		Strides:               make(map[Table]int64),
		SuperTypes:            make(map[string]string),
		CategoryNormalization: make(map[string]string),
	}

	gameInfo, _ := asMap(m["game_info"])
	processInfo, _ := asMap(m["process_info"])

	if exe, ok := keysGameExe.String(gameInfo); ok {
		doc.Executable = exe
	} else if exe, ok := keysProcessExe.String(processInfo); ok {
		doc.Executable = exe
	} else {
		doc.Executable = targetExe
	}

	doc.Version = versionLabel(doc.Executable)
	if doc.Version == "" {
		doc.Version = versionLabel(targetExe)
	}

	copyStringMap(doc.CategoryNormalization, m["category_normalization"])
	copyStringMap(doc.SuperTypes, m["super_type_map"])

	nz := &normalizer{
		doc:    doc,
		seen:   make(map[fieldKey]bool),
		cursor: make(map[cursorKey]int64),
	}

	if entries, ok := asList(m["offsets"]); ok {
		for _, item := range entries {
			if e, ok := asMap(item); ok {
				nz.addEntry(e, "")
			}
		}
	}

	// Any other top-level list of maps is a category section keyed by name.
	for key, value := range m {
		if reservedSectionKeys[strings.ToLower(key)] {
			continue
		}

		if entries, ok := asList(value); ok {
			for _, item := range entries {
				if e, ok := asMap(item); ok {
					nz.addEntry(e, key)
				}
			}
		}
	}

	if nested, ok := asMap(m["Player_Info"]); ok {
		nz.addNested(nested)
	}

	legacyBase := lookupLegacySection(m)
	nz.addLegacy(legacyBase)

	collectStrides(doc, gameInfo, processInfo, legacyBase)
	collectChains(doc, m, legacyBase, processInfo)

	if len(doc.Fields) == 0 {
		return nil, ErrEmptySchema
	}

	return doc, nil
}

func copyStringMap(dst map[string]string, raw any) {
	src, ok := asMap(raw)
	if !ok {
		return
	}

	for k, v := range src {
		if s, ok := v.(string); ok && s != "" {
			dst[strings.ToLower(k)] = s
		}
	}
}

func lookupLegacySection(m map[string]any) map[string]any {
	for _, key := range []string{"Base", "base"} {
		if section, ok := asMap(m[key]); ok {
			return section
		}
	}

	return nil
}

// addEntry normalizes one flat schema entry. defaultCategory applies when the
// entry carries none of its own (section-keyed shapes).
func (n *normalizer) addEntry(entry map[string]any, defaultCategory string) {
	name, _ := keyChain{"name"}.String(entry)
	if name == "" {
		return
	}

	category, _ := keyChain{"category"}.String(entry)
	if category == "" {
		category = strings.TrimSpace(defaultCategory)
	}
	if category == "" {
		category = "Misc"
	}

	offset, ok := keysAddress.Int(entry)
	if !ok || offset < 0 {
		return
	}

	typeTag, _ := keysType.String(entry)
	typeLow := strings.ToLower(typeTag)

	length := keysLength.IntOr(entry, 0)
	size := keysSize.IntOr(entry, 0)
	if length <= 0 {
		length = inferBitLength(typeLow, size)
	}

	if length <= 0 {
		n.doc.Diags.AddWarning("field-dropped",
			fmt.Sprintf("%s.%s has no usable length; dropped", category, name),
			category, name)
		return
	}

	startBit := keysStartBit.IntOr(entry, 0)
	if startBit < 0 {
		startBit = 0
	}

	field := Field{
		Category: category,
		Name:     name,
		Offset:   offset,
		StartBit: int(startBit),
		Bits:     int(length),
		RawType:  typeTag,
	}

	if super, ok := keysEntrySuper.String(entry); ok {
		field.SuperType = super
	}

	if keysDeref.Bool(entry) {
		field.Deref = true
		field.DerefOffset = keysDerefOffset.IntOr(entry, 0)
	}

	if raw, ok := keysValues.lookup(entry); ok {
		field.Values = extractValues(raw)
	}

	n.commit(field)
}

// addNested flattens the nested category -> field-map shape. Group maps that
// carry no direct offset keys recurse with a " - " joined name prefix. Packed
// fields without an explicit start bit take the running bit cursor for their
// (category, offset) slot.
//
// JSON decoding into maps loses declaration order, so implicit bit runs
// stack in sorted name order. Documents relying on implicit start bits
// should declare them explicitly when the order matters.
func (n *normalizer) addNested(sections map[string]any) {
	for _, catKey := range sortedKeys(sections) {
		fields, ok := asMap(sections[catKey])
		if !ok {
			continue
		}

		catName := strings.TrimSuffix(catKey, "_offsets")
		catName = titleCase(catName)

		n.walkFieldMap(catName, fields, "")
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

var nestedDirectKeys = []string{
	"address", "offset_from_base", "offset",
	"startBit", "start_bit", "bit_start",
	"size", "length", "type",
}

func (n *normalizer) walkFieldMap(category string, mapping map[string]any, prefix string) {
	for _, name := range sortedKeys(mapping) {
		def, ok := asMap(mapping[name])
		if !ok {
			continue
		}

		direct := false
		for _, key := range nestedDirectKeys {
			if _, present := def[key]; present {
				direct = true
				break
			}
		}

		if !direct {
			next := name
			if prefix != "" {
				next = prefix + " - " + name
			}

			n.walkFieldMap(category, def, next)
			continue
		}

		n.addNestedField(category, name, prefix, def)
	}
}

func (n *normalizer) addNestedField(category, name, prefix string, def map[string]any) {
	display := name
	if prefix != "" {
		display = prefix + " - " + name
	}

	offset, ok := keysAddress.Int(def)
	if !ok || offset < 0 {
		return
	}

	typeTag, _ := keysType.String(def)
	typeLow := strings.ToLower(typeTag)

	// Template scaffolding entries carry a type but describe no field.
	if nestedTemplateTags[typeLow] {
		return
	}

	info, _ := asMap(def["info"])

	// The info sub-map may carry the start bit and length instead of the
	// definition itself.
	startRaw, explicitStart := keysStartBit.Int(def)
	if !explicitStart {
		startRaw, explicitStart = keysStartBit.Int(info)
	}

	startBit := startRaw
	if startBit < 0 {
		startBit = 0
	}

	size := keysSize.IntOr(def, 0)
	length := keysLength.IntOr(def, 0)
	if length <= 0 {
		length = keysLength.IntOr(info, 0)
	}
	if length <= 0 {
		length = inferBitLength(typeLow, size)
	}

	if length <= 0 {
		n.doc.Diags.AddWarning("field-dropped",
			fmt.Sprintf("%s.%s has no usable length; dropped", category, display),
			category, display)
		return
	}

	// Implicit packed runs stack within a byte offset in declaration order.
	if isPackedTypeTag(typeLow) && !explicitStart {
		key := cursorKey{cat: category, offset: offset}
		startBit = n.cursor[key]
		n.cursor[key] = startBit + length
	}

	field := Field{
		Category: category,
		Name:     display,
		Offset:   offset,
		StartBit: int(startBit),
		Bits:     int(length),
		RawType:  typeTag,
	}

	if typeLow == "combo" {
		count := int64(1) << length
		if count > 64 {
			count = 64
		}

		values := make([]string, 0, count)
		for i := int64(0); i < count; i++ {
			values = append(values, fmt.Sprintf("%d", i))
		}

		field.Values = values
	}

	if options, ok := asList(info["options"]); ok {
		if values := extractValues(options); len(values) > 0 {
			field.Values = values
		}
	}

	if truthy(info["isptr"]) {
		if deref := keysInfoPointer.IntOr(info, 0); deref > 0 {
			field.Deref = true
			field.DerefOffset = deref
		}
	}

	n.commit(field)
}

// addLegacy converts the flat legacy Base map into canonical field entries.
// Only the handful of known well-named keys survive; everything else in that
// section is stride or base-pointer material.
func (n *normalizer) addLegacy(base map[string]any) {
	for rawKey, rawValue := range base {
		switch rawValue.(type) {
		case map[string]any, []any:
			continue
		}

		canon, ok := legacyCanonicalLookup[strings.ToLower(strings.TrimSpace(rawKey))]
		if !ok {
			continue
		}

		info := legacyFieldTable[canon]

		offset, ok := toInt(rawValue)
		if !ok || offset < 0 {
			continue
		}

		// Legacy maps carry bare offsets. Name fields default to the
		// roster's 20-character capacity, numbers to 32 bits.
		bits := int64(32)
		if info.typeTag == "wstring" {
			bits = 20
		}

		n.commit(Field{
			Category: info.category,
			Name:     info.display,
			Offset:   offset,
			Bits:     int(bits),
			RawType:  info.typeTag,
		})
	}
}

// commit classifies an assembled field and appends it unless a field with the
// same (category, name) already exists.
func (n *normalizer) commit(field Field) {
	key := fieldKey{
		cat:  strings.ToLower(field.Category),
		name: strings.ToLower(field.Name),
	}
	if n.seen[key] {
		return
	}
	n.seen[key] = true

	classifyField(&field)

	cur := cursorKey{cat: field.Category, offset: field.Offset}
	if end := int64(field.StartBit + field.Bits); end > n.cursor[cur] {
		n.cursor[cur] = end
	}

	n.doc.Fields = append(n.doc.Fields, field)
}

// classifyField assigns the codec kind from the raw type tag and value list.
func classifyField(f *Field) {
	typeLow := strings.ToLower(f.RawType)

	switch {
	case strings.Contains(typeLow, "wstring"), strings.Contains(typeLow, "utf16"), strings.Contains(typeLow, "wide"):
		f.Kind = KindUTF16
		f.Capacity = capacityFromBits(f.Bits)
	case typeLow == "string", typeLow == "text", typeLow == "char", typeLow == "ascii":
		f.Kind = KindASCII
		f.Capacity = capacityFromBits(f.Bits)
	// Float lengths arrive as bits (32, 64) or bytes (4, 8) depending on the
	// document generation; both spellings of a double count.
	case typeLow == "double", typeLow == "float64",
		strings.Contains(typeLow, "float") && (f.Bits == 64 || f.Bits == 8):
		f.Kind = KindFloat64
		f.Bits = 64
	case strings.Contains(typeLow, "float"):
		f.Kind = KindFloat32
		f.Bits = 32
	case len(f.Values) > 0:
		f.Kind = KindEnum
	default:
		f.Kind = KindPacked
	}
}

// capacityFromBits recovers the character capacity of a string field. Schema
// documents store string lengths in characters; a value divisible by 8 that
// is suspiciously large was already promoted to bits upstream.
func capacityFromBits(bits int) int {
	if bits > 64 && bits%8 == 0 {
		return bits / 8
	}

	return bits
}

var packedTypeTags = map[string]bool{
	"bitfield": true,
	"bool":     true,
	"boolean":  true,
	"combo":    true,
}

// nestedTemplateTags are type tags nested documents use for grouping
// scaffolding rather than actual fields.
var nestedTemplateTags = map[string]bool{
	"blank":   true,
	"folder":  true,
	"section": true,
	"class":   true,
}

func isPackedTypeTag(typeLow string) bool {
	return packedTypeTags[typeLow]
}

// inferBitLength derives a bit length from a type tag plus byte size when the
// entry carries no explicit length. Packed tags carry raw bits in their size;
// scalar tags carry bytes.
func inferBitLength(typeLow string, size int64) int64 {
	switch {
	case isPackedTypeTag(typeLow):
		return size
	case typeLow == "number", typeLow == "slider", typeLow == "int", typeLow == "uint", typeLow == "pointer":
		return size * 8
	case strings.Contains(typeLow, "float"), typeLow == "double":
		if size <= 0 {
			return 32
		}

		return size * 8
	case strings.Contains(typeLow, "wstring"), strings.Contains(typeLow, "string"), typeLow == "text":
		return size
	default:
		return 0
	}
}

// extractValues flattens an enum value list. Entries may be bare strings or
// objects carrying name/label/value.
func extractValues(raw any) []string {
	list, ok := asList(raw)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(list))

	for _, item := range list {
		switch t := item.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			if s, ok := keysValueLabel.String(t); ok && s != "" {
				out = append(out, s)
			}
		case float64:
			out = append(out, fmt.Sprintf("%g", t))
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// titleCase capitalizes the first letter of each space- or underscore-
// separated word.
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_'
	})

	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}

	return strings.Join(words, " ")
}

// collectStrides resolves the per-table record sizes from game_info,
// process_info or legacy Base keys.
func collectStrides(doc *Document, gameInfo, processInfo, legacyBase map[string]any) {
	specs := []struct {
		table  Table
		keys   keyChain
		legacy string
	}{
		{TablePlayer, keyChain{"playerSize", "player_size"}, "Player Offset Length"},
		{TableTeam, keyChain{"teamSize", "team_size"}, "Team Offset Length"},
		{TableStaff, keyChain{"staffSize", "staff_size"}, "Staff Offset Length"},
		{TableStadium, keyChain{"stadiumSize", "stadium_size"}, "Stadium Offset Length"},
		{TableDraftClass, keyChain{"draftSize", "draft_size", "draftClassSize"}, "Draft Offset Length"},
	}

	for _, spec := range specs {
		stride := spec.keys.IntOr(gameInfo, 0)
		if stride <= 0 {
			stride = spec.keys.IntOr(processInfo, 0)
		}
		if stride <= 0 {
			stride = keyChain{spec.legacy}.IntOr(legacyBase, 0)
		}

		if stride > 0 {
			doc.Strides[spec.table] = stride
			continue
		}

		// Only the two primary tables warrant noise when absent.
		if spec.table == TablePlayer || spec.table == TableTeam {
			doc.Diags.AddWarning("stride-missing",
				fmt.Sprintf("%s stride missing; index-based addressing disabled", spec.table),
				spec.table.String(), "")
		}
	}
}

// collectChains resolves pointer-chain candidates per table from the
// base_pointers section, synthesizing legacy definitions and appending any
// pointer_candidates extensions.
func collectChains(doc *Document, m, legacyBase, processInfo map[string]any) {
	basePointers, _ := asMap(m["base_pointers"])
	if basePointers == nil {
		basePointers, _ = asMap(m["BasePointers"])
	}

	if basePointers == nil {
		basePointers = synthesizeLegacyChains(legacyBase, processInfo)
	}

	for label, raw := range basePointers {
		table, ok := ParseTable(label)
		if !ok {
			doc.Diags.AddWarning("chain-unrecognized",
				fmt.Sprintf("base pointer %q matches no known table", label),
				label, "")
			continue
		}

		cfg, ok := asMap(raw)
		if !ok {
			continue
		}

		chains := parseChainConfig(cfg)
		if len(chains) == 0 {
			doc.Diags.AddWarning("chain-empty",
				fmt.Sprintf("%s base pointer produced no resolvable candidates", table),
				table.String(), "")
			continue
		}

		doc.Chains[table] = append(doc.Chains[table], chains...)
	}

	if candidates, ok := asMap(m["pointer_candidates"]); ok {
		appendPointerCandidates(doc, candidates)
	} else if candidates, ok := asMap(m["PointerCandidates"]); ok {
		appendPointerCandidates(doc, candidates)
	}

	for _, table := range []Table{TablePlayer, TableTeam} {
		if len(doc.Chains[table]) == 0 {
			doc.Diags.AddWarning("chain-missing",
				fmt.Sprintf("%s base pointer definition missing; %s scanning disabled", table, strings.ToLower(table.String())),
				table.String(), "")
		}
	}
}

// synthesizeLegacyChains builds base-pointer definitions from the legacy
// "<Table> Base Address" / "<Table> Offset Chain" keys. Addresses below the
// recorded process base are treated as image-relative.
func synthesizeLegacyChains(legacyBase, processInfo map[string]any) map[string]any {
	processBase := keyChain{"base_address", "BaseAddress", "module_base"}.IntOr(processInfo, 0)

	out := make(map[string]any)

	for _, table := range []Table{TablePlayer, TableTeam} {
		addr, ok := keyChain{table.String() + " Base Address"}.Int(legacyBase)
		if !ok {
			continue
		}

		chainRaw, hasChain := keyChain{table.String() + " Offset Chain"}.lookup(legacyBase)
		chainList, _ := asList(chainRaw)

		absolute := true
		if processBase > 0 && addr >= 0 && addr < processBase {
			absolute = false
		}

		entry := map[string]any{
			"address":  float64(addr),
			"absolute": absolute,
		}

		if hasChain && len(chainList) > 0 {
			entry["chain"] = chainList
		} else {
			entry["direct_table"] = true
		}

		out[table.String()] = entry
	}

	return out
}

// appendPointerCandidates extends per-table chains with the legacy candidate
// notation: dict candidates, or tuples [rva, finalOffset, extraDeref, direct].
func appendPointerCandidates(doc *Document, candidates map[string]any) {
	for label, raw := range candidates {
		table, ok := ParseTable(label)
		if !ok {
			continue
		}

		list, ok := asList(raw)
		if !ok {
			continue
		}

		for _, item := range list {
			if cfg, ok := asMap(item); ok {
				doc.Chains[table] = append(doc.Chains[table], parseChainConfig(cfg)...)
				continue
			}

			tuple, ok := asList(item)
			if !ok || len(tuple) == 0 {
				continue
			}

			rva, ok := toInt(tuple[0])
			if !ok || rva == 0 {
				continue
			}

			cfg := map[string]any{
				"address":  float64(rva),
				"absolute": false,
			}

			if len(tuple) > 1 {
				cfg["finalOffset"] = tuple[1]
			}

			if len(tuple) > 2 && truthy(tuple[2]) {
				cfg["chain"] = []any{map[string]any{"offset": float64(0), "dereference": true}}
			}

			if len(tuple) > 3 && truthy(tuple[3]) {
				cfg["direct_table"] = true
			}

			doc.Chains[table] = append(doc.Chains[table], parseChainConfig(cfg)...)
		}
	}
}
