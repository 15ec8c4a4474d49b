package catalog

import (
	"io"
	"log/slog"
	"sort"
	"strings"

	"rostermem/internal/diagnostic"
	"rostermem/internal/offsets"
)

// superTypePlayers is the default record table classification for a category.
const superTypePlayers = "Players"

type indexKey struct {
	cat  string
	name string
}

// Catalog is the organized view over a normalized schema document.
type Catalog struct {
	aliases *Aliases
	log     *slog.Logger

	categories map[string][]offsets.Field
	order      []string

	index      map[indexKey]offsets.Field
	superTypes map[string]string
	canonical  map[string]string

	// Diags collects classification warnings (super-type overrides and the
	// like) observed while organizing.
	Diags diagnostic.Diagnostics
}

// New organizes a document's fields into a Catalog. A nil aliases uses the
// defaults; a nil logger disables logging.
func New(doc *offsets.Document, aliases *Aliases, log *slog.Logger) *Catalog {
	if aliases == nil {
		aliases = DefaultAliases()
	}

	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Catalog{
		aliases:    aliases,
		log:        log,
		categories: make(map[string][]offsets.Field),
		index:      make(map[indexKey]offsets.Field),
		superTypes: make(map[string]string),
		canonical:  make(map[string]string),
	}

	for _, f := range doc.Fields {
		c.categories[f.Category] = append(c.categories[f.Category], f)
	}

	c.peelDurability()
	c.ensurePotential()
	c.reorderFields()
	c.orderCategories()
	c.buildIndex()
	c.classifyCategories(doc)

	if s := c.Diags.Summary(); s != "" {
		c.log.Warn("catalog organization produced warnings", "summary", s)
	}

	return c
}

// Categories returns the category labels in display order.
func (c *Catalog) Categories() []string {
	return c.order
}

// Category returns the ordered fields of one category. Lookup accepts alias
// spellings.
func (c *Catalog) Category(label string) []offsets.Field {
	if fields, ok := c.categories[label]; ok {
		return fields
	}

	resolved := c.resolveCategory(label)
	for name, fields := range c.categories {
		if strings.ToLower(name) == resolved {
			return fields
		}
	}

	return nil
}

// Find locates a field by name. A non-empty category narrows the search to
// it first; a miss falls back to scanning every category. Synonym and alias
// spellings of both parts are honored.
func (c *Catalog) Find(name, category string) (offsets.Field, bool) {
	lname := strings.ToLower(strings.TrimSpace(name))

	if category != "" {
		if f, ok := c.index[indexKey{cat: c.resolveCategory(category), name: lname}]; ok {
			return f, true
		}
	}

	keys := make([]indexKey, 0, len(c.index))
	for key := range c.index {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].cat != keys[j].cat {
			return keys[i].cat < keys[j].cat
		}

		return keys[i].name < keys[j].name
	})

	for _, key := range keys {
		if key.name == lname {
			return c.index[key], true
		}
	}

	// Last resort: normalized comparison absorbs punctuation and alias drift.
	want := c.NormalizeFieldName(name)
	if want == "" {
		return offsets.Field{}, false
	}

	for _, key := range keys {
		if category != "" && key.cat != c.resolveCategory(category) {
			continue
		}

		if c.NormalizeFieldName(key.name) == want {
			return c.index[key], true
		}
	}

	return offsets.Field{}, false
}

// SuperType returns the record table classification of a category.
func (c *Catalog) SuperType(label string) string {
	if s, ok := c.superTypes[strings.ToLower(label)]; ok {
		return s
	}

	return superTypePlayers
}

// Table maps a category onto its record table.
func (c *Catalog) Table(label string) offsets.Table {
	if t, ok := offsets.ParseTable(c.SuperType(label)); ok {
		return t
	}

	return offsets.TablePlayer
}

// CanonicalCategory returns the display label for a category spelling.
func (c *Catalog) CanonicalCategory(label string) string {
	if s, ok := c.canonical[strings.ToLower(label)]; ok {
		return s
	}

	return label
}

// NormalizeFieldName uppercases a field name, strips everything outside
// A-Z0-9 and applies the alias table.
func (c *Catalog) NormalizeFieldName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	norm := b.String()
	if alias, ok := c.aliases.FieldAliases[norm]; ok {
		return alias
	}

	return norm
}

// resolveCategory lowercases a category spelling and applies alias and
// `_offsets` suffix rules.
func (c *Catalog) resolveCategory(label string) string {
	low := strings.ToLower(strings.TrimSpace(label))

	if alias, ok := c.aliases.CategoryAliases[low]; ok {
		return alias
	}

	return strings.TrimSuffix(low, "_offsets")
}

// buildIndex registers every field under its category, the category's alias
// spelling, and every synonym of its name.
func (c *Catalog) buildIndex() {
	for cat, fields := range c.categories {
		catLow := strings.ToLower(cat)
		catAlias := c.resolveCategory(cat)

		for _, f := range fields {
			nameLow := strings.ToLower(f.Name)

			names := []string{nameLow}
			for canon, syns := range c.aliases.FieldSynonyms {
				group := append([]string{canon}, syns...)

				member := false
				for _, s := range group {
					if strings.ToLower(s) == nameLow {
						member = true
						break
					}
				}

				if member {
					for _, s := range group {
						names = append(names, strings.ToLower(s))
					}
				}
			}

			for _, n := range names {
				c.register(indexKey{cat: catLow, name: n}, f)
				if catAlias != catLow {
					c.register(indexKey{cat: catAlias, name: n}, f)
				}
			}
		}
	}
}

// register keeps the first field seen for a key; synonym fan-out must not
// shadow a real entry.
func (c *Catalog) register(key indexKey, f offsets.Field) {
	if _, exists := c.index[key]; !exists {
		c.index[key] = f
	}
}

// classifyCategories assigns each category to a record table. Explicit
// super_type_map entries override entry-level tags with a warning when they
// disagree; categories named "team ..." default to Teams; everything else is
// Players.
func (c *Catalog) classifyCategories(doc *offsets.Document) {
	for cat, fields := range c.categories {
		low := strings.ToLower(cat)

		entrySuper := ""
		for _, f := range fields {
			if f.SuperType != "" {
				entrySuper = f.SuperType
				break
			}
		}

		mapped := doc.SuperTypes[low]

		switch {
		case mapped != "":
			if entrySuper != "" && !strings.EqualFold(entrySuper, mapped) {
				c.Diags.AddWarning("super-type-override",
					cat+": "+entrySuper+" -> "+mapped, cat, "")
			}

			c.superTypes[low] = mapped
		case entrySuper != "":
			c.superTypes[low] = entrySuper
		case strings.HasPrefix(low, "team "):
			c.superTypes[low] = "Teams"
		default:
			c.superTypes[low] = superTypePlayers
		}

		if canon, ok := doc.CategoryNormalization[low]; ok {
			c.canonical[low] = canon
		} else {
			c.canonical[low] = cat
		}
	}
}
