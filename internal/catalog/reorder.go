package catalog

import (
	"sort"
	"strings"

	"rostermem/internal/offsets"
)

// preferredCategoryOrder is the display order of the well-known categories;
// anything else follows alphabetically after them.
var preferredCategoryOrder = []string{
	"Body", "Vitals", "Attributes", "Durability", "Potential", "Tendencies", "Badges",
}

// peelDurability moves per-limb durability fields out of Attributes into
// their own Durability category. Misc Durability stays with the attributes,
// matching how the game groups them.
func (c *Catalog) peelDurability() {
	attrs, ok := c.categories["Attributes"]
	if !ok {
		return
	}

	newAttrs := attrs[:0:0]
	dura := c.categories["Durability"]

	for _, f := range attrs {
		norm := c.NormalizeFieldName(f.Name)
		if norm != "" && strings.Contains(norm, "DURABILITY") && norm != "MISCDURABILITY" {
			dura = append(dura, f)
			continue
		}

		newAttrs = append(newAttrs, f)
	}

	c.categories["Attributes"] = newAttrs
	if len(dura) > 0 {
		c.categories["Durability"] = dura
	}
}

// potentialSpecs names the potential trio and the lookup spellings each
// accepts, searched in Vitals first and Attributes second.
var potentialSpecs = []struct {
	display    string
	candidates []string
}{
	{"Minimum Potential", []string{"Minimum Potential", "Min Potential"}},
	{"Potential", []string{"Potential"}},
	{"Maximum Potential", []string{"Maximum Potential", "Max Potential"}},
}

// ensurePotential synthesizes the Potential category from fields scattered
// across Vitals and Attributes when the document does not declare one.
func (c *Catalog) ensurePotential() {
	if len(c.categories["Potential"]) > 0 {
		return
	}

	var fields []offsets.Field

	for _, spec := range potentialSpecs {
		found := false

		for _, candidate := range spec.candidates {
			for _, source := range []string{"Vitals", "Attributes"} {
				for _, f := range c.categories[source] {
					if strings.EqualFold(f.Name, candidate) {
						clone := f
						clone.Category = "Potential"
						clone.Name = spec.display
						fields = append(fields, clone)
						found = true
						break
					}
				}

				if found {
					break
				}
			}

			if found {
				break
			}
		}
	}

	if len(fields) > 0 {
		c.categories["Potential"] = fields
	}
}

// reorderFields arranges fields inside the categories that carry an import
// order. Headers match fields by normalized name, exact before substring,
// and unmatched fields keep their relative order at the tail.
func (c *Catalog) reorderFields() {
	for cat, order := range c.aliases.ImportOrders {
		fields := c.categories[cat]
		if len(fields) == 0 {
			continue
		}

		remaining := append([]offsets.Field(nil), fields...)
		reordered := make([]offsets.Field, 0, len(fields))

		for _, header := range order {
			normHeader := c.NormalizeFieldName(header)
			if normHeader == "" {
				continue
			}

			bestIdx := -1
			bestScore := 3 // lower wins: 0 exact, 1 header-in-field, 2 field-in-header

			for idx, f := range remaining {
				normField := c.NormalizeFieldName(f.Name)
				if normField == "" {
					continue
				}

				score := -1
				switch {
				case normHeader == normField:
					score = 0
				case strings.Contains(normField, normHeader):
					score = 1
				case strings.Contains(normHeader, normField):
					score = 2
				}

				if score < 0 || score >= bestScore {
					continue
				}

				bestIdx = idx
				bestScore = score

				if score == 0 {
					break
				}
			}

			if bestIdx >= 0 {
				reordered = append(reordered, remaining[bestIdx])
				remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
			}
		}

		reordered = append(reordered, remaining...)
		c.categories[cat] = reordered
	}
}

// orderCategories builds the display order: the preferred list first, then
// the rest sorted by name.
func (c *Catalog) orderCategories() {
	c.order = c.order[:0]

	placed := make(map[string]bool, len(c.categories))

	for _, name := range preferredCategoryOrder {
		if _, ok := c.categories[name]; ok {
			c.order = append(c.order, name)
			placed[name] = true
		}
	}

	var rest []string
	for name := range c.categories {
		if !placed[name] {
			rest = append(rest, name)
		}
	}

	sort.Strings(rest)

	c.order = append(c.order, rest...)
}
