// Package catalog organizes normalized schema fields into the category map
// consumed by the engine: duplicate-free lookup by category and name with
// alias and synonym awareness, durability split out of attributes, a
// synthesized potential category, and stable display ordering.
package catalog
