// Package engine ties the schema catalog, pointer-chain resolver and codec
// into the typed field access surface: read or write any cataloged field of
// any record by table and index, in display units.
package engine
