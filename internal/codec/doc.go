// Package codec reads and writes field values inside record memory: packed
// bit runs, fixed-capacity strings and IEEE-754 floats, all little-endian.
//
// Every write of a packed run is read-modify-write over the minimal byte
// span, so neighbouring fields sharing bytes are never disturbed, and a
// write producing no change is skipped entirely.
package codec
