// Package chain resolves record table base addresses by walking declared
// pointer-chain candidates inside the target process.
//
// Candidates are tried strictly in declared order and the first one whose
// result passes the table's text probes wins. Resolved bases are cached until
// Invalidate, so one process restart or schema reload costs exactly one
// re-traversal per table.
package chain
