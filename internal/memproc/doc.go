// Package memproc defines the capability through which the engine touches a
// foreign process's memory.
//
// The engine never discovers or attaches to processes itself; the caller
// hands it an already-attached Process. BufferProcess implements the same
// capability over an in-memory sparse image and backs tests and snapshot
// tooling.
package memproc
