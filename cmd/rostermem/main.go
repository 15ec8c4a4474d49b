// Package main provides the CLI entrypoint for rostermem.
//
// rostermem is a roster memory inspection tool that:
//   - Loads and normalizes offset schema bundles across format generations
//   - Resolves record table bases through declared pointer chains
//   - Reads and writes cataloged fields in display units
//
// Commands operate on a process snapshot image so edits can be rehearsed
// offline before touching a live process.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
