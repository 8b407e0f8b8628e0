// Command bulloak is the CLI dispatcher for the scaffold/check pipeline
// (spec.md §6.3). It owns file I/O and flag parsing, both explicitly out
// of the compiler core (spec.md §1); everything else is delegated to
// internal/pipeline.
package main

import "os"

func main() {
	os.Exit(Execute())
}
