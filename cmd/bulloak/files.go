package main

import (
	"fmt"
	"os"
	"strings"
)

// solPathFor derives a .t.sol sibling path from a .tree path, e.g.
// "test/Foo.tree" -> "test/Foo.t.sol" (spec.md §6.2, SPEC_FULL.md §12).
func solPathFor(treePath string) string {
	return strings.TrimSuffix(treePath, ".tree") + ".t.sol"
}

func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return content, nil
}

// writeFileGuarded writes content to path, refusing to clobber an
// existing file unless force is set (SPEC_FULL.md §12: scaffold's
// overwrite guard).
func writeFileGuarded(path string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use -f/--force-write to overwrite)", path)
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
