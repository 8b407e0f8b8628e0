// Package assertx checks internal invariants that a correct pipeline
// stage should never violate (spec.md §7's "CombinerError... should
// never fire"). A violated invariant panics under the bulloak_debug
// build tag, surfacing a stack trace during development, and otherwise
// returns a diag.Diagnostic for the caller to report instead — matching
// spec.md §5's "a panic in any pipeline stage must be converted to an
// error by the top-level driver" without crashing a production run over
// a bug that should have been caught in testing.
package assertx

import (
	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/source"
)

// Check reports a failed invariant. When ok is true it is a no-op and
// returns (zero Diagnostic, false). When ok is false it fails: under
// bulloak_debug it panics with msg, otherwise it returns the diagnostic
// for code/span/msg and true, leaving the caller to append it and carry
// on to the next file rather than aborting the run.
func Check(ok bool, code diag.Code, span source.Span, msg string) (diag.Diagnostic, bool) {
	if ok {
		return diag.Diagnostic{}, false
	}
	return fail(code, span, msg)
}
