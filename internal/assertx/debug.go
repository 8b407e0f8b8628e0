//go:build bulloak_debug

package assertx

import (
	"fmt"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/source"
)

func fail(code diag.Code, span source.Span, msg string) (diag.Diagnostic, bool) {
	panic(fmt.Sprintf("assertx: invariant violated (code %d): %s", code, msg))
}
