//go:build !bulloak_debug

package assertx

import (
	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/source"
)

func fail(code diag.Code, span source.Span, msg string) (diag.Diagnostic, bool) {
	return diag.NewError(code, span, msg), true
}
