package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/source"
)

// jsonDiagnostic is the wire shape for a single diagnostic. It resolves
// spans to line/column eagerly so consumers need not load the source file.
type jsonDiagnostic struct {
	Severity string        `json:"severity"`
	Code     uint16        `json:"code"`
	Message  string        `json:"message"`
	File     string        `json:"file"`
	Line     uint32        `json:"line"`
	Column   uint32        `json:"column"`
	Notes    []jsonNote    `json:"notes,omitempty"`
	Fixable  bool          `json:"fixable"`
}

type jsonNote struct {
	File    string `json:"file"`
	Line    uint32 `json:"line"`
	Column  uint32 `json:"column"`
	Message string `json:"message"`
}

// JSON writes bag's diagnostics to w as a JSON array, for tool
// integration (a supplemental feature; spec.md §7 only requires the
// human-readable rendering).
func JSON(w io.Writer, fs *source.FileSet, bag *diag.Bag) error {
	out := make([]jsonDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		pos := f.Resolve(d.Primary.Start)
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     uint16(d.Code),
			Message:  d.Message,
			File:     f.Name,
			Line:     pos.Line,
			Column:   pos.Column,
			Fixable:  len(d.Fixes) > 0,
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			np := nf.Resolve(n.Span.Start)
			jd.Notes = append(jd.Notes, jsonNote{File: nf.Name, Line: np.Line, Column: np.Column, Message: n.Msg})
		}
		out = append(out, jd)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
