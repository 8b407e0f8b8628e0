// Package pipeline wires the tokenizer, parser, semantic analyzer, HIR
// combiner, emitter, structural matcher, and fixer into the two
// end-to-end operations the CLI exposes: Scaffold (spec.md §6.3
// `scaffold`) and Check (spec.md §6.3 `check`). Config is loaded once by
// the caller and threaded explicitly through every call here; this
// package holds no mutable package-level state (spec.md §9).
package pipeline

import (
	"fmt"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/emit"
	"github.com/bulloak-go/bulloak/internal/fix"
	"github.com/bulloak-go/bulloak/internal/hir"
	"github.com/bulloak-go/bulloak/internal/lexer"
	"github.com/bulloak-go/bulloak/internal/match"
	"github.com/bulloak-go/bulloak/internal/parser"
	"github.com/bulloak-go/bulloak/internal/sema"
	"github.com/bulloak-go/bulloak/internal/solview"
	"github.com/bulloak-go/bulloak/internal/source"
)

// Config carries the per-run options that shape every stage, resolved by
// the caller from CLI flags over internal/project defaults.
type Config struct {
	SolVersion    string
	VmSkip        bool
	SkipModifiers bool
}

func (c Config) hirConfig() hir.Config {
	return hir.Config{SolVersion: c.SolVersion, VmSkip: c.VmSkip, SkipModifiers: c.SkipModifiers}
}

// Outcome is the typed result the caller maps to a process exit code
// (spec.md §6.3: 0 success, 1 violations remain, 2 input error).
type Outcome uint8

const (
	OutcomeClean Outcome = iota
	OutcomeViolations
	OutcomeInputError
)

// Emitter is the event sink a caller passes to observe per-stage
// progress (internal/ui's bubbletea model is one such observer); a nil
// Emitter is valid and simply drops every event.
type Emitter func(Event)

func (e Emitter) emit(ev Event) {
	if e != nil {
		e(ev)
	}
}

// ScaffoldResult is the outcome of running Scaffold on one .tree file.
type ScaffoldResult struct {
	Source      string
	Diagnostics []diag.Diagnostic
	Outcome     Outcome
}

// Scaffold runs stages A-F (spec.md §2) over the .tree file registered
// as fileID in fs, producing Solidity source text. It never stops early
// on a non-fatal stage: tokenizer errors still allow a best-effort parse
// attempt, but semantics only runs on a syntactically complete AST and
// combining only runs once semantics passes clean (spec.md §7). A panic
// in any stage (e.g. a source-offset overflow) is recovered here and
// reported as a PanicRecovered diagnostic rather than propagating out,
// per spec.md §5's "a panic in any pipeline stage must be converted to
// an error by the top-level driver".
func Scaffold(fs *source.FileSet, fileID source.FileID, cfg Config, emitEv Emitter) (result ScaffoldResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ScaffoldResult{
				Diagnostics: []diag.Diagnostic{panicDiagnostic(fs, fileID, r)},
				Outcome:     OutcomeInputError,
			}
		}
	}()
	return scaffold(fs, fileID, cfg, emitEv)
}

func scaffold(fs *source.FileSet, fileID source.FileID, cfg Config, emitEv Emitter) ScaffoldResult {
	file := fs.Get(fileID)
	emitEv.emit(Event{File: file.Name, Stage: StageLex, Status: StatusWorking})

	toks, lexDiags := lexer.New(file).Tokenize()
	var all []diag.Diagnostic
	all = append(all, lexDiags...)

	emitEv.emit(Event{File: file.Name, Stage: StageParse, Status: StatusWorking})
	roots, parseDiags := parser.Parse(file, toks)
	all = append(all, parseDiags...)
	if hasErrors(parseDiags) || len(roots) == 0 {
		emitEv.emit(Event{File: file.Name, Stage: StageParse, Status: StatusError})
		return ScaffoldResult{Diagnostics: all, Outcome: OutcomeInputError}
	}

	emitEv.emit(Event{File: file.Name, Stage: StageSema, Status: StatusWorking})
	semaDiags := sema.Check(roots)
	all = append(all, semaDiags...)
	if hasErrors(semaDiags) {
		emitEv.emit(Event{File: file.Name, Stage: StageSema, Status: StatusError})
		return ScaffoldResult{Diagnostics: all, Outcome: OutcomeInputError}
	}

	emitEv.emit(Event{File: file.Name, Stage: StageCombine, Status: StatusWorking})
	contract, combineDiags := hir.Combine(roots, cfg.hirConfig())
	all = append(all, combineDiags...)
	if hasErrors(combineDiags) {
		emitEv.emit(Event{File: file.Name, Stage: StageCombine, Status: StatusError})
		return ScaffoldResult{Diagnostics: all, Outcome: OutcomeInputError}
	}

	emitEv.emit(Event{File: file.Name, Stage: StageRender, Status: StatusWorking})
	src := emit.Emit(contract)

	emitEv.emit(Event{File: file.Name, Stage: StageRender, Status: StatusDone})
	return ScaffoldResult{Source: src, Diagnostics: all, Outcome: OutcomeClean}
}

// CheckResult is the outcome of running Check against one existing
// .t.sol file.
type CheckResult struct {
	Violations  []match.Violation
	Applied     []match.Violation
	Diagnostics []diag.Diagnostic
	// Fixed is the source text fix.Apply returned, set whenever doFix is
	// true and violations were found (the original text if no edit was
	// made).
	Fixed   string
	Outcome Outcome
}

// Select narrows the violations stage I will apply, given everything
// stage H found; the caller can use this to drive an interactive picker
// (cmd/bulloak's `check --fix --interactive`). A nil Select applies
// every fixable violation, matching plain `check --fix`.
type Select func([]match.Violation) []match.Violation

// Check runs stages A-E to build the expected HIR from treeID, stage G
// to read solID's existing parts view, stage H to diff them, and
// (if doFix) stage I to compute the repaired text, returned in
// CheckResult.Fixed; Check writes no file itself. As in Scaffold, a
// panic in any stage is recovered and reported as a PanicRecovered
// diagnostic rather than propagating out (spec.md §5).
func Check(fs *source.FileSet, treeID, solID source.FileID, cfg Config, doFix bool, selectFix Select, emitEv Emitter) (result CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			result = CheckResult{
				Diagnostics: []diag.Diagnostic{panicDiagnostic(fs, treeID, r)},
				Outcome:     OutcomeInputError,
			}
		}
	}()
	return check(fs, treeID, solID, cfg, doFix, selectFix, emitEv)
}

func check(fs *source.FileSet, treeID, solID source.FileID, cfg Config, doFix bool, selectFix Select, emitEv Emitter) CheckResult {
	treeFile := fs.Get(treeID)
	solFile := fs.Get(solID)

	emitEv.emit(Event{File: treeFile.Name, Stage: StageLex, Status: StatusWorking})
	toks, lexDiags := lexer.New(treeFile).Tokenize()
	var all []diag.Diagnostic
	all = append(all, lexDiags...)

	roots, parseDiags := parser.Parse(treeFile, toks)
	all = append(all, parseDiags...)
	if hasErrors(parseDiags) || len(roots) == 0 {
		return CheckResult{Diagnostics: all, Outcome: OutcomeInputError}
	}

	semaDiags := sema.Check(roots)
	all = append(all, semaDiags...)
	if hasErrors(semaDiags) {
		return CheckResult{Diagnostics: all, Outcome: OutcomeInputError}
	}

	emitEv.emit(Event{File: treeFile.Name, Stage: StageCombine, Status: StatusWorking})
	contract, combineDiags := hir.Combine(roots, cfg.hirConfig())
	all = append(all, combineDiags...)
	if hasErrors(combineDiags) {
		return CheckResult{Diagnostics: all, Outcome: OutcomeInputError}
	}

	emitEv.emit(Event{File: solFile.Name, Stage: StageMatch, Status: StatusWorking})
	view, viewDiags := solview.Parse(solFile)
	all = append(all, viewDiags...)
	if hasErrors(viewDiags) {
		emitEv.emit(Event{File: solFile.Name, Stage: StageMatch, Status: StatusError})
		return CheckResult{Diagnostics: all, Outcome: OutcomeInputError}
	}

	fileSpan := source.Span{File: solFile.ID, Start: 0, End: uint32(len(solFile.Content))}
	violations := match.Check(contract, view, fileSpan, cfg.SkipModifiers)

	result := CheckResult{Violations: violations, Diagnostics: all}

	if len(violations) == 0 {
		emitEv.emit(Event{File: solFile.Name, Stage: StageMatch, Status: StatusDone})
		result.Outcome = OutcomeClean
		return result
	}

	if !doFix {
		emitEv.emit(Event{File: solFile.Name, Stage: StageMatch, Status: StatusError})
		result.Outcome = OutcomeViolations
		return result
	}

	toApply := violations
	if selectFix != nil {
		toApply = selectFix(violations)
	}

	emitEv.emit(Event{File: solFile.Name, Stage: StageFix, Status: StatusWorking})
	fixRes := fix.Apply(solFile, view, contract, toApply)
	result.Applied = fixRes.Applied
	result.Fixed = fixRes.Source

	if len(fixRes.Skipped) > 0 || len(fixRes.Applied) < len(violations) {
		emitEv.emit(Event{File: solFile.Name, Stage: StageFix, Status: StatusError})
		result.Outcome = OutcomeViolations
		return result
	}

	emitEv.emit(Event{File: solFile.Name, Stage: StageFix, Status: StatusDone})
	result.Outcome = OutcomeClean
	return result
}

func hasErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// panicDiagnostic turns a recovered panic value into a PanicRecovered
// diagnostic spanning the whole file, so the caller still gets a
// Diagnostics slice to render instead of a crash.
func panicDiagnostic(fs *source.FileSet, fileID source.FileID, r any) diag.Diagnostic {
	file := fs.Get(fileID)
	span := source.Span{File: fileID, Start: 0, End: uint32(len(file.Content))}
	return diag.NewError(diag.PanicRecovered, span, fmt.Sprintf("internal error: %v", r))
}
