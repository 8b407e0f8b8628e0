package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/diagfmt"
	"github.com/bulloak-go/bulloak/internal/match"
	"github.com/bulloak-go/bulloak/internal/pipeline"
	"github.com/bulloak-go/bulloak/internal/source"
	"github.com/bulloak-go/bulloak/internal/ui"
)

func checkCmd() *cobra.Command {
	var (
		doFix         bool
		toStdout      bool
		skipModifiers bool
		showProgress  bool
		interactive   bool
	)

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Verify that .t.sol files match their .tree specifications",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = filepath.Dir(args[0])
			}
			projCfg := loadProjectConfig(dir)
			cfg := pipeline.Config{
				SolVersion:    projCfg.SolidityVersion,
				VmSkip:        projCfg.VmSkip,
				SkipModifiers: skipModifiers || projCfg.SkipModifiers,
			}
			colorize := resolveColor(projCfg.Color)

			// The interactive picker owns the terminal, so it can't share it
			// with a concurrent progress display or with sibling jobs
			// prompting at the same time.
			concurrency := concurrencyFor(len(args))
			if interactive {
				showProgress = false
				concurrency = 1
			}
			prog := startProgress(showProgress, "check", args)

			results := make([]checkOutcome, len(args))
			jobs := make([]pipeline.Job, len(args))
			for i, treePath := range args {
				i, treePath := i, treePath
				jobs[i] = pipeline.Job{
					Name: treePath,
					Run: func() error {
						results[i] = runCheckOne(treePath, cfg, doFix, interactive, toStdout, colorize, prog.emit)
						return nil
					},
				}
			}
			pipeline.RunMany(cmd.Context(), jobs, concurrency)
			prog.finish()

			totalViolations, totalFixed := 0, 0
			worst := pipeline.OutcomeClean
			for _, r := range results {
				fmt.Fprint(os.Stderr, r.diagText)
				if r.bodyText != "" {
					fmt.Print(r.bodyText)
				}
				totalViolations += r.violations
				totalFixed += r.fixed
				if r.outcome > worst {
					worst = r.outcome
				}
			}
			_ = diagfmt.Summary(os.Stderr, totalViolations, totalFixed, diagfmt.PrettyOptions{Color: colorize})
			exitCode = int(worst)
			return nil
		},
	}

	cmd.Flags().BoolVar(&doFix, "fix", false, "apply fixable violations in place")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the fixed file to stdout instead of writing it")
	cmd.Flags().BoolVarP(&skipModifiers, "skip-modifiers", "m", false, "ignore missing modifier declarations")
	cmd.Flags().BoolVarP(&showProgress, "progress", "p", false, "show an interactive progress display while checking")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "with --fix, pick which violations to apply")
	return cmd
}

// checkOutcome buffers one file's result so concurrent jobs launched by
// pipeline.RunMany don't interleave their stderr/stdout writes; the
// caller prints each result in argument order once every job has run.
type checkOutcome struct {
	outcome    pipeline.Outcome
	violations int
	fixed      int
	diagText   string
	bodyText   string
}

func runCheckOne(treePath string, cfg pipeline.Config, doFix, interactive, toStdout, colorize bool, emit pipeline.Emitter) checkOutcome {
	treeContent, err := readFile(treePath)
	if err != nil {
		return checkOutcome{outcome: pipeline.OutcomeInputError, diagText: err.Error() + "\n"}
	}
	solPath := solPathFor(treePath)
	solContent, err := readFile(solPath)
	if err != nil {
		return checkOutcome{outcome: pipeline.OutcomeInputError, diagText: err.Error() + "\n"}
	}

	fs := source.NewFileSet()
	treeID := fs.AddFile(treePath, treeContent)
	solID := fs.AddFile(solPath, solContent)

	var selectFix pipeline.Select
	if doFix && interactive {
		selectFix = func(violations []match.Violation) []match.Violation {
			return pickViolations(solPath, violations)
		}
	}
	res := pipeline.Check(fs, treeID, solID, cfg, doFix, selectFix, emit)

	bag := diag.NewBag(0)
	for _, d := range res.Diagnostics {
		bag.Add(d)
	}
	for _, v := range res.Violations {
		bag.Add(v.ToDiagnostic())
	}
	bag.Sort()
	var buf bytes.Buffer
	_ = diagfmt.Pretty(&buf, fs, bag, diagfmt.PrettyOptions{Color: colorize})
	out := checkOutcome{outcome: res.Outcome, diagText: buf.String(), violations: len(res.Violations), fixed: len(res.Applied)}

	if res.Outcome == pipeline.OutcomeInputError {
		return out
	}

	if doFix && len(res.Applied) > 0 {
		if toStdout {
			out.bodyText = res.Fixed
		} else if err := os.WriteFile(solPath, []byte(res.Fixed), 0o644); err != nil {
			out.outcome = pipeline.OutcomeInputError
			out.diagText += err.Error() + "\n"
			out.fixed = 0
		}
	}

	return out
}

// pickViolations runs the bubbles/list-based picker over violations and
// blocks until the user applies a selection or cancels. Cancelling
// (q/esc/ctrl+c) returns nil, matching `check --fix` run with nothing
// selected: no edits are made.
func pickViolations(solPath string, violations []match.Violation) []match.Violation {
	model := ui.NewPickerModel(fmt.Sprintf("%s: select violations to fix", solPath), violations)
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return nil
	}
	picked, ok := final.(*ui.PickerModel)
	if !ok {
		return nil
	}
	selected, applied := picked.Selected()
	if !applied {
		return nil
	}
	return selected
}
