package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bulloak-go/bulloak/internal/diag"
	"github.com/bulloak-go/bulloak/internal/diagfmt"
	"github.com/bulloak-go/bulloak/internal/pipeline"
	"github.com/bulloak-go/bulloak/internal/source"
	"github.com/bulloak-go/bulloak/internal/ui"
)

func scaffoldCmd() *cobra.Command {
	var (
		writeFiles    bool
		forceWrite    bool
		solVersion    string
		vmSkip        bool
		skipModifiers bool
		toStdout      bool
		showProgress  bool
	)

	cmd := &cobra.Command{
		Use:   "scaffold [files...]",
		Short: "Generate a Solidity test file from a .tree specification",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = filepath.Dir(args[0])
			}
			projCfg := loadProjectConfig(dir)

			cfg := pipeline.Config{
				SolVersion:    firstNonEmpty(solVersion, projCfg.SolidityVersion),
				VmSkip:        vmSkip || projCfg.VmSkip,
				SkipModifiers: skipModifiers || projCfg.SkipModifiers,
			}
			colorize := resolveColor(projCfg.Color)
			write := writeFiles || toStdout

			prog := startProgress(showProgress, "scaffold", args)

			results := make([]scaffoldOutcome, len(args))
			jobs := make([]pipeline.Job, len(args))
			for i, path := range args {
				i, path := i, path
				jobs[i] = pipeline.Job{
					Name: path,
					Run: func() error {
						results[i] = runScaffoldOne(path, cfg, write, toStdout, forceWrite, colorize, prog.emit)
						return nil
					},
				}
			}
			pipeline.RunMany(cmd.Context(), jobs, concurrencyFor(len(jobs)))
			prog.finish()

			worst := pipeline.OutcomeClean
			for _, r := range results {
				fmt.Fprint(os.Stderr, r.diagText)
				if r.bodyText != "" {
					fmt.Print(r.bodyText)
				}
				if r.outcome > worst {
					worst = r.outcome
				}
			}
			exitCode = int(worst)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&writeFiles, "write-files", "w", false, "write output next to the .tree file")
	cmd.Flags().BoolVarP(&forceWrite, "force-write", "f", false, "overwrite an existing .t.sol file")
	cmd.Flags().StringVarP(&solVersion, "solidity-version", "s", "", "pragma solidity version (default 0.8.0)")
	cmd.Flags().BoolVarP(&vmSkip, "vm-skip", "S", false, "emit vm.skip(true) in each test body")
	cmd.Flags().BoolVarP(&skipModifiers, "skip-modifiers", "m", false, "omit modifier declarations")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print to stdout instead of writing files")
	cmd.Flags().BoolVarP(&showProgress, "progress", "p", false, "show an interactive progress display while scaffolding")
	return cmd
}

// scaffoldOutcome buffers one file's result so concurrent jobs launched by
// pipeline.RunMany don't interleave their stderr/stdout writes; the
// caller prints each result in argument order once every job has run.
type scaffoldOutcome struct {
	outcome  pipeline.Outcome
	diagText string
	bodyText string
}

func runScaffoldOne(path string, cfg pipeline.Config, write, forceStdout, force, colorize bool, emit pipeline.Emitter) scaffoldOutcome {
	content, err := readFile(path)
	if err != nil {
		return scaffoldOutcome{outcome: pipeline.OutcomeInputError, diagText: err.Error() + "\n"}
	}

	fs := source.NewFileSet()
	id := fs.AddFile(path, content)
	res := pipeline.Scaffold(fs, id, cfg, emit)

	bag := diag.NewBag(0)
	for _, d := range res.Diagnostics {
		bag.Add(d)
	}
	bag.Sort()
	var buf bytes.Buffer
	_ = diagfmt.Pretty(&buf, fs, bag, diagfmt.PrettyOptions{Color: colorize})
	out := scaffoldOutcome{outcome: res.Outcome, diagText: buf.String()}

	if res.Outcome != pipeline.OutcomeClean {
		return out
	}

	// SPEC_FULL.md §12: neither flag given prints to stdout without
	// writing; -w writes next to the .tree file.
	if forceStdout || !write {
		out.bodyText = res.Source
		return out
	}

	outPath := solPathFor(path)
	if err := writeFileGuarded(outPath, []byte(res.Source), force); err != nil {
		out.outcome = pipeline.OutcomeInputError
		out.diagText += err.Error() + "\n"
		return out
	}
	if colorize {
		out.diagText += okColor.Sprintf("wrote %s", outPath) + "\n"
	} else {
		out.diagText += fmt.Sprintf("wrote %s\n", outPath)
	}
	return out
}

var okColor = color.New(color.FgGreen)

// progressHandle is what startProgress hands back to its caller: the
// Emitter jobs should report through, and a channel carrying the events
// those reports flow over (closed by finish to tell the display
// no more events are coming).
type progressHandle struct {
	emit   pipeline.Emitter
	events chan pipeline.Event
	done   chan struct{}
}

// startProgress launches an internal/ui progress display rendered to
// stderr (so it never collides with file content written to stdout).
// When show is false it returns a zero progressHandle whose emit is nil
// (a no-op Emitter) and whose finish call is a no-op too.
func startProgress(show bool, title string, files []string) progressHandle {
	if !show {
		return progressHandle{}
	}
	events := make(chan pipeline.Event, 64)
	model := ui.NewProgressModel(title, files, events)
	prog := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	done := make(chan struct{})
	go func() {
		_, _ = prog.Run()
		close(done)
	}()

	return progressHandle{
		emit:   func(ev pipeline.Event) { events <- ev },
		events: events,
		done:   done,
	}
}

// finish closes the events channel startProgress opened (if any)
// and waits for the display goroutine to quit before the caller prints
// any buffered results, so the progress display is never left running
// underneath the final output.
func (h progressHandle) finish() {
	if h.events == nil {
		return
	}
	close(h.events)
	<-h.done
}
