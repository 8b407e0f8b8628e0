package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bulloak-go/bulloak/internal/project"
	"github.com/bulloak-go/bulloak/internal/version"
)

// exitCode is set by whichever subcommand ran; Execute returns it as
// the process exit code. Cobra's own parse/usage errors map to 2 (input
// error, spec.md §6.3) regardless of what a subcommand set.
var exitCode int

var colorFlag string

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bulloak",
		Short:         "Scaffold and check Solidity branching-tree test files",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "colorize diagnostics: auto|on|off")
	cmd.AddCommand(scaffoldCmd(), checkCmd())
	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return exitCode
}

// resolveColor turns --color and the discovered project default into a
// concrete on/off decision, falling back to TTY detection for "auto".
func resolveColor(projectDefault string) bool {
	mode := colorFlag
	if mode == "" || mode == "auto" {
		mode = projectDefault
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

func loadProjectConfig(dir string) project.Config {
	cfg, err := project.LoadFromDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bulloak: warning: %s: %v\n", project.ManifestName, err)
		return project.Default()
	}
	return cfg
}
