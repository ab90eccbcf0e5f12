// Package cli implements the CLI surface spec.md §6 names, grounded on the
// teacher's internal/cmd/root.go: a single spf13/cobra root command with
// no subcommands, carrying one flag/arg per documented verb instead of the teacher's many session-management subcommands (those
// belong to the excluded SSH/Docker-manager collaborators, spec.md §13).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rat/internal/version"
)

// UpdateHook is invoked by `rat --update`. It is a registered hook rather
// than a direct dependency because the updater is an external collaborator
// out of this module's scope (spec.md §13); the default hook is a no-op
// that reports the feature isn't wired in this build.
var UpdateHook = func() error {
	fmt.Fprintln(os.Stderr, "rat: no updater configured")
	return nil
}

// RunApp launches the full split-pane application, optionally opening path
// in the editor. It is set by cmd/rat at startup (the cli package itself
// has no dependency on the event loop, multiplexer, or terminal I/O, so
// this module stays link-clean for anyone that only wants the CLI shape).
var RunApp = func(path string) error {
	return fmt.Errorf("rat: RunApp not wired")
}

// NewRootCmd builds the `rat` root command (spec.md §6 "CLI surface").
func NewRootCmd() *cobra.Command {
	var showVersion, update bool

	root := &cobra.Command{
		Use:   "rat [path]",
		Short: "A split-pane terminal multiplexer and code editor",
		Args:  cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println(version.DisplayVersion())
				return nil
			}
			if update {
				return UpdateHook()
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return RunApp(path)
		},
	}

	root.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	root.Flags().BoolVar(&update, "update", false, "run the updater")

	return root
}

// Execute runs the root command and maps errors to spec.md §6's exit codes:
// 0 on clean quit, 1 on unrecoverable initialization failure.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rat:", err)
		return 1
	}
	return 0
}
