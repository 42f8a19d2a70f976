// Package cli implements the sapling command-line interface.
//
// The CLI loads a TOML scene description, builds the node tree it describes
// and shows it on one of the backends (ebiten, raylib or headless). The
// headless backend can be driven by a JSON script and write screenshots,
// which makes the CLI usable for visual checks in CI.
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sapling"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the sapling CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "sapling",
		Short:        "sapling shows retained-mode 2D scenes",
		Long:         `sapling builds a scene of sprites and text labels from a TOML file and shows it in a window, or renders it headlessly for scripted checks.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), sapling.NewLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("sapling %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckCmd())
	return root
}
