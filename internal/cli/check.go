package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sapling"
)

func newCheckCmd() *cobra.Command {
	var config string

	cmd := &cobra.Command{
		Use:     "check",
		Short:   "Validate a scene file and print its node tree",
		Example: `  sapling check --config scene.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScene(config)
			if err != nil {
				return err
			}
			if _, err := sc.windowConfig(); err != nil {
				return err
			}
			roots, err := sc.build(filepath.Dir(config))
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), roots, 0)
			loggerFromContext(cmd.Context()).Debug("scene ok", "config", config, "nodes", countNodes(roots))
			return nil
		},
	}
	cmd.Flags().StringVarP(&config, "config", "c", "", "scene TOML file (required)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

// printTree writes one line per node: indentation by depth, type, name,
// absolute position and size.
func printTree(w io.Writer, nodes []*sapling.Node, depth int) {
	for _, n := range nodes {
		x, y := n.Pos()
		fmt.Fprintf(w, "%s%s %q at (%g, %g) size %gx%g\n",
			strings.Repeat("  ", depth), n.Type, n.Name, x, y, n.Width(), n.Height())
		printTree(w, n.Children(), depth+1)
	}
}
