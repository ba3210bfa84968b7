package cli

import (
	"fmt"
	"io"
	"strings"

	"media-gallery/internal/gallery"

	"github.com/spf13/cobra"
)

func newTreeCommand(a *app) *cobra.Command {
	var (
		asJSON   bool
		maxDepth int
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the gallery tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := a.loadTree()
			if err != nil {
				return err
			}
			if asJSON {
				data, err := gallery.Encode(tree)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			printTree(cmd.OutOrStdout(), tree, maxDepth)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree in snapshot format")
	cmd.Flags().IntVar(&maxDepth, "depth", 0, "maximum depth to print, 0 for all")
	return cmd
}

func printTree(w io.Writer, tree *gallery.Tree, maxDepth int) {
	tree.Root.Walk(func(n *gallery.Node, depth int) {
		if maxDepth > 0 && depth > maxDepth {
			return
		}
		name := n.Name
		if depth == 0 {
			name = n.Address
		}
		line := strings.Repeat("  ", depth) + name
		if n.IsLeaf() {
			line += fmt.Sprintf(" (%d media)", len(n.Media))
		}
		if n.Cover != "" {
			line += "  cover=" + n.Cover
		}
		fmt.Fprintln(w, line)
	})

	stats := tree.GetStats()
	fmt.Fprintf(w, "\n%d directories, %d leaves, %d media files, %d without cover (%s)\n",
		stats.Directories, stats.Leaves, stats.MediaFiles, stats.MissingCovers, tree.Source)
}
