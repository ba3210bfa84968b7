package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"media-gallery/internal/alias"
	"media-gallery/internal/gallery"
	"media-gallery/internal/mediatypes"

	"github.com/spf13/cobra"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <address>",
		Short: "Show a directory's tiles or media, aliases included",
		Example: `  gallery show /gallery/
  gallery show /gallery/Trips/2019`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.loadTree()
			if err != nil {
				return err
			}
			node, err := tree.Resolve(args[0])
			if err != nil {
				return err
			}
			view := alias.NewResolver(a.src, tree).Expand(node)
			return printView(cmd.OutOrStdout(), view)
		},
	}
}

func printView(out io.Writer, view alias.View) error {
	node := view.Node
	fmt.Fprintf(out, "%s\n", node.Address)
	if node.Cover != "" {
		fmt.Fprintf(out, "cover: %s\n", node.Cover)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if view.ChildCount > 0 {
		fmt.Fprintf(out, "%d tiles (%d aliases)\n", view.ChildCount, len(view.Aliases()))
		for _, tile := range view.Tiles {
			target := tile.Address
			if tile.Kind == gallery.KindAlias {
				target = tile.Target
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tile.Kind, tile.Name, target, tile.Cover)
		}
		return w.Flush()
	}

	fmt.Fprintf(out, "%d media\n", len(node.Media))
	for i, name := range node.Media {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, name, mediatypes.GetMimeType(mediatypes.Ext(name)))
	}
	return w.Flush()
}
