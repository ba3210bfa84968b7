package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCoverCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cover <address>",
		Short: "Print the cover resolved for a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.loadTree()
			if err != nil {
				return err
			}
			node, err := tree.Resolve(args[0])
			if err != nil {
				return err
			}
			if node.Cover == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "(none)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), node.Cover)
			return nil
		},
	}
}
