package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"media-gallery/internal/database"

	"github.com/spf13/cobra"
)

func newStatusCommand(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recent manifest runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.config.DatabasePath == "" {
				return errors.New("no database configured: set GALLERY_DATABASE or --database")
			}
			db, err := database.New(cmd.Context(), a.config.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			last, err := db.GetLastManifestRun(cmd.Context())
			if err != nil {
				return err
			}
			if last.IsZero() {
				fmt.Fprintln(out, "Last successful run: never")
			} else {
				fmt.Fprintf(out, "Last successful run: %s (%s ago)\n",
					last.Local().Format(time.RFC1123), time.Since(last).Round(time.Second))
			}

			runs, err := db.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "\nID\tSTARTED\tDURATION\tDIRS\tWRITTEN\tUNCHANGED\tFAILED\tSNAPSHOT\tERROR")
			for _, run := range runs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
					run.ID, run.StartedAt.Local().Format(time.DateTime), run.Duration.Round(time.Millisecond),
					run.Directories, run.Written, run.Unchanged, run.Failed, dash(run.Snapshot), dash(run.Error))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to list")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
