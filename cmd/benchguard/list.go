package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored baseline labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStoreFunc()
		if err != nil {
			return err
		}
		defer s.Close()

		labels, err := s.Labels(cmd.Context())
		if err != nil {
			return err
		}
		if len(labels) == 0 {
			cmd.Println("No baselines stored.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LABEL\tSUITE\tREVISION\tBENCHMARKS\tCREATED")
		for _, label := range labels {
			set, err := s.Get(cmd.Context(), label)
			if err != nil {
				return err
			}
			suite := set.Suite
			if suite == "" {
				suite = "-"
			}
			revision := set.Revision
			if revision == "" {
				revision = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				set.Label, suite, shortRevision(revision), len(set.Samples),
				set.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

// shortRevision trims a full SHA to the familiar 12 characters.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func init() {
	rootCmd.AddCommand(listCmd)
}
