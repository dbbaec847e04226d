package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <label>",
	Short: "Show a stored measurement set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		s, err := newStoreFunc()
		if err != nil {
			return err
		}
		defer s.Close()

		set, err := s.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(set)
		}

		cmd.Printf("Label:    %s\n", set.Label)
		if set.Suite != "" {
			cmd.Printf("Suite:    %s\n", set.Suite)
		}
		if set.Revision != "" {
			cmd.Printf("Revision: %s\n", set.Revision)
		}
		cmd.Printf("Created:  %s\n\n", set.CreatedAt.Format("2006-01-02 15:04:05"))

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BENCHMARK\tSAMPLES\tMEDIAN (ns/op)")
		for _, name := range set.Names() {
			sample := set.Samples[name]
			fmt.Fprintf(w, "%s\t%d\t%.2f\n", name, len(sample), sample.Median())
		}
		if err := w.Flush(); err != nil {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("json", false, "Print the raw measurement set as JSON")
}
