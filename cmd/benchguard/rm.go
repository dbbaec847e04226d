package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// confirmFunc is swapped out in tests to avoid a terminal prompt.
var confirmFunc = func(message string) (bool, error) {
	confirmed := false
	err := survey.AskOne(&survey.Confirm{Message: message}, &confirmed)
	return confirmed, err
}

var rmCmd = &cobra.Command{
	Use:     "rm <label>",
	Aliases: []string{"delete"},
	Short:   "Delete a stored measurement set",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			confirmed, err := confirmFunc(fmt.Sprintf("Delete baseline %q?", label))
			if err != nil {
				return err
			}
			if !confirmed {
				cmd.Println("Aborted.")
				return nil
			}
		}

		s, err := newStoreFunc()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Delete(cmd.Context(), label); err != nil {
			return err
		}
		cmd.Printf("Deleted baseline %q\n", label)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().BoolP("force", "f", false, "Delete without confirmation")
}
