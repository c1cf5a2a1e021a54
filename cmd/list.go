package cmd

import (
	"github.com/spf13/cobra"

	"pagecheck.dev/pkg/pagecheck/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the scripted checks and their requests",
		Long:  "List the steps of the skip pagination suite in execution order, with the requests each step sends.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{Suite: suiteOptionsFromConfig()})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
