package cmd

import (
	"github.com/spf13/cobra"

	"pagecheck.dev/pkg/pagecheck/internal/domain"
	m "pagecheck.dev/pkg/pagecheck/internal/model"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <base-report> <head-report>",
		Short: "Compare the pass/fail pattern of two saved reports",
		Long: `Compare two reports written by "pagecheck run --report" (JSON or YAML) and
print a unified diff of which checks passed and failed. Running the suite twice
against an unchanged server should produce no differences.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Diff(cmd.Context(), domain.DiffArgs{
				Base: m.Path(args[0]),
				Head: m.Path(args[1]),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
