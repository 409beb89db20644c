package main

import (
	"io"

	"github.com/jmgilman/go/ghaudit/report"
	"github.com/spf13/cobra"
)

func newRenderCommand(_ *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <snapshot>",
		Short: "Render a stored snapshot as a markdown report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return report.Render(cmd.OutOrStdout(), snap)
			}
			return writeAtomically(output, func(w io.Writer) error {
				return report.Render(w, snap)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "report path (default stdout)")

	return cmd
}
