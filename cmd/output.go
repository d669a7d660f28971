package cmd

import (
	"fmt"

	"github.com/bnema/layoutguard/internal/adapters/render/report"
	"github.com/spf13/cobra"
)

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", string(report.FormatText), "Output format (text|json|yaml)")
}

// writeOutput encodes v for json and yaml, and prints text() otherwise.
func writeOutput(cmd *cobra.Command, format report.Format, v any, text func() (string, error)) error {
	if format != report.FormatText {
		return report.Encode(cmd.OutOrStdout(), format, v)
	}

	rendered, err := text()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
