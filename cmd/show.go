package cmd

import (
	"github.com/bnema/layoutguard/internal/adapters/render/report"
	"github.com/bnema/layoutguard/internal/domain"
	"github.com/spf13/cobra"
)

func newShowCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <entity>",
		Short: "Print the current storage layout of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			snapshot, err := app.service.Show(cmd.Context(), domain.EntityID(args[0]))
			if err != nil {
				return err
			}

			return writeOutput(cmd, format, snapshot, func() (string, error) {
				return report.RenderSnapshot(snapshot), nil
			})
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
