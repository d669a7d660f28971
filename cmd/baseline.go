package cmd

import (
	"github.com/bnema/layoutguard/internal/adapters/render/report"
	"github.com/bnema/layoutguard/internal/domain"
	"github.com/spf13/cobra"
)

func newBaselineCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Inspect recorded baselines",
	}

	cmd.AddCommand(
		newBaselineListCmd(app),
		newBaselineShowCmd(app),
	)

	return cmd
}

func newBaselineListCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities with a recorded baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			ids, err := app.service.Baselines(cmd.Context())
			if err != nil {
				return err
			}

			return writeOutput(cmd, format, ids, func() (string, error) {
				return report.RenderBaselineList(ids), nil
			})
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func newBaselineShowCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <entity>",
		Short: "Print the recorded baseline of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			baseline, err := app.service.Baseline(cmd.Context(), domain.EntityID(args[0]))
			if err != nil {
				return err
			}

			return writeOutput(cmd, format, baseline, func() (string, error) {
				return report.RenderBaseline(baseline), nil
			})
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
